package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strings"
	texttemplate "text/template"

	"minicakes_app_go/config"
	"minicakes_app_go/services/i18n"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// emailTemplates holds <name>[_<lang>].html/.txt files
var emailTemplates fs.FS = os.DirFS("templates/emails")

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// buildEmailWithFallback loads the localized template and falls back to English
func buildEmailWithFallback(templateName string, lang string, tmplData interface{}, toEmail string) *Email {
	htmlBody, textBody, err := loadTemplate(templateName, lang, tmplData)
	if err != nil {
		zap.L().Warn("Error loading email template", zap.String("template", templateName), zap.String("lang", lang), zap.Error(err))
	}

	if htmlBody == "" && textBody == "" && lang != "en" {
		htmlBody, textBody, err = loadTemplate(templateName, "en", tmplData)
		if err != nil {
			zap.L().Warn("Error loading default 'en' email template", zap.String("template", templateName), zap.Error(err))
		}
	}

	return &Email{
		To:       []string{toEmail},
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
}

// loadTemplate tries templateName_lang first, then templateName
func loadTemplate(templateName string, lang string, data interface{}) (html string, text string, err error) {
	read := func(ext string) ([]byte, string, error) {
		name := fmt.Sprintf("%s_%s%s", templateName, lang, ext)
		content, err := fs.ReadFile(emailTemplates, name)
		if err == nil {
			return content, name, nil
		}
		name = templateName + ext
		content, err = fs.ReadFile(emailTemplates, name)
		if err != nil {
			return nil, name, fmt.Errorf("failed to read template %s: %w", name, err)
		}
		return content, name, nil
	}

	htmlSrc, htmlName, err := read(".html")
	if err != nil {
		return "", "", err
	}
	htmlTmpl, err := template.New(htmlName).Parse(string(htmlSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", htmlName, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", htmlName, err)
	}

	textSrc, textName, err := read(".txt")
	if err != nil {
		return "", "", err
	}
	textTmpl, err := texttemplate.New(textName).Parse(string(textSrc))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", textName, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", textName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// SendEmail sends an email through Resend, or logs it when EmailTestMode is on
func SendEmail(ctx context.Context, client *resend.Client, cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmail(email)
		return nil
	}

	if client == nil {
		return fmt.Errorf("resend client not configured")
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	sent, err := client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	zap.L().Info("Email sent via Resend", zap.String("id", sent.Id), zap.Strings("to", email.To))
	return nil
}

// logEmail records the email instead of sending it
func logEmail(email *Email) {
	zap.L().Info("Email (test mode - not sent)",
		zap.Strings("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("text", email.TextBody),
		zap.String("html", truncate(email.HTMLBody, 500)),
	)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// EbookEmailData contains data for the e-book delivery template
type EbookEmailData struct {
	FirstName   string
	Email       string
	AppURL      string
	DownloadURL string
}

// BuildEbookEmail creates the free e-book delivery email for a new subscriber
func BuildEbookEmail(firstName, email, appURL, downloadURL, lang string) *Email {
	data := EbookEmailData{
		FirstName:   firstName,
		Email:       email,
		AppURL:      strings.TrimSuffix(appURL, "/"),
		DownloadURL: downloadURL,
	}

	message := buildEmailWithFallback("ebook", lang, data, email)
	message.Subject = i18n.Translate(lang, "email.subject.ebook", map[string]interface{}{"name": firstName})
	return message
}
