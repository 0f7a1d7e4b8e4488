package services

import (
	"context"
	"testing"
	"testing/fstest"

	"minicakes_app_go/config"
	"minicakes_app_go/services/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withEmailTemplates swaps the template filesystem for an in-memory one
func withEmailTemplates(t *testing.T) {
	t.Helper()
	original := emailTemplates
	emailTemplates = fstest.MapFS{
		"test_template.html":    {Data: []byte("<html><body>Hello {{.UserName}}</body></html>")},
		"test_template.txt":     {Data: []byte("Hello {{.UserName}}")},
		"test_template_es.html": {Data: []byte("<html><body>Hola {{.UserName}}</body></html>")},
		"test_template_es.txt":  {Data: []byte("Hola {{.UserName}}")},
		"broken.html":           {Data: []byte("{{.Missing")},
		"broken.txt":            {Data: []byte("ok")},
		"ebook.html":            {Data: []byte("<p>Hi {{.FirstName}}, grab it at {{.DownloadURL}} from {{.AppURL}}</p>")},
		"ebook.txt":             {Data: []byte("Hi {{.FirstName}}, grab it at {{.DownloadURL}} from {{.AppURL}}")},
		"ebook_es.html":         {Data: []byte("<p>Hola {{.FirstName}}</p>")},
		"ebook_es.txt":          {Data: []byte("Hola {{.FirstName}}")},
	}
	t.Cleanup(func() { emailTemplates = original })
}

func TestLoadTemplate(t *testing.T) {
	withEmailTemplates(t)

	type data struct {
		UserName string
	}
	tplData := data{UserName: "John"}

	t.Run("Load Base Template", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", "en", tplData)
		assert.NoError(t, err)
		assert.Contains(t, html, "Hello John")
		assert.Contains(t, text, "Hello John")
	})

	t.Run("Load Localized Template", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", "es", tplData)
		assert.NoError(t, err)
		assert.Contains(t, html, "Hola John")
		assert.Contains(t, text, "Hola John")
	})

	t.Run("Fallback to Base when Localized Missing", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", "fr", tplData)
		assert.NoError(t, err)
		assert.Contains(t, html, "Hello John")
		assert.Contains(t, text, "Hello John")
	})

	t.Run("Template Not Found", func(t *testing.T) {
		_, _, err := loadTemplate("non_existent", "en", tplData)
		assert.Error(t, err)
	})

	t.Run("Parse Error", func(t *testing.T) {
		_, _, err := loadTemplate("broken", "en", tplData)
		assert.Error(t, err)
	})

	t.Run("HTML Is Escaped", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", "en", data{UserName: "<b>x</b>"})
		assert.NoError(t, err)
		assert.NotContains(t, html, "<b>x</b>")
		assert.Contains(t, text, "<b>x</b>")
	})
}

func TestBuildEbookEmail(t *testing.T) {
	withEmailTemplates(t)
	require.NoError(t, i18n.Load())

	email := BuildEbookEmail("Al", "a@b.co", "https://minicakes.test/", "https://cdn.test/e.pdf", "en")
	assert.Equal(t, []string{"a@b.co"}, email.To)
	assert.NotEmpty(t, email.Subject)
	assert.Contains(t, email.HTMLBody, "Hi Al, grab it at https://cdn.test/e.pdf from https://minicakes.test<")
	assert.Contains(t, email.TextBody, "https://cdn.test/e.pdf")

	spanish := BuildEbookEmail("Al", "a@b.co", "https://minicakes.test", "https://cdn.test/e.pdf", "es")
	assert.Contains(t, spanish.TextBody, "Hola Al")
	assert.NotEqual(t, email.Subject, spanish.Subject)
}

func TestSendEmail(t *testing.T) {
	email := &Email{To: []string{"a@b.co"}, Subject: "Hi", TextBody: "Hello"}

	t.Run("TestModeLogsOnly", func(t *testing.T) {
		cfg := &config.Config{EmailTestMode: true}
		assert.NoError(t, SendEmail(context.Background(), nil, cfg, email))
	})

	t.Run("NoClient", func(t *testing.T) {
		cfg := &config.Config{EmailTestMode: false}
		assert.Error(t, SendEmail(context.Background(), nil, cfg, email))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
}
