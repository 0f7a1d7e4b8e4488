package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"minicakes_app_go/middleware"
	"minicakes_app_go/services/i18n"
	"minicakes_app_go/services/page"
	"minicakes_app_go/templates/components"
	"minicakes_app_go/templates/partials"

	"github.com/a-h/templ"
)

// HTMXSource is the htmx build loaded by the landing page
const HTMXSource = "https://unpkg.com/htmx.org@2.0.4"

// Landing renders the full landing page for a freshly loaded page session
func Landing(doc *page.Document, pageID, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		nonce := middleware.GetNonce(ctx)
		esc := templ.EscapeString

		var b strings.Builder
		fmt.Fprintf(&b, `<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`, esc(doc.Lang))
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(&b, `<title>%s</title>`, esc(doc.Title))
		fmt.Fprintf(&b, `<link rel="stylesheet" href="/static/css/style.css?v=%s">`, middleware.GetCSSVersion(ctx))
		fmt.Fprintf(&b, `<script nonce="%s" src="%s" defer></script>`, esc(nonce), HTMXSource)
		fmt.Fprintf(&b, `<script nonce="%s" src="/static/js/landing.js?v=%s" defer></script>`, esc(nonce), middleware.GetLandingJSVersion(ctx))
		b.WriteString(`</head>`)

		headers := components.JSON(map[string]string{
			middleware.PageIDHeader: pageID,
			"X-CSRF-Token":          csrfToken,
		})
		replaceURL := ""
		if n := len(doc.History); n > 0 {
			replaceURL = doc.History[n-1].URL
		}
		fmt.Fprintf(&b, `<body hx-headers="%s" data-page-id="%s" data-csrf="%s" data-replace-url="%s">`,
			esc(headers), esc(pageID), esc(csrfToken), esc(replaceURL))
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		b.Reset()

		if err := partials.Header(doc).Render(ctx, w); err != nil {
			return err
		}

		b.WriteString(`<main>`)
		if hero := doc.GetElementByID("hero"); hero != nil {
			fmt.Fprintf(&b, `<section id="hero" class="%s"><h1>%s</h1>`, esc(hero.ClassName()), esc(hero.Text))
			b.WriteString(hero.HTML)
			if cta := doc.GetElementByID("hero-cta"); cta != nil {
				fmt.Fprintf(&b, `<a id="%s" class="%s" href="%s" hx-post="/events/anchor" hx-vals="%s" hx-swap="none">%s</a>`,
					esc(cta.ID), esc(cta.ClassName()), esc(cta.Attrs["href"]),
					esc(components.JSON(map[string]string{"id": cta.ID})), esc(cta.Text))
			}
			b.WriteString(`</section>`)
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		b.Reset()

		showcase := partials.Section(doc, page.ShowcaseID, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			fmt.Fprintf(w, `<p class="showcase-hint">%s</p>`, esc(i18n.T(ctx, "showcase.hint")))
			return partials.Showcase(doc).Render(ctx, w)
		}))
		if err := showcase.Render(ctx, w); err != nil {
			return err
		}

		for _, section := range doc.QueryByClass("content-section") {
			if err := partials.Section(doc, section.ID, nil).Render(ctx, w); err != nil {
				return err
			}
		}

		signup := partials.Section(doc, page.SignupID, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if el := doc.GetElementByID(page.SignupID); el != nil && el.Attrs["data-description"] != "" {
				fmt.Fprintf(w, `<p class="signup-description">%s</p>`, esc(el.Attrs["data-description"]))
			}
			return partials.SignupPanel(doc, csrfToken).Render(ctx, w)
		}))
		if err := signup.Render(ctx, w); err != nil {
			return err
		}

		b.WriteString(`</main>`)
		fmt.Fprintf(&b, `<a href="#header" class="scroll-top" aria-label="%s">↑</a>`, esc(i18n.T(ctx, "page.scroll_top")))
		fmt.Fprintf(&b, `<script type="application/json" id="console-advisory" nonce="%s">%s</script>`,
			esc(nonce), components.JSON(doc.Console))
		b.WriteString(`</body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
