package partials

import (
	"context"
	"strings"
	"testing"

	"minicakes_app_go/services"
	"minicakes_app_go/services/i18n"
	"minicakes_app_go/services/page"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func landingDoc(t *testing.T) *page.Document {
	t.Helper()
	require.NoError(t, i18n.Load())
	return page.BuildLandingDocument(services.DefaultLandingContent(), "en")
}

func TestHeader(t *testing.T) {
	doc := landingDoc(t)
	doc.GetElementByID(page.HeaderID).AddClass(page.ScrolledClass)

	out := renderString(t, Header(doc))

	assert.Contains(t, out, `<header id="header" class="site-header scrolled">`)
	assert.Contains(t, out, `hx-post="/events/anchor"`)
	assert.Equal(t, len(doc.QueryByClass(page.NavClass)), strings.Count(out, `class="nav-link"`))
}

func TestShowcase(t *testing.T) {
	t.Run("Idle", func(t *testing.T) {
		doc := landingDoc(t)
		out := renderString(t, Showcase(doc))

		assert.NotContains(t, out, `hx-get="/fragments/showcase"`)
		assert.Contains(t, out, `data-key="cupcake"`)
		assert.Contains(t, out, `hx-target="#showcase-stage"`)
	})

	t.Run("ShrunkDisplayRefreshes", func(t *testing.T) {
		doc := landingDoc(t)
		doc.GetElementByID(page.MainDisplayID).Style["transform"] = "scale(0.8)"
		doc.GetElementByID(page.VariantElementID("pie")).AddClass(page.ActiveClass)

		out := renderString(t, Showcase(doc))

		assert.Contains(t, out, `hx-get="/fragments/showcase"`)
		assert.Contains(t, out, `hx-trigger="load delay:150ms"`)
		assert.Contains(t, out, `style="transform: scale(0.8)"`)
		assert.Contains(t, out, `aria-selected="true"`)
	})
}

func TestSectionWritesTrustedHTML(t *testing.T) {
	doc := landingDoc(t)
	section := doc.GetElementByID(page.ShowcaseID)
	section.Text = "Cakes & more"
	section.HTML = "<p>Baked <strong>fresh</strong></p>"

	out := renderString(t, Section(doc, page.ShowcaseID, templ.Raw(`<em>extra</em>`)))

	assert.Contains(t, out, "<h2>Cakes &amp; more</h2>")
	assert.Contains(t, out, "<p>Baked <strong>fresh</strong></p>")
	assert.Contains(t, out, "<em>extra</em>")
	assert.Empty(t, renderString(t, Section(doc, "missing", nil)))
}

func TestField(t *testing.T) {
	doc := landingDoc(t)
	email := doc.GetElementByID(page.EmailID)
	email.Value = `a"b`
	email.Validity = "signup.error.invalid_email"
	doc.Focused = page.EmailID

	out := renderString(t, Field(doc, page.EmailID))

	assert.Contains(t, out, `id="email-field"`)
	assert.Contains(t, out, `value="a&#34;b"`)
	assert.Contains(t, out, `aria-invalid="true"`)
	assert.Contains(t, out, " autofocus")
	assert.Contains(t, out, "Please enter a valid email address.")

	plain := renderString(t, Field(doc, page.FirstNameID))
	assert.NotContains(t, plain, "aria-invalid")
	assert.NotContains(t, plain, "autofocus")
	assert.Contains(t, plain, ">First name</label>")
}

func TestMessage(t *testing.T) {
	doc := landingDoc(t)
	msg := doc.GetElementByID(page.MessageID)
	msg.Text = "<b>hi</b>"

	out := renderString(t, Message(doc, true))
	assert.Contains(t, out, `hx-swap-oob="true"`)
	assert.Contains(t, out, "&lt;b&gt;hi&lt;/b&gt;")
	assert.Contains(t, out, `style="display: none"`)

	assert.NotContains(t, renderString(t, Message(doc, false)), "hx-swap-oob")
}

func TestSignupPanel(t *testing.T) {
	doc := landingDoc(t)
	out := renderString(t, SignupPanel(doc, "token-123"))

	assert.True(t, strings.HasPrefix(out, `<div id="signup-panel"`))
	assert.Contains(t, out, `name="_csrf" value="token-123"`)
	assert.Contains(t, out, `id="firstName-field"`)
	assert.Contains(t, out, `id="email-field"`)
	assert.Contains(t, out, `id="message"`)
	assert.Contains(t, out, `hx-disabled-elt="#submitBtn"`)
}
