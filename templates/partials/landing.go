package partials

import (
	"context"

	"minicakes_app_go/services/i18n"
	"minicakes_app_go/services/page"
	"minicakes_app_go/templates/components"

	"github.com/a-h/templ"
)

// Header renders the site header with its in-page navigation
func Header(doc *page.Document) templ.Component {
	return component(func(ctx context.Context, h *html) {
		header := doc.GetElementByID(page.HeaderID)
		if header == nil {
			return
		}
		h.open(header)
		h.WriteString(`<a class="brand" href="#hero">`)
		h.text(header.Text)
		h.WriteString(`</a><nav>`)
		for _, link := range doc.QueryByClass(page.NavClass) {
			h.open(link,
				"href", link.Attrs["href"],
				"hx-post", "/events/anchor",
				"hx-vals", components.JSON(map[string]string{"id": link.ID}),
				"hx-swap", "none",
			)
			h.text(link.Text)
			h.close("a")
		}
		h.WriteString(`</nav>`)
		h.close(header.Tag)
	})
}

// Showcase renders the main display and the variant picker. While the display
// is shrunk it asks for a fresh copy once the animation delay has passed.
func Showcase(doc *page.Document) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.WriteString(`<div id="showcase-stage" class="showcase-stage">`)
		if display := doc.GetElementByID(page.MainDisplayID); display != nil {
			var refresh []string
			if display.Style["transform"] == "scale(0.8)" {
				refresh = []string{
					"hx-get", "/fragments/showcase",
					"hx-trigger", "load delay:150ms",
					"hx-target", "#showcase-stage",
					"hx-swap", "outerHTML",
				}
			}
			h.open(display, refresh...)
			h.text(display.Text)
			h.close(display.Tag)
		}
		h.WriteString(`<div class="variant-list" role="listbox">`)
		for _, item := range doc.QueryByClass(page.VariantClass) {
			h.open(item,
				"type", "button",
				"data-cake", item.Data("cake"),
				"data-key", item.Data("key"),
				"aria-selected", ariaBool(item.HasClass(page.ActiveClass)),
				"hx-post", "/events/variant",
				"hx-vals", components.JSON(map[string]string{"key": item.Data("key")}),
				"hx-target", "#showcase-stage",
				"hx-swap", "outerHTML",
			)
			h.WriteString(`<span class="variant-symbol">`)
			h.text(item.Data("cake"))
			h.WriteString(`</span>`)
			h.text(item.Text)
			h.close(item.Tag)
		}
		h.WriteString(`</div></div>`)
	})
}

// Section renders a reveal-animated content section
func Section(doc *page.Document, id string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *html) {
		section := doc.GetElementByID(id)
		if section == nil {
			return
		}
		h.open(section)
		h.WriteString(`<h2>`)
		h.text(section.Text)
		h.WriteString(`</h2>`)
		if section.HTML != "" {
			// Markdown output sanitized when the content was loaded
			h.WriteString(section.HTML)
		}
		if body != nil {
			var inner html
			if err := body.Render(ctx, &inner); err == nil {
				h.WriteString(inner.String())
			}
		}
		h.close(section.Tag)
	})
}

// Field renders one labelled input with its validity message
func Field(doc *page.Document, id string) templ.Component {
	return component(func(ctx context.Context, h *html) {
		input := doc.GetElementByID(id)
		if input == nil {
			return
		}
		labelKey := "signup.first_name"
		if id == page.EmailID {
			labelKey = "signup.email"
		}
		h.WriteString(`<div class="form-field"`)
		h.attr("id", id+"-field")
		h.WriteString(`><label`)
		h.attr("for", id)
		h.WriteString(`>`)
		h.text(i18n.Translate(doc.Lang, labelKey))
		h.WriteString(`</label><input`)
		h.attr("id", id)
		h.attr("name", id)
		h.attr("type", input.Attrs["type"])
		h.attr("class", input.ClassName())
		h.attr("value", input.Value)
		h.attr("hx-post", "/events/input")
		h.attr("hx-trigger", "input changed delay:300ms, paste delay:10ms")
		h.attr("hx-vals", components.JSON(map[string]string{"field": id}))
		h.attr("hx-target", "#"+id+"-field")
		h.attr("hx-swap", "outerHTML")
		h.flag("required", true)
		h.flag("autofocus", doc.Focused == id)
		if input.Validity != "" {
			h.attr("aria-invalid", "true")
			h.attr("aria-describedby", id+"-hint")
		}
		h.WriteString(`>`)
		if input.Validity != "" {
			h.WriteString(`<span class="field-hint"`)
			h.attr("id", id+"-hint")
			h.WriteString(`>`)
			h.text(i18n.Translate(doc.Lang, input.Validity))
			h.WriteString(`</span>`)
		}
		h.WriteString(`</div>`)
	})
}

// Message renders the form's message area; oob marks it for an out-of-band swap
func Message(doc *page.Document, oob bool) templ.Component {
	return component(func(ctx context.Context, h *html) {
		msg := doc.GetElementByID(page.MessageID)
		if msg == nil {
			return
		}
		extra := []string{"role", "status", "aria-live", "polite"}
		if oob {
			extra = append(extra, "hx-swap-oob", "true")
		}
		h.open(msg, extra...)
		h.text(msg.Text)
		h.close(msg.Tag)
	})
}

// SignupPanel renders the signup form, its fields and the message area
func SignupPanel(doc *page.Document, csrfToken string) templ.Component {
	return component(func(ctx context.Context, h *html) {
		form := doc.GetElementByID(page.FormID)
		submit := doc.GetElementByID(page.SubmitID)
		if form == nil || submit == nil {
			return
		}
		h.WriteString(`<div id="signup-panel" class="signup-panel">`)
		h.open(form,
			"method", "post",
			"action", "/signup",
			"hx-post", "/signup",
			"hx-target", "#signup-panel",
			"hx-swap", "outerHTML",
			"hx-disabled-elt", "#"+page.SubmitID,
			"novalidate", "novalidate",
		)
		h.WriteString(`<input type="hidden" name="_csrf"`)
		h.attr("value", csrfToken)
		h.WriteString(`>`)
		for _, id := range []string{page.FirstNameID, page.EmailID} {
			var field html
			_ = Field(doc, id).Render(ctx, &field)
			h.WriteString(field.String())
		}
		h.open(submit, "type", "submit")
		h.text(submit.Text)
		h.close(submit.Tag)
		h.close(form.Tag)
		var message html
		_ = Message(doc, false).Render(ctx, &message)
		h.WriteString(message.String())
		h.WriteString(`</div>`)
	})
}

func ariaBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
