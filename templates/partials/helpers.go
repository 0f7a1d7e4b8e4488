package partials

import (
	"context"
	"io"
	"strings"

	"minicakes_app_go/services/page"

	"github.com/a-h/templ"
)

// html accumulates markup for a component
type html struct {
	strings.Builder
}

// text writes escaped text
func (h *html) text(s string) {
	h.WriteString(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped; empty values are skipped
func (h *html) attr(name, value string) {
	if value == "" {
		return
	}
	h.WriteString(" ")
	h.WriteString(name)
	h.WriteString(`="`)
	h.WriteString(templ.EscapeString(value))
	h.WriteString(`"`)
}

// flag writes a boolean attribute
func (h *html) flag(name string, on bool) {
	if on {
		h.WriteString(" ")
		h.WriteString(name)
	}
}

// open writes the start tag of el with its id, classes and inline style
func (h *html) open(el *page.Element, extra ...string) {
	h.WriteString("<")
	h.WriteString(el.Tag)
	h.attr("id", el.ID)
	h.attr("class", el.ClassName())
	h.attr("style", el.StyleString())
	for i := 0; i+1 < len(extra); i += 2 {
		h.attr(extra[i], extra[i+1])
	}
	h.WriteString(">")
}

func (h *html) close(tag string) {
	h.WriteString("</")
	h.WriteString(tag)
	h.WriteString(">")
}

// component turns a builder function into a templ component
func component(build func(ctx context.Context, h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var h html
		build(ctx, &h)
		_, err := io.WriteString(w, h.String())
		return err
	})
}
