package page

import (
	"maps"
	"slices"
	"strings"
)

// Element is the server-side model of one node the page scripts touch
type Element struct {
	ID       string
	Tag      string
	Text     string
	HTML     string // trusted, already sanitized markup
	Attrs    map[string]string
	Style    map[string]string
	Value    string
	Validity string // validity message key; empty means valid
	Disabled bool
	classes  []string
}

func NewElement(tag, id string, classes ...string) *Element {
	el := &Element{
		ID:    id,
		Tag:   tag,
		Attrs: make(map[string]string),
		Style: make(map[string]string),
	}
	for _, c := range classes {
		el.AddClass(c)
	}
	return el
}

func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	e.classes = append(e.classes, name)
}

func (e *Element) RemoveClass(name string) {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == name })
}

// ToggleClass adds the class when on is true and removes it otherwise
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
	} else {
		e.RemoveClass(name)
	}
}

// SetClasses replaces the class list
func (e *Element) SetClasses(classes ...string) {
	e.classes = nil
	for _, c := range classes {
		e.AddClass(c)
	}
}

func (e *Element) Classes() []string {
	return slices.Clone(e.classes)
}

// ClassName joins the classes the way the class attribute shows them
func (e *Element) ClassName() string {
	return strings.Join(e.classes, " ")
}

// Data reads a data-* attribute
func (e *Element) Data(key string) string {
	return e.Attrs["data-"+key]
}

func (e *Element) SetData(key, value string) {
	e.Attrs["data-"+key] = value
}

// StyleString renders inline styles in a stable order
func (e *Element) StyleString() string {
	keys := slices.Sorted(maps.Keys(e.Style))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if e.Style[k] == "" {
			continue
		}
		parts = append(parts, k+": "+e.Style[k])
	}
	return strings.Join(parts, "; ")
}

func (e *Element) clone() *Element {
	c := *e
	c.Attrs = maps.Clone(e.Attrs)
	c.Style = maps.Clone(e.Style)
	c.classes = slices.Clone(e.classes)
	return &c
}

// HistoryEntry records a history.replaceState call
type HistoryEntry struct {
	URL   string
	State map[string]string
}

// ScrollRequest records a smooth scroll to an in-page target
type ScrollRequest struct {
	Target   string `json:"target"`
	Behavior string `json:"behavior"`
	Block    string `json:"block"`
}

// Document holds the elements of one page in insertion order
type Document struct {
	Title    string
	Lang     string
	elements map[string]*Element
	order    []string
	History  []HistoryEntry
	Console  []string
	Scroll   *ScrollRequest
	Focused  string
}

func NewDocument(title, lang string) *Document {
	return &Document{
		Title:    title,
		Lang:     lang,
		elements: make(map[string]*Element),
	}
}

// Append adds an element; an element with the same id is replaced in place
func (d *Document) Append(el *Element) *Element {
	if _, exists := d.elements[el.ID]; !exists {
		d.order = append(d.order, el.ID)
	}
	d.elements[el.ID] = el
	return el
}

// GetElementByID returns nil when no element has the id
func (d *Document) GetElementByID(id string) *Element {
	return d.elements[id]
}

// QueryByClass returns elements carrying the class, in document order
func (d *Document) QueryByClass(class string) []*Element {
	var found []*Element
	for _, id := range d.order {
		if el := d.elements[id]; el.HasClass(class) {
			found = append(found, el)
		}
	}
	return found
}

// QueryAnchors returns links whose href points inside the page
func (d *Document) QueryAnchors() []*Element {
	var found []*Element
	for _, id := range d.order {
		el := d.elements[id]
		if el.Tag == "a" && strings.HasPrefix(el.Attrs["href"], "#") {
			found = append(found, el)
		}
	}
	return found
}

// Clone deep-copies the document so it can be rendered off the session goroutine
func (d *Document) Clone() *Document {
	c := &Document{
		Title:    d.Title,
		Lang:     d.Lang,
		elements: make(map[string]*Element, len(d.elements)),
		order:    slices.Clone(d.order),
		History:  slices.Clone(d.History),
		Console:  slices.Clone(d.Console),
		Focused:  d.Focused,
	}
	for id, el := range d.elements {
		c.elements[id] = el.clone()
	}
	if d.Scroll != nil {
		s := *d.Scroll
		c.Scroll = &s
	}
	return c
}
