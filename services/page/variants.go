package page

import (
	"fmt"
	"time"
)

const (
	// AnimationDelay separates the shrink and restore phases of the display
	AnimationDelay = 150 * time.Millisecond

	shrinkTransform  = "scale(0.8)"
	restoreTransform = "scale(1)"
)

// Scheduler runs fn on the page goroutine after d
type Scheduler func(d time.Duration, fn func())

// VariantSelector keeps exactly one showcase item active and mirrors its
// symbol on the main display.
type VariantSelector struct {
	doc      *Document
	schedule Scheduler
	items    []*Element
	selected string
}

func NewVariantSelector(doc *Document, schedule Scheduler) *VariantSelector {
	return &VariantSelector{
		doc:      doc,
		schedule: schedule,
		items:    doc.QueryByClass(VariantClass),
	}
}

func (v *VariantSelector) Attach(src EventSource) {
	for i, item := range v.items {
		index := i
		src.On(EventClick, item.ID, func(ev *Event) {
			ev.PreventDefault()
			v.SelectIndex(index)
		})
	}
}

// Select activates the item for a variant key
func (v *VariantSelector) Select(key string) error {
	for i, item := range v.items {
		if item.Data("key") == key {
			v.SelectIndex(i)
			return nil
		}
	}
	return fmt.Errorf("unknown variant %q", key)
}

// SelectIndex activates item i; out-of-range indexes are ignored
func (v *VariantSelector) SelectIndex(i int) {
	if i < 0 || i >= len(v.items) {
		return
	}
	item := v.items[i]

	display := v.doc.GetElementByID(MainDisplayID)
	if display != nil {
		display.Text = item.Data("cake")
		display.Style["transform"] = shrinkTransform
		if v.schedule != nil {
			v.schedule(AnimationDelay, func() {
				display.Style["transform"] = restoreTransform
			})
		}
	}

	for _, other := range v.items {
		other.RemoveClass(ActiveClass)
	}
	item.AddClass(ActiveClass)
	v.selected = item.Data("key")
}

// Selected returns the active variant key
func (v *VariantSelector) Selected() string {
	return v.selected
}

// SelectedSymbol returns the symbol shown on the main display
func (v *VariantSelector) SelectedSymbol() string {
	for _, item := range v.items {
		if item.HasClass(ActiveClass) {
			return item.Data("cake")
		}
	}
	return ""
}
