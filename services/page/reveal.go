package page

import "slices"

// IntersectionEntry reports where an observed element sits relative to the
// viewport. Top is the distance from the viewport top to the element top.
type IntersectionEntry struct {
	Target         string  `json:"target"`
	Top            float64 `json:"top"`
	Height         float64 `json:"height"`
	ViewportHeight float64 `json:"viewportHeight"`
}

// RevealOptions mirror the IntersectionObserver options of the reveal effect
type RevealOptions struct {
	Threshold float64
	// RootMarginBottom grows (positive) or shrinks (negative) the viewport bottom
	RootMarginBottom float64
}

var DefaultRevealOptions = RevealOptions{Threshold: 0.1, RootMarginBottom: -50}

// IntersectionRatio is the visible fraction of the element inside the
// margin-adjusted viewport
func IntersectionRatio(entry IntersectionEntry, opts RevealOptions) float64 {
	rootBottom := entry.ViewportHeight + opts.RootMarginBottom
	if rootBottom <= 0 {
		return 0
	}
	top := entry.Top
	bottom := entry.Top + entry.Height
	if entry.Height <= 0 {
		if top >= 0 && top <= rootBottom {
			return 1
		}
		return 0
	}
	visible := min(bottom, rootBottom) - max(top, 0)
	if visible <= 0 {
		return 0
	}
	return visible / entry.Height
}

// RevealAnimator marks elements visible the first time they scroll into view
type RevealAnimator struct {
	doc      *Document
	opts     RevealOptions
	observed []string
}

func NewRevealAnimator(doc *Document, opts RevealOptions) *RevealAnimator {
	return &RevealAnimator{doc: doc, opts: opts}
}

func (r *RevealAnimator) Attach(src EventSource) {
	src.On(EventIntersect, "", func(ev *Event) {
		ev.Revealed = append(ev.Revealed, r.OnIntersect(ev.Entries)...)
	})
}

// ObserveAll starts observing every element with the reveal class that is not visible yet
func (r *RevealAnimator) ObserveAll() {
	for _, el := range r.doc.QueryByClass(RevealClass) {
		r.Observe(el.ID)
	}
}

func (r *RevealAnimator) Observe(id string) {
	el := r.doc.GetElementByID(id)
	if el == nil || el.HasClass(VisibleClass) || slices.Contains(r.observed, id) {
		return
	}
	r.observed = append(r.observed, id)
}

func (r *RevealAnimator) Unobserve(id string) {
	r.observed = slices.DeleteFunc(r.observed, func(o string) bool { return o == id })
}

// Observed lists the element ids still waiting to be revealed
func (r *RevealAnimator) Observed() []string {
	return slices.Clone(r.observed)
}

// OnIntersect reveals observed elements whose ratio reaches the threshold and
// returns the ids revealed by this call
func (r *RevealAnimator) OnIntersect(entries []IntersectionEntry) []string {
	var revealed []string
	for _, entry := range entries {
		if !slices.Contains(r.observed, entry.Target) {
			continue
		}
		ratio := IntersectionRatio(entry, r.opts)
		if ratio <= 0 || ratio < r.opts.Threshold {
			continue
		}
		if el := r.doc.GetElementByID(entry.Target); el != nil {
			el.AddClass(VisibleClass)
		}
		r.Unobserve(entry.Target)
		revealed = append(revealed, entry.Target)
	}
	return revealed
}
