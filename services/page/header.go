package page

// HeaderController toggles the scrolled state of the header
type HeaderController struct {
	doc       *Document
	threshold float64
}

func NewHeaderController(doc *Document, threshold float64) *HeaderController {
	return &HeaderController{doc: doc, threshold: threshold}
}

func (h *HeaderController) Attach(src EventSource) {
	src.On(EventScroll, "", func(ev *Event) {
		h.OnScroll(ev.ScrollY)
	})
}

// OnScroll applies the scrolled class once the offset passes the threshold
func (h *HeaderController) OnScroll(offsetY float64) {
	header := h.doc.GetElementByID(HeaderID)
	if header == nil {
		return
	}
	header.ToggleClass(ScrolledClass, offsetY > h.threshold)
}
