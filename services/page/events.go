package page

// EventType names the browser events a page reacts to
type EventType string

const (
	EventLoad      EventType = "load"
	EventUnload    EventType = "unload"
	EventScroll    EventType = "scroll"
	EventClick     EventType = "click"
	EventInput     EventType = "input"
	EventPaste     EventType = "paste"
	EventSubmit    EventType = "submit"
	EventIntersect EventType = "intersect"
)

// Event is one browser event delivered to the page. Only the fields relevant
// to the event type are set.
type Event struct {
	Type    EventType
	Target  string // element id; empty for window-level events
	URL     string
	ScrollY float64
	Value   string
	Fields  map[string]string
	Entries []IntersectionEntry

	// Attempt is set by the submit handler when a submission was accepted
	Attempt *Attempt
	// Revealed lists the elements an intersect event made visible
	Revealed []string

	defaultPrevented bool
}

func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Handler reacts to an event. Handlers run one at a time on the page's
// session goroutine.
type Handler func(ev *Event)

// EventSource is where controllers register their handlers
type EventSource interface {
	On(eventType EventType, target string, handler Handler)
}

type handlerKey struct {
	eventType EventType
	target    string
}

// dispatcher routes events to handlers registered for (type, target)
type dispatcher struct {
	handlers map[handlerKey][]Handler
}

func newDispatcher() *dispatcher {
	return &dispatcher{handlers: make(map[handlerKey][]Handler)}
}

func (r *dispatcher) On(eventType EventType, target string, handler Handler) {
	key := handlerKey{eventType: eventType, target: target}
	r.handlers[key] = append(r.handlers[key], handler)
}

// dispatch runs matching handlers and reports whether any was found
func (r *dispatcher) dispatch(ev *Event) bool {
	handlers := r.handlers[handlerKey{eventType: ev.Type, target: ev.Target}]
	for _, h := range handlers {
		h(ev)
	}
	return len(handlers) > 0
}
