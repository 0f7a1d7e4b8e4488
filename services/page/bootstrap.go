package page

import (
	"strings"

	"minicakes_app_go/services"
	"minicakes_app_go/services/i18n"

	"go.uber.org/zap"
)

// Bootstrap wires the page-level behaviour: load, unload and in-page anchors
type Bootstrap struct {
	doc      *Document
	variants *VariantSelector
	reveal   *RevealAnimator
	policy   *services.SubmissionPolicy
	lang     string
	logger   *zap.Logger
}

func NewBootstrap(doc *Document, variants *VariantSelector, reveal *RevealAnimator, policy *services.SubmissionPolicy, lang string, logger *zap.Logger) *Bootstrap {
	return &Bootstrap{
		doc:      doc,
		variants: variants,
		reveal:   reveal,
		policy:   policy,
		lang:     lang,
		logger:   logger,
	}
}

func (b *Bootstrap) Attach(src EventSource) {
	src.On(EventLoad, "", b.OnLoad)
	src.On(EventUnload, "", b.OnUnload)
	for _, anchor := range b.doc.QueryAnchors() {
		href := anchor.Attrs["href"]
		src.On(EventClick, anchor.ID, func(ev *Event) {
			b.ScrollTo(ev, href)
		})
	}
}

// OnLoad replaces the history entry, prints the console advisory, selects the
// first variant and starts observing reveal elements
func (b *Bootstrap) OnLoad(ev *Event) {
	// Keeps a refresh from re-posting the form; nothing is enforced here.
	entry := HistoryEntry{URL: ev.URL}
	if n := len(b.doc.History); n > 0 {
		b.doc.History[n-1] = entry
	} else {
		b.doc.History = append(b.doc.History, entry)
	}

	advisory := i18n.Translate(b.lang, "page.console_advisory")
	b.doc.Console = append(b.doc.Console, advisory)
	b.logger.Debug("Developer console advisory", zap.String("text", advisory))

	b.variants.SelectIndex(0)
	b.reveal.ObserveAll()
}

// OnUnload forgets the stored fingerprint; the cooldown timestamp stays in memory
func (b *Bootstrap) OnUnload(*Event) {
	if err := b.policy.ClearFingerprint(); err != nil {
		b.logger.Warn("Failed to clear form fingerprint", zap.Error(err))
	}
}

// ScrollTo intercepts an in-page link and requests a smooth scroll to its target
func (b *Bootstrap) ScrollTo(ev *Event, href string) {
	ev.PreventDefault()
	b.doc.Scroll = nil
	target := strings.TrimPrefix(href, "#")
	if target == "" || b.doc.GetElementByID(target) == nil {
		return
	}
	b.doc.Scroll = &ScrollRequest{Target: target, Behavior: "smooth", Block: "start"}
}
