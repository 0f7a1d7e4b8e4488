package page

import (
	"context"
	"errors"
	"sync"

	"minicakes_app_go/services"
	"minicakes_app_go/services/i18n"

	"go.uber.org/zap"
)

// FormState is the phase of the signup form between attempts
type FormState string

const (
	FormIdle       FormState = "idle"
	FormValidating FormState = "validating"
	FormLoading    FormState = "loading"
)

// AttemptStatus is the outcome of one submit event
type AttemptStatus string

const (
	AttemptRejected AttemptStatus = "rejected"
	AttemptLoading  AttemptStatus = "loading"
	AttemptSuccess  AttemptStatus = "success"
	AttemptFailure  AttemptStatus = "failure"
)

// Attempt tracks one submission. Status and Err are final once Done is closed.
type Attempt struct {
	Status AttemptStatus
	Err    *services.SignupError
	done   chan struct{}
	once   sync.Once
}

func newAttempt(status AttemptStatus) *Attempt {
	return &Attempt{Status: status, done: make(chan struct{})}
}

func (a *Attempt) Done() <-chan struct{} {
	return a.done
}

func (a *Attempt) settle() {
	a.once.Do(func() { close(a.done) })
}

// Wait blocks until the attempt settles or ctx ends
func (a *Attempt) Wait(ctx context.Context) error {
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FormController drives the signup form: live field checks, the submit
// pipeline, the loading state and the result message.
type FormController struct {
	doc       *Document
	guard     *services.FormGuard
	submitter services.SignupSubmitter
	post      func(fn func()) bool
	ctx       context.Context
	lang      string
	logger    *zap.Logger

	state         FormState
	originalLabel string
	inFlight      map[*Attempt]struct{}
}

func NewFormController(ctx context.Context, doc *Document, guard *services.FormGuard, submitter services.SignupSubmitter, post func(fn func()) bool, lang string, logger *zap.Logger) *FormController {
	c := &FormController{
		doc:           doc,
		guard:         guard,
		submitter:     submitter,
		post:          post,
		ctx:           ctx,
		lang:          lang,
		logger:        logger,
		state:         FormIdle,
		originalLabel: i18n.Translate(lang, "signup.submit"),
		inFlight:      make(map[*Attempt]struct{}),
	}
	if submit := doc.GetElementByID(SubmitID); submit != nil {
		submit.Text = c.originalLabel
	}
	return c
}

func (c *FormController) Attach(src EventSource) {
	for _, field := range []string{FirstNameID, EmailID} {
		id := field
		src.On(EventInput, id, func(ev *Event) { c.OnFieldInput(id, ev.Value) })
		src.On(EventPaste, id, func(ev *Event) { c.OnFieldInput(id, ev.Value) })
	}
	src.On(EventSubmit, FormID, c.OnSubmit)
}

// State reports the current form phase
func (c *FormController) State() FormState {
	return c.state
}

// OnFieldInput sanitizes a typed or pasted value and updates the field's validity
func (c *FormController) OnFieldInput(field, raw string) {
	el := c.doc.GetElementByID(field)
	if el == nil {
		return
	}
	result := c.guard.InspectField(field, raw)
	el.Value = result.Value
	el.Validity = result.ValidityMessage
	if result.Unsafe {
		c.showMessage(i18n.Translate(c.lang, "signup.warning.unsafe_content"), "error")
	}
}

// OnSubmit runs the guard pipeline and, when accepted, starts the submission
func (c *FormController) OnSubmit(ev *Event) {
	ev.PreventDefault()
	c.hideMessage()
	c.doc.Focused = ""

	rawName, rawEmail := ev.Fields[FirstNameID], ev.Fields[EmailID]
	c.setField(FirstNameID, services.SanitizeInput(rawName), "")
	c.setField(EmailID, services.SanitizeInput(rawEmail), "")

	loading := c.state == FormLoading
	if !loading {
		c.state = FormValidating
	}

	admission, err := c.guard.Admit(rawName, rawEmail)
	if err != nil {
		var signupErr *services.SignupError
		if !errors.As(err, &signupErr) {
			c.logger.Error("Signup policy check failed", zap.Error(err))
		}
		rejection := services.AsSignupError(err)
		c.reject(rejection)
		if !loading {
			c.state = FormIdle
		}
		attempt := newAttempt(AttemptRejected)
		attempt.Err = rejection
		attempt.settle()
		ev.Attempt = attempt
		return
	}

	c.state = FormLoading
	if submit := c.doc.GetElementByID(SubmitID); submit != nil {
		submit.Disabled = true
		submit.Text = i18n.Translate(c.lang, "signup.sending")
	}

	attempt := newAttempt(AttemptLoading)
	c.inFlight[attempt] = struct{}{}
	ev.Attempt = attempt
	c.logger.Info("Signup accepted", zap.String("fingerprint", admission.Fingerprint))

	go func() {
		err := c.submitter.Submit(c.ctx, admission.Request)
		if !c.post(func() { c.complete(attempt, admission, err) }) {
			attempt.settle()
		}
	}()
}

func (c *FormController) complete(attempt *Attempt, admission *services.Admission, err error) {
	if err != nil {
		c.logger.Warn("Signup submission failed", zap.Error(err))
		attempt.Status = AttemptFailure
		attempt.Err = &services.SignupError{Kind: services.KindSubmissionFailed}
		c.showMessage(i18n.Translate(c.lang, attempt.Err.MessageKey()), "error")
	} else {
		attempt.Status = AttemptSuccess
		c.showMessage(i18n.Translate(c.lang, "signup.success", map[string]interface{}{
			"name":  admission.Request.FirstName,
			"email": admission.Request.Email,
		}), "success")
		c.setField(FirstNameID, "", "")
		c.setField(EmailID, "", "")
	}

	delete(c.inFlight, attempt)
	if len(c.inFlight) == 0 {
		if submit := c.doc.GetElementByID(SubmitID); submit != nil {
			submit.Disabled = false
			submit.Text = c.originalLabel
		}
		c.state = FormIdle
	}
	attempt.settle()
}

// abandon settles attempts whose completion can no longer run. Called on the
// session goroutine after it stopped taking work.
func (c *FormController) abandon() {
	for attempt := range c.inFlight {
		delete(c.inFlight, attempt)
		attempt.settle()
	}
}

func (c *FormController) reject(err *services.SignupError) {
	if err.Field != "" {
		c.setField(err.Field, c.fieldValue(err.Field), err.MessageKey())
		c.doc.Focused = err.Field
	}
	c.showMessage(i18n.Translate(c.lang, err.MessageKey()), "error")
}

func (c *FormController) setField(id, value, validity string) {
	if el := c.doc.GetElementByID(id); el != nil {
		el.Value = value
		el.Validity = validity
	}
}

func (c *FormController) fieldValue(id string) string {
	if el := c.doc.GetElementByID(id); el != nil {
		return el.Value
	}
	return ""
}

func (c *FormController) showMessage(text, kind string) {
	msg := c.doc.GetElementByID(MessageID)
	if msg == nil {
		return
	}
	msg.Text = text
	msg.SetClasses("message", kind)
	msg.Style["display"] = "block"
}

func (c *FormController) hideMessage() {
	msg := c.doc.GetElementByID(MessageID)
	if msg == nil {
		return
	}
	msg.Text = ""
	msg.SetClasses("message")
	msg.Style["display"] = "none"
}
