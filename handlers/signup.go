package handlers

import (
	"net/http"

	"minicakes_app_go/middleware"
	"minicakes_app_go/services"
	"minicakes_app_go/services/page"
	"minicakes_app_go/templates/partials"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SignupResponse is the JSON answer for clients that are not htmx
type SignupResponse struct {
	Status  page.AttemptStatus `json:"status"`
	Error   string             `json:"error,omitempty"`
	Field   string             `json:"field,omitempty"`
	Message string             `json:"message"`
}

// SignupHandler runs the form guard on a submission and waits for its outcome
func SignupHandler(c echo.Context) error {
	session := middleware.GetPage(c)
	ctx := c.Request().Context()

	ev := &page.Event{
		Type:   page.EventSubmit,
		Target: page.FormID,
		Fields: map[string]string{
			page.FirstNameID: c.FormValue(page.FirstNameID),
			page.EmailID:     c.FormValue(page.EmailID),
		},
	}
	if err := session.Dispatch(ctx, ev); err != nil {
		return pageError(c, err)
	}

	attempt := ev.Attempt
	if attempt == nil {
		zap.L().Error("Submit produced no attempt", zap.String("page_id", session.ID))
		return errorFragment(c, http.StatusInternalServerError, "Something went wrong. Please reload the page.")
	}
	if err := attempt.Wait(ctx); err != nil {
		// Client went away; the submission still completes on the page
		return err
	}

	if attempt.Err != nil {
		services.Monitor.TrackRejection(c.RealIP(), attempt.Err.Kind)
	}

	doc, err := session.Snapshot(ctx)
	if err != nil {
		return pageError(c, err)
	}

	if isHTMX(c) {
		return render(c, http.StatusOK, partials.SignupPanel(doc, middleware.GetCSRFToken(c)))
	}

	resp := SignupResponse{Status: attempt.Status}
	if msg := doc.GetElementByID(page.MessageID); msg != nil {
		resp.Message = msg.Text
	}
	if attempt.Err != nil {
		resp.Error = string(attempt.Err.Kind)
		resp.Field = attempt.Err.Field
	}
	return c.JSON(signupStatusCode(attempt), resp)
}

func signupStatusCode(attempt *page.Attempt) int {
	switch attempt.Status {
	case page.AttemptSuccess:
		return http.StatusOK
	case page.AttemptFailure:
		return http.StatusBadGateway
	}
	if attempt.Err == nil {
		return http.StatusUnprocessableEntity
	}
	switch attempt.Err.Kind {
	case services.KindRateLimited, services.KindDuplicateRecent:
		return http.StatusTooManyRequests
	default:
		return http.StatusUnprocessableEntity
	}
}

// SignupStatusHandler reports the current form state of the page
func SignupStatusHandler(c echo.Context) error {
	session := middleware.GetPage(c)
	var state page.FormState
	err := session.Do(c.Request().Context(), func(*page.Document) {
		state = session.Form.State()
	})
	if err != nil {
		return pageError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"state": string(state)})
}
