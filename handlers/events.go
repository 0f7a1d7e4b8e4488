package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"minicakes_app_go/middleware"
	"minicakes_app_go/services/page"
	"minicakes_app_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// ScrollEventHandler applies a scroll offset and returns the header
func ScrollEventHandler(c echo.Context) error {
	y, err := strconv.ParseFloat(c.FormValue("y"), 64)
	if err != nil {
		return errorFragment(c, http.StatusBadRequest, "Invalid scroll offset")
	}
	doc, err := dispatchAndSnapshot(c, &page.Event{Type: page.EventScroll, ScrollY: y})
	if err != nil {
		return pageError(c, err)
	}
	return render(c, http.StatusOK, partials.Header(doc))
}

// VariantEventHandler selects a variant and returns the showcase stage
func VariantEventHandler(c echo.Context) error {
	key := c.FormValue("key")
	if key == "" {
		return errorFragment(c, http.StatusBadRequest, "Missing variant")
	}
	doc, err := dispatchAndSnapshot(c, &page.Event{Type: page.EventClick, Target: page.VariantElementID(key)})
	if err != nil {
		return pageError(c, err)
	}
	return render(c, http.StatusOK, partials.Showcase(doc))
}

// ShowcaseFragmentHandler returns the current showcase stage
func ShowcaseFragmentHandler(c echo.Context) error {
	doc, err := middleware.GetPage(c).Snapshot(c.Request().Context())
	if err != nil {
		return pageError(c, err)
	}
	return render(c, http.StatusOK, partials.Showcase(doc))
}

// AnchorEventHandler handles an in-page link and tells the client where to scroll
func AnchorEventHandler(c echo.Context) error {
	id := c.FormValue("id")
	if id == "" {
		return errorFragment(c, http.StatusBadRequest, "Missing link")
	}
	doc, err := dispatchAndSnapshot(c, &page.Event{Type: page.EventClick, Target: id})
	if err != nil {
		return pageError(c, err)
	}
	if doc.Scroll != nil {
		trigger, err := json.Marshal(map[string]*page.ScrollRequest{"page:scroll": doc.Scroll})
		if err == nil {
			c.Response().Header().Set("HX-Trigger", string(trigger))
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// RevealRequest carries intersection entries measured by the client
type RevealRequest struct {
	Entries []page.IntersectionEntry `json:"entries"`
}

// RevealEventHandler marks observed sections visible and lists the ones revealed
func RevealEventHandler(c echo.Context) error {
	var req RevealRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid intersection entries")
	}
	ev := &page.Event{Type: page.EventIntersect, Entries: req.Entries}
	if err := middleware.GetPage(c).Dispatch(c.Request().Context(), ev); err != nil {
		return pageError(c, err)
	}
	revealed := ev.Revealed
	if revealed == nil {
		revealed = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"revealed": revealed})
}

// InputEventHandler sanitizes a typed or pasted field value. It returns the
// field and swaps the message area out of band.
func InputEventHandler(c echo.Context) error {
	field := c.FormValue("field")
	if field != page.FirstNameID && field != page.EmailID {
		return errorFragment(c, http.StatusBadRequest, "Unknown field")
	}

	params, err := c.FormParams()
	if err != nil {
		return errorFragment(c, http.StatusBadRequest, "Invalid form")
	}
	value := params.Get(field)
	if values, ok := params["value"]; ok && len(values) > 0 {
		value = values[0]
	}

	eventType := page.EventInput
	if c.FormValue("event") == string(page.EventPaste) {
		eventType = page.EventPaste
	}

	doc, err := dispatchAndSnapshot(c, &page.Event{Type: eventType, Target: field, Value: value})
	if err != nil {
		return pageError(c, err)
	}

	var buf bytes.Buffer
	ctx := c.Request().Context()
	if err := partials.Field(doc, field).Render(ctx, &buf); err != nil {
		return err
	}
	if err := partials.Message(doc, true).Render(ctx, &buf); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// TabEventHandler scopes the page's session storage to the tab id the browser
// kept in its own sessionStorage
func TabEventHandler(c echo.Context) error {
	err := middleware.GetPage(c).AdoptTab(c.Request().Context(), c.FormValue("tab_id"))
	if errors.Is(err, page.ErrInvalidTab) {
		return errorFragment(c, http.StatusBadRequest, "Invalid tab")
	}
	if err != nil {
		return pageError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UnloadEventHandler runs the unload handlers and drops the page session
func UnloadEventHandler(c echo.Context) error {
	session := middleware.GetPage(c)
	if err := middleware.GetPages(c).Close(c.Request().Context(), session.ID); err != nil {
		return pageError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
