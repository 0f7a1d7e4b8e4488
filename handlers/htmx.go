package handlers

import (
	"errors"
	"net/http"

	"minicakes_app_go/middleware"
	"minicakes_app_go/services/page"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// render writes a templ component as an HTML response
func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// errorFragment reports a failed page request; htmx clients get the message
// area swapped out of band
func errorFragment(c echo.Context, status int, message string) error {
	if isHTMX(c) {
		c.Response().Header().Set("HX-Reswap", "none")
		return c.HTML(status, `<div id="message" class="message error" style="display:block" hx-swap-oob="true">`+templ.EscapeString(message)+`</div>`)
	}
	return echo.NewHTTPError(status, message)
}

// dispatchAndSnapshot dispatches ev on the current page and returns the resulting document
func dispatchAndSnapshot(c echo.Context, ev *page.Event) (*page.Document, error) {
	return middleware.GetPage(c).DispatchAndSnapshot(c.Request().Context(), ev)
}

// pageError maps page session errors to responses
func pageError(c echo.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, page.ErrUnhandledEvent):
		return errorFragment(c, http.StatusBadRequest, "Unknown page element")
	case errors.Is(err, page.ErrSessionClosed):
		if isHTMX(c) {
			c.Response().Header().Set("HX-Refresh", "true")
		}
		return c.NoContent(http.StatusGone)
	default:
		zap.L().Error("Page event failed", zap.String("path", c.Path()), zap.Error(err))
		return errorFragment(c, http.StatusInternalServerError, "Something went wrong. Please reload the page.")
	}
}
