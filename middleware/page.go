package middleware

import (
	"net/http"
	"time"

	"minicakes_app_go/config"
	"minicakes_app_go/services/page"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// VisitorCookieName identifies a browser across page loads, like a sessionStorage origin
	VisitorCookieName = "minicakes_visitor"
	// PageIDHeader carries the page session id on htmx requests
	PageIDHeader = "X-Page-ID"
	// ContextKeyVisitor is the context key for the visitor id
	ContextKeyVisitor = "visitor_id"
	// ContextKeyPage is the context key for the page session
	ContextKeyPage = "page"
	// ContextKeyPages is the context key for the page manager
	ContextKeyPages = "pages"
)

// Visitor makes sure every request carries a visitor id cookie
func Visitor(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			visitorID := ""
			if cookie, err := c.Cookie(VisitorCookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					visitorID = cookie.Value
				}
			}
			if visitorID == "" {
				visitorID = uuid.New().String()
				c.SetCookie(&http.Cookie{
					Name:     VisitorCookieName,
					Value:    visitorID,
					Path:     "/",
					Expires:  time.Now().Add(24 * 365 * time.Hour),
					HttpOnly: true,
					Secure:   cfg.IsProduction(),
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(ContextKeyVisitor, visitorID)
			return next(c)
		}
	}
}

// GetVisitorID returns the visitor id set by Visitor
func GetVisitorID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyVisitor).(string); ok {
		return id
	}
	return ""
}

// Pages makes the page manager available to handlers
func Pages(manager *page.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyPages, manager)
			return next(c)
		}
	}
}

// GetPages returns the page manager, or nil
func GetPages(c echo.Context) *page.Manager {
	manager, _ := c.Get(ContextKeyPages).(*page.Manager)
	return manager
}

// RequirePage loads the page session named by the X-Page-ID header or the
// page_id form value. Pages that expired answer 410 so the client reloads.
func RequirePage() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			manager := GetPages(c)
			if manager == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "page manager not configured")
			}

			pageID := c.Request().Header.Get(PageIDHeader)
			if pageID == "" {
				pageID = c.FormValue("page_id")
			}
			if pageID == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing page id")
			}

			session, ok := manager.Get(pageID)
			if !ok || session.VisitorID != GetVisitorID(c) {
				if c.Request().Header.Get("HX-Request") == "true" {
					c.Response().Header().Set("HX-Refresh", "true")
				}
				return c.NoContent(http.StatusGone)
			}

			c.Set(ContextKeyPage, session)
			return next(c)
		}
	}
}

// GetPage returns the page session loaded by RequirePage
func GetPage(c echo.Context) *page.Session {
	session, _ := c.Get(ContextKeyPage).(*page.Session)
	return session
}
