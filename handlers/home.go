package handlers

import (
	"net/http"

	"minicakes_app_go/middleware"
	"minicakes_app_go/services/page"
	"minicakes_app_go/templates/pages"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LandingHandler opens a page session, runs its load handlers and renders the page
func LandingHandler(c echo.Context) error {
	manager := middleware.GetPages(c)
	if manager == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "page manager not configured")
	}

	session, err := manager.Open(middleware.GetVisitorID(c), middleware.GetLocale(c))
	if err != nil {
		zap.L().Error("Failed to open page session", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load page")
	}

	ctx := c.Request().Context()
	doc, err := session.DispatchAndSnapshot(ctx, &page.Event{Type: page.EventLoad, URL: c.Request().URL.RequestURI()})
	if err != nil {
		zap.L().Error("Page load failed", zap.String("page_id", session.ID), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load page")
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return render(c, http.StatusOK, pages.Landing(doc, session.ID, middleware.GetCSRFToken(c)))
}

// HealthHandler reports liveness, the database and the number of live pages
func HealthHandler(db interface{ Ping() error }) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := http.StatusOK
		body := map[string]interface{}{"status": "ok"}
		if manager := middleware.GetPages(c); manager != nil {
			body["pages"] = manager.Len()
		}
		if db != nil {
			if err := db.Ping(); err != nil {
				zap.L().Warn("Health check database ping failed", zap.Error(err))
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
			}
		}
		return c.JSON(status, body)
	}
}
