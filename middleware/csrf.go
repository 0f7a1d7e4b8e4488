package middleware

import (
	"net/http"

	"minicakes_app_go/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// CSRF protects the form and event endpoints. htmx sends the token as a header,
// plain form posts and unload beacons as the _csrf field.
func CSRF(cfg *config.Config) echo.MiddlewareFunc {
	return echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: http.SameSiteStrictMode,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/healthz"
		},
	})
}

// GetCSRFToken retrieves the CSRF token from the Echo context
// This token should be included in forms and AJAX requests
func GetCSRFToken(c echo.Context) string {
	token := c.Get("csrf")
	if token == nil {
		return ""
	}
	if tokenStr, ok := token.(string); ok {
		return tokenStr
	}
	return ""
}
