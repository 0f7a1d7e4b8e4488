package middleware

import (
	"net/http"
	"strings"
	"time"

	"minicakes_app_go/config"
	"minicakes_app_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("en")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var lang string
			if requested := c.QueryParam("lang"); requested != "" {
				lang = i18n.Resolve(requested)
				setLanguageCookie(c, lang, cfg.IsProduction())
			} else if cookie, err := c.Cookie("lang"); err == nil && cookie.Value != "" {
				lang = i18n.Resolve(cookie.Value)
			} else {
				lang = fromAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))

			return next(c)
		}
	}
}

// fromAcceptLanguage picks the first tag with a loaded catalog, in header order
func fromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "*" {
			continue
		}
		base, _, _ := strings.Cut(strings.ToLower(tag), "-")
		if lang := i18n.Resolve(tag); lang == base {
			return lang
		}
	}
	return i18n.Resolve("")
}

// SetLanguageCookie sets the language cookie
func SetLanguageCookie(c echo.Context, lang string) {
	cfg, ok := c.Get("config").(*config.Config)
	setLanguageCookie(c, lang, ok && cfg.IsProduction())
}

func setLanguageCookie(c echo.Context, lang string, secure bool) {
	cookie := new(http.Cookie)
	cookie.Name = "lang"
	cookie.Value = lang
	cookie.Expires = time.Now().Add(24 * 365 * time.Hour) // 1 year
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Secure = secure
	c.SetCookie(cookie)
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	val := c.Get("locale")
	if lang, ok := val.(string); ok {
		return lang
	}
	return "en"
}
