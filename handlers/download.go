package handlers

import (
	"errors"
	"net/http"
	"path"

	"minicakes_app_go/config"
	"minicakes_app_go/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EbookDownloadHandler streams the e-book from asset storage.
// Only the configured e-book key is downloadable.
func EbookDownloadHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)
	if c.Param("*") != cfg.EbookKey || services.Storage == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	reader, contentType, err := services.Storage.Get(c.Request().Context(), cfg.EbookKey)
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "E-book not available")
		}
		zap.L().Error("Failed to read e-book", zap.String("key", cfg.EbookKey), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to download e-book")
	}
	defer reader.Close()

	c.Response().Header().Set("Content-Disposition", `attachment; filename="`+path.Base(cfg.EbookKey)+`"`)
	c.Response().Header().Set("Cache-Control", "private, max-age=3600")
	return c.Stream(http.StatusOK, contentType, reader)
}
