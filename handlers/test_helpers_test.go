package handlers

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"minicakes_app_go/config"
	"minicakes_app_go/db"
	"minicakes_app_go/middleware"
	"minicakes_app_go/models"
	"minicakes_app_go/services"
	"minicakes_app_go/services/i18n"
	"minicakes_app_go/services/page"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(&models.SessionEntry{})
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:           "test",
		HeaderScrollThreshold: 100,
		SubmitCooldown:        5 * time.Second,
		DuplicateWindow:       30 * time.Second,
		SimulatedDelay:        10 * time.Millisecond,
		SignupMode:            config.SignupModeSimulated,
		EbookKey:              "ebook/mini-cakes.pdf",
	}
}

// setupPages returns a page manager backed by database with a fast simulated submitter
func setupPages(t *testing.T, database *gorm.DB) *page.Manager {
	require.NoError(t, i18n.Load())
	cfg := testConfig()
	manager := page.NewManager(page.NewFactory(page.Dependencies{
		Config:  cfg,
		Content: services.DefaultLandingContent(),
		DB:      database,
		Submitter: func(string) services.SignupSubmitter {
			return &services.SimulatedSubmitter{Delay: cfg.SimulatedDelay}
		},
	}), time.Minute, nil)
	t.Cleanup(func() { manager.Shutdown(t.Context()) })
	return manager
}

// openPage opens a loaded page for a new visitor
func openPage(t *testing.T, manager *page.Manager) *page.Session {
	session, err := manager.Open(uuid.New().String(), "en")
	require.NoError(t, err)
	require.NoError(t, session.Dispatch(t.Context(), &page.Event{Type: page.EventLoad, URL: "/"}))
	return session
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", testConfig())

	return e, c, rec
}

// withPage puts the manager and page session on c the way the middleware does
func withPage(c echo.Context, manager *page.Manager, session *page.Session) {
	c.Set(middleware.ContextKeyPages, manager)
	c.Set(middleware.ContextKeyVisitor, session.VisitorID)
	c.Set(middleware.ContextKeyPage, session)
}

func formRequest(c echo.Context) {
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
}
