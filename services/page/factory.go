package page

import (
	"minicakes_app_go/config"
	"minicakes_app_go/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the process-wide collaborators shared by every page
type Dependencies struct {
	Config  *config.Config
	Content *services.LandingContent
	// DB backs per-tab session storage; nil keeps it in memory per page
	DB    *gorm.DB
	Clock services.Clock
	// Submitter overrides the configured signup integration
	Submitter func(lang string) services.SignupSubmitter
	Logger    *zap.Logger
}

// NewFactory returns a Factory building pages from deps
func NewFactory(deps Dependencies) Factory {
	return func(pageID, visitorID, lang string) (*Session, error) {
		openStorage := func(tabID string) services.SessionStorage {
			if deps.DB == nil {
				return services.NewMemorySessionStorage()
			}
			return services.NewGormSessionStorage(deps.DB, services.TabSessionID(visitorID, tabID))
		}

		policy := services.NewSubmissionPolicy(deps.Config.SubmitCooldown, deps.Config.DuplicateWindow, openStorage(pageID))

		var submitter services.SignupSubmitter
		if deps.Submitter != nil {
			submitter = deps.Submitter(lang)
		} else {
			submitter = services.NewSignupSubmitter(deps.Config, lang)
		}

		return NewSession(Options{
			ID:              pageID,
			VisitorID:       visitorID,
			Lang:            lang,
			Content:         deps.Content,
			HeaderThreshold: deps.Config.HeaderScrollThreshold,
			Reveal:          DefaultRevealOptions,
			Guard:           services.NewFormGuard(policy, deps.Clock),
			Submitter:       submitter,
			OpenStorage:     openStorage,
			Logger:          deps.Logger,
		}), nil
	}
}
