// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	clubsfeature "github.com/dalemusser/clubhub/internal/app/features/clubs"
	eventsfeature "github.com/dalemusser/clubhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/clubhub/internal/app/features/health"
	loginfeature "github.com/dalemusser/clubhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/clubhub/internal/app/features/logout"
	membersfeature "github.com/dalemusser/clubhub/internal/app/features/members"
	signupfeature "github.com/dalemusser/clubhub/internal/app/features/signup"
	memberstore "github.com/dalemusser/clubhub/internal/app/store/members"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. ClubHub applies session
// middleware and mounts the feature routers: directory reads are
// public, content mutations and moderation require the admin role.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// LoadSessionUser fetches fresh member data on each request, so
	// role changes and rejections take effect without a new login.
	sessionMgr.SetUserFetcher(memberstore.NewFetcher(deps.Directory))

	requireAdmin := sessionMgr.RequireRole(string(models.RoleAdmin))

	r := chi.NewRouter()
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.Sessions, sessionMgr, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Get("/session", loginHandler.ServeSession)

	logoutHandler := logoutfeature.NewHandler(deps.Sessions, sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	signupHandler := signupfeature.NewHandler(deps.Directory, logger)
	r.Mount("/signup", signupfeature.Routes(signupHandler))

	// Directory moderation, admin only.
	membersHandler := membersfeature.NewHandler(deps.Directory, logger)
	r.Route("/members", func(r chi.Router) {
		r.Use(requireAdmin)
		r.Mount("/", membersfeature.Routes(membersHandler))
	})

	// Clubs and events: public reads, admin mutations.
	clubsHandler := clubsfeature.NewHandler(deps.Content, logger)
	r.Mount("/clubs", clubsfeature.Routes(clubsHandler, requireAdmin))

	eventsHandler := eventsfeature.NewHandler(deps.Content, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler, requireAdmin))

	return r, nil
}
