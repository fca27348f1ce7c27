// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/clubhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup hydrates the in-memory stores from the blob collection after
// DB connections are established, but before the HTTP handler is built.
// Hydration order matters: the session manager validates its persisted
// projection against the directory, so the directory loads first.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	loadCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	deps.Directory.Load(loadCtx)
	deps.Content.Load(loadCtx)

	if appCfg.SeedFixtures {
		if err := seedIfEmpty(deps.Directory, deps.Content, logger); err != nil {
			return err
		}
	}

	deps.Sessions.Load(loadCtx)

	logger.Info("stores hydrated",
		zap.Int("members", len(deps.Directory.Members())),
		zap.Int("clubs", len(deps.Content.Clubs())),
		zap.Int("events", len(deps.Content.Events())))
	return nil
}
