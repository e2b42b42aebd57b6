package cli

import (
	"context"
	"fmt"

	"github.com/sajilokaam/client-core/internal/core/ports"
	"github.com/sajilokaam/client-core/internal/core/service"
	"github.com/sajilokaam/client-core/internal/infrastructure/api"
	"github.com/sajilokaam/client-core/internal/infrastructure/config"
	"github.com/sajilokaam/client-core/internal/infrastructure/notify"
	"github.com/sajilokaam/client-core/internal/infrastructure/storage"
	"github.com/sajilokaam/client-core/pkg/logger"
)

// app bundles the wired client core for one CLI invocation.
type app struct {
	cfg     *config.Config
	tokens  ports.TokenStore
	client  *api.Client
	auth    *api.AuthAPI
	jobs    *api.JobsAPI
	session *service.SessionStore
	router  *service.PageRouter

	close func()
}

// buildApp wires the token store, API client, session store and page router,
// then restores any persisted session.
func buildApp(ctx context.Context) (*app, error) {
	log := logger.Get()
	a := &app{cfg: cfg, close: func() {}}

	switch cfg.Token.Backend {
	case "redis":
		rdb, err := storage.ConnectRedis(ctx, storage.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.tokens = storage.NewRedisTokenStore(rdb)
		a.close = func() { _ = rdb.Close() }
	default:
		path := cfg.Token.Path
		if path == "" {
			p, err := storage.DefaultTokenPath()
			if err != nil {
				return nil, fmt.Errorf("resolve token path: %w", err)
			}
			path = p
		}
		store, err := storage.NewFileTokenStore(path)
		if err != nil {
			return nil, fmt.Errorf("open token store: %w", err)
		}
		a.tokens = store
	}

	// The token source closes over the app so every request picks up the
	// session's current token, like an HTTP interceptor.
	a.client = api.NewClient(cfg.API.BaseURL,
		api.WithTokenSource(func() string {
			if a.session == nil {
				return ""
			}
			return a.session.Token()
		}),
		api.WithLogger(logger.Component("api")),
	)
	a.auth = api.NewAuthAPI(a.client)
	a.jobs = api.NewJobsAPI(a.client)

	a.session = service.NewSessionStore(a.auth, a.tokens, notify.NewLogNotifier(log), logger.Component("session"),
		service.WithProfileTimeout(cfg.API.ProfileTimeout))
	a.router = service.NewPageRouter(a.session, logger.Component("router"))

	if err := a.session.Initialize(ctx); err != nil {
		log.Warn().Err(err).Msg("session restore failed")
	}
	return a, nil
}
