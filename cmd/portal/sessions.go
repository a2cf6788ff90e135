package main

import (
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/api/http/handlers"
	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/persistence"
	"github.com/spec-kit/clinic-portal/internal/session"
)

// openSessionStore builds the configured token store and the readiness check that covers it.
// The returned close func releases the backing connection.
func openSessionStore(cfg config.SessionConfig, redisCfg config.RedisConfig, logger *zap.Logger) (session.Store, handlers.Dependency, func(), error) {
	if cfg.Driver != config.SessionDriverRedis {
		store := session.NewMemory()
		return store, handlers.Dependency{Name: "sessions", Pinger: store}, func() {}, nil
	}

	redis := persistence.NewRedis(redisCfg, logger)
	store, err := session.NewRedis(redis.Client, redisCfg.Prefix)
	if err != nil {
		redis.Close()
		return nil, handlers.Dependency{}, nil, err
	}
	return store, handlers.Dependency{Name: "redis", Pinger: redis}, redis.Close, nil
}
