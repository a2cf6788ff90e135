package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/config"
)

func TestOpenSessionStoreMemory(t *testing.T) {
	store, dep, closeFn, err := openSessionStore(config.SessionConfig{Driver: config.SessionDriverMemory}, config.RedisConfig{}, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	assert.NotNil(t, store)
	assert.Equal(t, "sessions", dep.Name)
	assert.NoError(t, dep.Pinger.Ping(context.Background()))
}

func TestOpenSessionStoreRedisReadiness(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	store, dep, closeFn, err := openSessionStore(
		config.SessionConfig{Driver: config.SessionDriverRedis},
		config.RedisConfig{Addr: mr.Addr(), Prefix: "portal:session:"},
		zap.NewNop(),
	)
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, "redis", dep.Name)
	assert.NoError(t, dep.Pinger.Ping(context.Background()))

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "sid-1", "tok", 0))
	assert.True(t, mr.Exists("portal:session:sid-1"))

	mr.Close()
	assert.Error(t, dep.Pinger.Ping(ctx))
}
