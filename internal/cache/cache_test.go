package cache

import (
	"aulaquiz/internal/model"
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestStatsCacheRoundTripAndExpiry(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	c := NewStatsCache(client, 30*time.Second)

	miss, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, miss)

	stats := &model.AdminStats{
		Stats:             model.DashboardStats{TotalUsuarios: 7, Profesores: 2},
		UsuariosRecientes: []*model.User{{ID: "u1", IDPortal: "p1", Nombre: "Ana"}},
	}
	require.NoError(t, c.Set(ctx, stats))
	assert.True(t, mr.Exists(statsKey))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.Stats.TotalUsuarios)
	assert.Equal(t, "Ana", got.UsuariosRecientes[0].Nombre)

	mr.FastForward(31 * time.Second)
	expired, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestStatsCacheInvalidate(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	c := NewStatsCache(client, time.Minute)

	require.NoError(t, c.Set(ctx, &model.AdminStats{}))
	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(statsKey))
}

func TestPinCacheReserveIsExclusive(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	c := NewPinCache(client)

	ok, err := c.Reserve(ctx, "ABC234", "pending")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Reserve(ctx, "ABC234", "other")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Bind(ctx, "ABC234", "game-1"))
	id, err := c.Lookup(ctx, "ABC234")
	require.NoError(t, err)
	assert.Equal(t, "game-1", id)

	require.NoError(t, c.Release(ctx, "ABC234"))
	assert.False(t, mr.Exists("partida:pin:ABC234"))

	id, err = c.Lookup(ctx, "ABC234")
	require.NoError(t, err)
	assert.Empty(t, id)
}
