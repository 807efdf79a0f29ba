package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/aircast/internal/app"
	"github.com/dkeye/aircast/internal/domain"
)

func TestSessionLifetime(t *testing.T) {
	clk := clock.NewMock()
	store := app.NewSessionStore(clk, time.Hour)

	sess := store.Create(domain.RoleHost)
	assert.Equal(t, domain.RoleHost, sess.Role)

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess.ID, got.ID)

	clk.Add(59 * time.Minute)
	_, ok = store.Get(sess.ID)
	assert.True(t, ok)

	// Expired entries are invisible even before the sweeper runs.
	clk.Add(2 * time.Minute)
	_, ok = store.Get(sess.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())
}

func TestSessionUnknownID(t *testing.T) {
	store := app.NewSessionStore(clock.NewMock(), time.Hour)
	_, ok := store.Get("nope")
	assert.False(t, ok)
}

func TestSweeperRemovesExpired(t *testing.T) {
	clk := clock.NewMock()
	store := app.NewSessionStore(clk, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store.StartSweeper(ctx, time.Minute)

	store.Create(domain.RoleHost)
	store.Create(domain.RoleHost)
	require.Equal(t, 2, store.Len())

	clk.Add(61 * time.Minute)

	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestSweeperStopsOnCancel(t *testing.T) {
	clk := clock.NewMock()
	store := app.NewSessionStore(clk, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	store.StartSweeper(ctx, time.Minute)
	cancel()

	// Give the goroutine a beat to observe cancellation, then verify
	// ticks no longer sweep.
	time.Sleep(20 * time.Millisecond)
	store.Create(domain.RoleHost)
	clk.Add(2 * time.Hour)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, store.Len())
}
