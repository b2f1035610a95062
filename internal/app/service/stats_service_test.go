package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

func TestPlayerStatsUnknownPlayer(t *testing.T) {
	svc := NewStatsService(newMemPlayers(), &memHistory{})

	_, err := svc.PlayerStats(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestPlayerStatsIncludesRank(t *testing.T) {
	players := newMemPlayers()
	svc := NewStatsService(players, &memHistory{})
	ctx := context.Background()

	require.NoError(t, players.Ensure(ctx, "u1", "uno"))
	require.NoError(t, players.ApplyDeltas(ctx, map[string]int{"u1": 600})) // 1000 -> 1600

	st, err := svc.PlayerStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1600, st.Player.Points)
	assert.Equal(t, "Diamond", st.Rank)
}

func TestAdjustPointsBounds(t *testing.T) {
	players := newMemPlayers()
	svc := NewStatsService(players, &memHistory{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.AdjustPoints(ctx, "u1", 10001), domain.ErrPointsOutOfRange)
	assert.ErrorIs(t, svc.AdjustPoints(ctx, "u1", -10001), domain.ErrPointsOutOfRange)

	require.NoError(t, players.Ensure(ctx, "u1", "uno"))
	require.NoError(t, svc.AdjustPoints(ctx, "u1", -200))
	assert.Equal(t, 800, players.points("u1"))
}

func TestApplyTimeout(t *testing.T) {
	players := newMemPlayers()
	svc := NewStatsService(players, &memHistory{})
	ctx := context.Background()

	_, err := svc.ApplyTimeout(ctx, "ghost", 30)
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)

	_, err = svc.ApplyTimeout(ctx, "u1", 0)
	assert.ErrorIs(t, err, domain.ErrTimeoutOutOfRange)

	require.NoError(t, players.Ensure(ctx, "u1", "uno"))
	until, err := svc.ApplyTimeout(ctx, "u1", 30)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), until, 5*time.Second)

	p, err := players.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p.TimeoutUntil)
	assert.True(t, p.IsTimedOut(time.Now().UTC()))

	require.NoError(t, svc.RemoveTimeout(ctx, "u1"))
	p, _ = players.Get(ctx, "u1")
	assert.Nil(t, p.TimeoutUntil)
}
