package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

func queueFixture(queueSize int) (*QueueService, *memPlayers) {
	players := newMemPlayers()
	cfg := domain.DefaultSettings("g1")
	cfg.QueueSize = queueSize
	return NewQueueService(players, newMemSettings(cfg)), players
}

func TestQueuePromotesExactlyAtCapacity(t *testing.T) {
	svc, _ := queueFixture(4)
	ctx := context.Background()

	for i := 1; i < 4; i++ {
		res, err := svc.Join(ctx, "g1", fmt.Sprintf("u%d", i), "user")
		require.NoError(t, err)
		assert.Equal(t, i, res.Size)
		assert.Empty(t, res.Promoted)
	}

	res, err := svc.Join(ctx, "g1", "u4", "user")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2", "u3", "u4"}, res.Promoted)

	// la promoción vacía la cola en el acto
	players, _ := svc.Snapshot("g1")
	assert.Empty(t, players)
}

func TestQueueRejectsDuplicates(t *testing.T) {
	svc, _ := queueFixture(4)
	ctx := context.Background()

	_, err := svc.Join(ctx, "g1", "u1", "user")
	require.NoError(t, err)
	_, err = svc.Join(ctx, "g1", "u1", "user")
	assert.ErrorIs(t, err, domain.ErrAlreadyQueued)
}

func TestQueueRejectsRestrictedPlayer(t *testing.T) {
	svc, players := queueFixture(4)
	players.restricted["u1"] = true

	_, err := svc.Join(context.Background(), "g1", "u1", "user")
	assert.ErrorIs(t, err, domain.ErrPlayerRestricted)
}

func TestQueueLeave(t *testing.T) {
	svc, _ := queueFixture(4)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Leave(ctx, "g1", "u1"), domain.ErrNotQueued)

	_, err := svc.Join(ctx, "g1", "u1", "user")
	require.NoError(t, err)
	_, err = svc.Join(ctx, "g1", "u2", "user")
	require.NoError(t, err)

	require.NoError(t, svc.Leave(ctx, "g1", "u1"))
	players, lastLeft := svc.Snapshot("g1")
	assert.Equal(t, []string{"u2"}, players)
	assert.Equal(t, "u1", lastLeft)
}

func TestQueueIsolatedPerGuild(t *testing.T) {
	svc, _ := queueFixture(4)
	ctx := context.Background()

	_, err := svc.Join(ctx, "g1", "u1", "user")
	require.NoError(t, err)
	_, err = svc.Join(ctx, "g2", "u1", "user")
	require.NoError(t, err, "mismo jugador, guilds distintos")

	p1, _ := svc.Snapshot("g1")
	p2, _ := svc.Snapshot("g2")
	assert.Len(t, p1, 1)
	assert.Len(t, p2, 1)
}

func TestForceDrain(t *testing.T) {
	svc, _ := queueFixture(10)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := svc.Join(ctx, "g1", fmt.Sprintf("u%d", i), "user")
		require.NoError(t, err)
	}

	// 3 en cola: ni alcanza ni es par
	_, err := svc.ForceDrain("g1")
	assert.ErrorIs(t, err, domain.ErrBadQueueSize)

	_, err = svc.Join(ctx, "g1", "u4", "user")
	require.NoError(t, err)

	promoted, err := svc.ForceDrain("g1")
	require.NoError(t, err)
	assert.Len(t, promoted, 4)

	players, _ := svc.Snapshot("g1")
	assert.Empty(t, players)
}

func TestQueueClear(t *testing.T) {
	svc, _ := queueFixture(10)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		_, err := svc.Join(ctx, "g1", fmt.Sprintf("u%d", i), "user")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, svc.Clear("g1"))
	players, _ := svc.Snapshot("g1")
	assert.Empty(t, players)
}
