package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func TestSettingsPartialUpdate(t *testing.T) {
	svc := NewSettingsService(newMemSettings(domain.DefaultSettings("g1")))
	ctx := context.Background()

	got, err := svc.Update(ctx, "g1", SettingsPatch{PointsWin: intp(50)})
	require.NoError(t, err)
	assert.Equal(t, 50, got.PointsWin)
	// lo no tocado queda como estaba
	assert.Equal(t, -30, got.PointsLoss)
	assert.Equal(t, 10, got.QueueSize)
}

func TestSettingsNormalizesLossToNegative(t *testing.T) {
	svc := NewSettingsService(newMemSettings(domain.DefaultSettings("g1")))
	ctx := context.Background()

	got, err := svc.Update(ctx, "g1", SettingsPatch{PointsLoss: intp(25)})
	require.NoError(t, err)
	assert.Equal(t, -25, got.PointsLoss)

	got, err = svc.Update(ctx, "g1", SettingsPatch{PointsLoss: intp(-40)})
	require.NoError(t, err)
	assert.Equal(t, -40, got.PointsLoss)
}

func TestSettingsValidation(t *testing.T) {
	svc := NewSettingsService(newMemSettings(domain.DefaultSettings("g1")))
	ctx := context.Background()

	_, err := svc.Update(ctx, "g1", SettingsPatch{QueueSize: intp(7)})
	assert.ErrorIs(t, err, domain.ErrBadQueueSize)

	_, err = svc.Update(ctx, "g1", SettingsPatch{PointsWin: intp(10001)})
	assert.ErrorIs(t, err, domain.ErrPointsOutOfRange)

	_, err = svc.Update(ctx, "g1", SettingsPatch{ProofTimeoutMinutes: intp(0)})
	assert.ErrorIs(t, err, domain.ErrTimeoutOutOfRange)

	// un patch inválido no persiste nada
	cur, err := svc.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings("g1"), cur)

	_, err = svc.Update(ctx, "g1", SettingsPatch{RankRolesEnabled: boolp(false)})
	require.NoError(t, err)
}
