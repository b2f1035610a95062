package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

func TestRankRoleTableCoversEveryTier(t *testing.T) {
	for _, r := range domain.Ranks {
		rr, ok := rankRoleByTier[r.Name]
		assert.True(t, ok, "tier %s sin rol", r.Name)
		assert.NotEmpty(t, rr.Name)
		assert.NotZero(t, rr.Color)
	}
}

func TestStaleRankRoleIDs(t *testing.T) {
	idByName := map[string]string{
		"🟡 Gold":      "r-gold",
		"💎 Diamond":   "r-diamond",
		"🌟 Radiant":   "r-radiant",
		"Miembro VIP": "r-vip",
	}

	// se van los rangos viejos; el tier nuevo y los roles ajenos quedan
	stale := staleRankRoleIDs([]string{"r-gold", "r-diamond", "r-vip"}, idByName, "r-diamond")
	assert.Equal(t, []string{"r-gold"}, stale)

	// Radiant no está en la tabla de tiers, así que el sync nunca lo saca
	stale = staleRankRoleIDs([]string{"r-radiant", "r-gold"}, idByName, "r-diamond")
	assert.Equal(t, []string{"r-gold"}, stale)

	// sin rangos previos no hay nada que limpiar
	assert.Empty(t, staleRankRoleIDs([]string{"r-vip"}, idByName, "r-gold"))
}
