package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDeltas(t *testing.T) {
	cfg := DefaultSettings("g1")
	team1 := []string{"a", "b", "c", "d", "e"}
	team2 := []string{"f", "g", "h", "i", "j"}

	deltas := ComputeDeltas(team1, team2, 1, "c", cfg)

	assert.Len(t, deltas, 10, "cada jugador recibe exactamente un delta")
	for _, p := range team1 {
		if p == "c" {
			assert.Equal(t, cfg.PointsWin+cfg.PointsMvp, deltas[p])
			continue
		}
		assert.Equal(t, cfg.PointsWin, deltas[p])
	}
	for _, p := range team2 {
		assert.Equal(t, cfg.PointsLoss, deltas[p])
	}
}

func TestComputeDeltasMvpOnLosingTeam(t *testing.T) {
	cfg := DefaultSettings("g1")
	team1 := []string{"a", "b"}
	team2 := []string{"c", "d"}

	// el MVP suma su bonus aunque haya perdido
	deltas := ComputeDeltas(team1, team2, 1, "d", cfg)
	assert.Equal(t, cfg.PointsLoss+cfg.PointsMvp, deltas["d"])
}

func TestComputeDeltasNoMvp(t *testing.T) {
	cfg := DefaultSettings("g1")
	deltas := ComputeDeltas([]string{"a"}, []string{"b"}, 2, "", cfg)
	assert.Equal(t, cfg.PointsLoss, deltas["a"])
	assert.Equal(t, cfg.PointsWin, deltas["b"])
}

func TestRankFor(t *testing.T) {
	assert.Equal(t, "Bronze", RankFor(0))
	assert.Equal(t, "Bronze", RankFor(599))
	assert.Equal(t, "Silver", RankFor(600))
	assert.Equal(t, "Gold", RankFor(1000))
	assert.Equal(t, "Platinum", RankFor(1200))
	assert.Equal(t, "Diamond", RankFor(1500))
	assert.Equal(t, "Ascendant", RankFor(1800))
	assert.Equal(t, "Immortal", RankFor(2200))
	assert.Equal(t, "Immortal", RankFor(9000))
}
