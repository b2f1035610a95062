package service

import (
	"context"
	"time"

	"github.com/jose-valero/scrims-bot/internal/domain"
	"github.com/jose-valero/scrims-bot/internal/infra/storage"
)

// StatsService: leaderboard, stats personales, historial y los overrides
// administrativos de puntos/timeouts.
type StatsService struct {
	players PlayerRepo
	history HistoryRepo
}

func NewStatsService(players PlayerRepo, history HistoryRepo) *StatsService {
	return &StatsService{players: players, history: history}
}

type PlayerStats struct {
	Player   storage.Player
	Position int
	Rank     string
}

func (s *StatsService) PlayerStats(ctx context.Context, userID string) (PlayerStats, error) {
	p, err := s.players.Get(ctx, userID)
	if err == storage.ErrNotFound {
		return PlayerStats{}, domain.ErrPlayerNotFound
	}
	if err != nil {
		return PlayerStats{}, err
	}
	pos, err := s.players.RankPosition(ctx, userID)
	if err != nil {
		return PlayerStats{}, err
	}
	return PlayerStats{Player: p, Position: pos, Rank: domain.RankFor(p.Points)}, nil
}

func (s *StatsService) Leaderboard(ctx context.Context, limit, offset int) ([]storage.Player, error) {
	return s.players.Leaderboard(ctx, limit, offset)
}

func (s *StatsService) History(ctx context.Context, guildID string, limit, offset int) ([]storage.HistoryEntry, error) {
	return s.history.List(ctx, guildID, limit, offset)
}

func (s *StatsService) ClearHistory(ctx context.Context, guildID string) (int64, error) {
	return s.history.Clear(ctx, guildID)
}

// AdjustPoints: delta administrativo directo (positivo o negativo).
func (s *StatsService) AdjustPoints(ctx context.Context, userID string, delta int) error {
	if delta > domain.MaxPoints || delta < -domain.MaxPoints {
		return domain.ErrPointsOutOfRange
	}
	return s.players.ApplyDeltas(ctx, map[string]int{userID: delta})
}

func (s *StatsService) ApplyTimeout(ctx context.Context, userID string, minutes int) (time.Time, error) {
	if err := domain.ValidateTimeoutMinutes(minutes); err != nil {
		return time.Time{}, err
	}
	until := time.Now().UTC().Add(time.Duration(minutes) * time.Minute)
	if err := s.players.SetTimeout(ctx, userID, until); err != nil {
		if err == storage.ErrNotFound {
			return time.Time{}, domain.ErrPlayerNotFound
		}
		return time.Time{}, err
	}
	return until, nil
}

func (s *StatsService) RemoveTimeout(ctx context.Context, userID string) error {
	return s.players.ClearTimeout(ctx, userID)
}
