package service

import (
	"context"
	"time"

	"github.com/jose-valero/scrims-bot/internal/domain"
	"github.com/jose-valero/scrims-bot/internal/infra/storage"
)

// Lo implementa internal/infra/storage.PlayerRepo
type PlayerRepo interface {
	Ensure(ctx context.Context, userID, username string) error
	Get(ctx context.Context, userID string) (storage.Player, error)
	IsRestricted(ctx context.Context, userID string) (bool, error)
	ApplyDeltas(ctx context.Context, deltas map[string]int) error
	BumpStats(ctx context.Context, userID string, won, mvp bool) error
	SetTimeout(ctx context.Context, userID string, until time.Time) error
	ClearTimeout(ctx context.Context, userID string) error
	Leaderboard(ctx context.Context, limit, offset int) ([]storage.Player, error)
	RankPosition(ctx context.Context, userID string) (int, error)
}

// Lo implementa internal/infra/storage.MatchRepo
type MatchRepo interface {
	Save(ctx context.Context, m *domain.Match) error
	Get(ctx context.Context, matchID string) (*domain.Match, error)
	ListActive(ctx context.Context) ([]*domain.Match, error)
}

// Lo implementa internal/infra/storage.SettingsRepo
type SettingsRepo interface {
	Get(ctx context.Context, guildID string) (domain.GuildSettings, error)
	Upsert(ctx context.Context, s domain.GuildSettings) error
}

// Lo implementa internal/infra/storage.HistoryRepo
type HistoryRepo interface {
	Append(ctx context.Context, e storage.HistoryEntry) error
	List(ctx context.Context, guildID string, limit, offset int) ([]storage.HistoryEntry, error)
	Clear(ctx context.Context, guildID string) (int64, error)
}

// MatchCancelledEvent lo emite el sweeper para que el adapter lo anuncie.
type MatchCancelledEvent struct {
	MatchID   string
	GuildID   string
	ChannelID string
	Reason    string
	Penalized []string
	Penalty   int
}

// Lo implementa el adapter de discord; el core no renderiza nada.
type Notifier interface {
	MatchCancelled(ctx context.Context, ev MatchCancelledEvent)
}
