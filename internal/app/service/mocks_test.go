package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jose-valero/scrims-bot/internal/domain"
	"github.com/jose-valero/scrims-bot/internal/infra/storage"
)

// fakes en memoria con la misma semántica que los repos de postgres; lo justo
// para ejercitar los services sin base.

type memPlayers struct {
	mu         sync.Mutex
	players    map[string]*storage.Player
	restricted map[string]bool
	deltaCalls []map[string]int
	failDeltas bool
}

func newMemPlayers() *memPlayers {
	return &memPlayers{
		players:    map[string]*storage.Player{},
		restricted: map[string]bool{},
	}
}

func (r *memPlayers) ensure(userID string) *storage.Player {
	p, ok := r.players[userID]
	if !ok {
		p = &storage.Player{UserID: userID, Points: 1000}
		r.players[userID] = p
	}
	return p
}

func (r *memPlayers) Ensure(ctx context.Context, userID, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure(userID).Username = username
	return nil
}

func (r *memPlayers) Get(ctx context.Context, userID string) (storage.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[userID]
	if !ok {
		return storage.Player{}, storage.ErrNotFound
	}
	return *p, nil
}

func (r *memPlayers) IsRestricted(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.restricted[userID], nil
}

func (r *memPlayers) ApplyDeltas(ctx context.Context, deltas map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDeltas {
		return errors.New("db down")
	}
	cp := make(map[string]int, len(deltas))
	for k, v := range deltas {
		cp[k] = v
		r.ensure(k).Points += v
	}
	r.deltaCalls = append(r.deltaCalls, cp)
	return nil
}

func (r *memPlayers) BumpStats(ctx context.Context, userID string, won, mvp bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.ensure(userID)
	p.MatchesPlayed++
	if won {
		p.MatchesWon++
	}
	if mvp {
		p.MvpCount++
	}
	return nil
}

func (r *memPlayers) SetTimeout(ctx context.Context, userID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[userID]
	if !ok {
		return storage.ErrNotFound
	}
	p.TimeoutUntil = &until
	return nil
}

func (r *memPlayers) ClearTimeout(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[userID]; ok {
		p.TimeoutUntil = nil
	}
	return nil
}

func (r *memPlayers) Leaderboard(ctx context.Context, limit, offset int) ([]storage.Player, error) {
	return nil, nil
}

func (r *memPlayers) RankPosition(ctx context.Context, userID string) (int, error) {
	return 1, nil
}

// points devuelve el saldo actual (helper de asserts).
func (r *memPlayers) points(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.players[userID]; ok {
		return p.Points
	}
	return 0
}

type memMatches struct {
	mu       sync.Mutex
	rows     map[string]*domain.Match
	failSave bool
	saves    int
}

func newMemMatches() *memMatches {
	return &memMatches{rows: map[string]*domain.Match{}}
}

func (r *memMatches) Save(ctx context.Context, m *domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return errors.New("db down")
	}
	r.rows[m.ID] = m.Clone()
	r.saves++
	return nil
}

func (r *memMatches) Get(ctx context.Context, matchID string) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[matchID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return m.Clone(), nil
}

func (r *memMatches) ListActive(ctx context.Context) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.rows {
		if !m.IsTerminal() {
			out = append(out, m.Clone())
		}
	}
	return out, nil
}

func (r *memMatches) stored(matchID string) *domain.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[matchID]
}

type memSettings struct {
	mu  sync.Mutex
	cfg domain.GuildSettings
}

func newMemSettings(cfg domain.GuildSettings) *memSettings {
	return &memSettings{cfg: cfg}
}

func (r *memSettings) Get(ctx context.Context, guildID string) (domain.GuildSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg, nil
}

func (r *memSettings) Upsert(ctx context.Context, s domain.GuildSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = s
	return nil
}

type memHistory struct {
	mu         sync.Mutex
	entries    []storage.HistoryEntry
	failAppend bool
}

func (r *memHistory) Append(ctx context.Context, e storage.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAppend {
		return errors.New("db down")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *memHistory) List(ctx context.Context, guildID string, limit, offset int) ([]storage.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]storage.HistoryEntry(nil), r.entries...), nil
}

func (r *memHistory) Clear(ctx context.Context, guildID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.entries))
	r.entries = nil
	return n, nil
}

type stubNotifier struct {
	mu     sync.Mutex
	events []MatchCancelledEvent
}

func (n *stubNotifier) MatchCancelled(ctx context.Context, ev MatchCancelledEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}
