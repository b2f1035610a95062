package service

import (
	"context"
	"sync"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

// guildQueue: lista ordenada y sin duplicados, una por guild, creada lazy.
type guildQueue struct {
	players  []string
	lastLeft string
}

func (q *guildQueue) contains(userID string) bool {
	for _, p := range q.players {
		if p == userID {
			return true
		}
	}
	return false
}

type QueueService struct {
	mu       sync.Mutex
	queues   map[string]*guildQueue
	players  PlayerRepo
	settings SettingsRepo
}

func NewQueueService(players PlayerRepo, settings SettingsRepo) *QueueService {
	return &QueueService{
		queues:   map[string]*guildQueue{},
		players:  players,
		settings: settings,
	}
}

// JoinResult: si Promoted viene no-vacío la cola se llenó y ya fue vaciada;
// esa lista es la que hay que convertir en match.
type JoinResult struct {
	Size     int
	Capacity int
	Promoted []string
}

// Join agrega al jugador y, si con él la cola llega a capacidad, la vacía y
// devuelve la lista completa en la misma sección crítica: nadie puede ver una
// cola llena sin promover.
func (s *QueueService) Join(ctx context.Context, guildID, userID, username string) (JoinResult, error) {
	if err := s.players.Ensure(ctx, userID, username); err != nil {
		return JoinResult{}, err
	}
	restricted, err := s.players.IsRestricted(ctx, userID)
	if err != nil {
		return JoinResult{}, err
	}
	if restricted {
		return JoinResult{}, domain.ErrPlayerRestricted
	}
	cfg, err := s.settings.Get(ctx, guildID)
	if err != nil {
		return JoinResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.queue(guildID)
	if q.contains(userID) {
		return JoinResult{}, domain.ErrAlreadyQueued
	}
	if len(q.players) >= cfg.QueueSize {
		return JoinResult{}, domain.ErrQueueFull
	}

	q.players = append(q.players, userID)
	res := JoinResult{Size: len(q.players), Capacity: cfg.QueueSize}
	if len(q.players) == cfg.QueueSize {
		res.Promoted = append([]string(nil), q.players...)
		q.players = q.players[:0]
		q.lastLeft = ""
	}
	return res, nil
}

func (s *QueueService) Leave(ctx context.Context, guildID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.queue(guildID)
	for i, p := range q.players {
		if p == userID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			q.lastLeft = userID
			return nil
		}
	}
	return domain.ErrNotQueued
}

// Snapshot devuelve una copia para renderizar (jugadores + último que se fue).
func (s *QueueService) Snapshot(guildID string) ([]string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.queue(guildID)
	return append([]string(nil), q.players...), q.lastLeft
}

// Clear vacía la cola (admin).
func (s *QueueService) Clear(guildID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.queue(guildID)
	n := len(q.players)
	q.players = q.players[:0]
	q.lastLeft = ""
	return n
}

// ForceDrain: arranque forzado con los que estén (admin). Exige al menos 4
// jugadores y cantidad par para poder armar dos equipos.
func (s *QueueService) ForceDrain(guildID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.queue(guildID)
	if len(q.players) < domain.MinQueueSize || len(q.players)%2 != 0 {
		return nil, domain.ErrBadQueueSize
	}
	promoted := append([]string(nil), q.players...)
	q.players = q.players[:0]
	q.lastLeft = ""
	return promoted, nil
}

func (s *QueueService) queue(guildID string) *guildQueue {
	q, ok := s.queues[guildID]
	if !ok {
		q = &guildQueue{}
		s.queues[guildID] = q
	}
	return q
}
