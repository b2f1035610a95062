package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jose-valero/scrims-bot/internal/domain"
	"github.com/jose-valero/scrims-bot/internal/infra/storage"
)

const cancelReasonNoProof = "no proof provided within time limit"

// matchEntry: un lock por match. Toda mutación (pick, voto, prueba, cancel,
// barrido) se serializa acá; matches distintos corren en paralelo.
type matchEntry struct {
	mu sync.Mutex
	m  *domain.Match
}

// MatchService es el registry de matches activos más sus operaciones de
// ciclo de vida. El mapa en memoria es cache: la fila persistida manda, y al
// arrancar el proceso se reconstruye con Restore.
type MatchService struct {
	mu        sync.RWMutex
	byID      map[string]*matchEntry
	byChannel map[string]string

	matches  MatchRepo
	players  PlayerRepo
	history  HistoryRepo
	settings SettingsRepo
	notify   Notifier
}

func NewMatchService(matches MatchRepo, players PlayerRepo, history HistoryRepo, settings SettingsRepo, notify Notifier) *MatchService {
	return &MatchService{
		byID:      map[string]*matchEntry{},
		byChannel: map[string]string{},
		matches:   matches,
		players:   players,
		history:   history,
		settings:  settings,
		notify:    notify,
	}
}

// SetNotifier engancha el adapter después de construir ambos lados (el
// adapter necesita el service y viceversa). Llamar antes de arrancar el
// sweeper.
func (s *MatchService) SetNotifier(n Notifier) { s.notify = n }

// Restore recarga los matches no terminales persistidos. Los votos no se
// persisten, así que un match restaurado en IN_PROGRESS espera votos frescos.
func (s *MatchService) Restore(ctx context.Context) (int, error) {
	active, err := s.matches.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("load active matches: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range active {
		s.byID[m.ID] = &matchEntry{m: m}
		s.byChannel[m.ChannelID] = m.ID
	}
	return len(active), nil
}

// Create promueve la lista llena de la cola a un match en DRAFTING, con dos
// líderes elegidos al azar entre los promovidos.
func (s *MatchService) Create(ctx context.Context, guildID, channelID string, participants []string) (domain.Match, error) {
	// team size sale de los promovidos, no de settings: un force-start puede
	// arrancar con menos jugadores que la capacidad configurada.
	leader1, leader2 := domain.PickLeaders(participants)
	m := domain.NewMatch(guildID, channelID, participants, leader1, leader2, len(participants)/2)

	if err := s.matches.Save(ctx, m); err != nil {
		return domain.Match{}, fmt.Errorf("persist match: %w", err)
	}

	s.mu.Lock()
	s.byID[m.ID] = &matchEntry{m: m}
	s.byChannel[m.ChannelID] = m.ID
	s.mu.Unlock()

	return *m.Clone(), nil
}

func (s *MatchService) Get(matchID string) (domain.Match, error) {
	e := s.entry(matchID)
	if e == nil {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.m.Clone(), nil
}

// GetByChannel resuelve el match activo del canal de scrim (índice
// secundario, nada de scan lineal).
func (s *MatchService) GetByChannel(channelID string) (domain.Match, error) {
	s.mu.RLock()
	id, ok := s.byChannel[channelID]
	s.mu.RUnlock()
	if !ok {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	return s.Get(id)
}

func (s *MatchService) ApplyPick(ctx context.Context, matchID, drafter, playerID string) (domain.Match, error) {
	return s.update(ctx, matchID, func(m *domain.Match) error {
		return m.ApplyPick(drafter, playerID)
	})
}

func (s *MatchService) SetLobby(ctx context.Context, matchID, submitter, lobbyID string) (domain.Match, error) {
	return s.update(ctx, matchID, func(m *domain.Match) error {
		_, err := m.SetLobby(submitter, lobbyID)
		return err
	})
}

func (s *MatchService) VoteWinner(ctx context.Context, matchID, leaderID string, team int) (domain.Match, error) {
	return s.update(ctx, matchID, func(m *domain.Match) error {
		return m.RecordWinnerVote(leaderID, team)
	})
}

func (s *MatchService) VoteMvp(ctx context.Context, matchID, leaderID, playerID string) (domain.Match, error) {
	return s.update(ctx, matchID, func(m *domain.Match) error {
		return m.RecordMvpVote(leaderID, playerID)
	})
}

// SubmitProof completa el match: prueba válida del líder ganador, ledger
// aplicado exactamente una vez, historial y eviction del registry. Una
// carrera con el sweeper la gana quien tome el lock primero; el otro recibe
// MatchTerminal y no deja efectos.
func (s *MatchService) SubmitProof(ctx context.Context, matchID, uploader, filename string, sizeBytes int64, url string) (domain.Match, map[string]int, error) {
	e := s.entry(matchID)
	if e == nil {
		return domain.Match{}, nil, domain.ErrMatchNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	cp := e.m.Clone()
	if err := cp.SubmitProof(uploader, filename, sizeBytes, url); err != nil {
		return *e.m.Clone(), nil, err
	}
	deltas, err := s.settle(ctx, cp)
	if err != nil {
		return *e.m.Clone(), nil, err
	}
	e.m = cp
	s.evict(cp)
	return *cp.Clone(), deltas, nil
}

// ForceWinner: override administrativo; completa sin prueba y deja el MVP
// sin setear.
func (s *MatchService) ForceWinner(ctx context.Context, matchID string, team int) (domain.Match, map[string]int, error) {
	e := s.entry(matchID)
	if e == nil {
		return domain.Match{}, nil, domain.ErrMatchNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	cp := e.m.Clone()
	if err := cp.ForceComplete(team); err != nil {
		return *e.m.Clone(), nil, err
	}
	deltas, err := s.settle(ctx, cp)
	if err != nil {
		return *e.m.Clone(), nil, err
	}
	e.m = cp
	s.evict(cp)
	return *cp.Clone(), deltas, nil
}

// Cancel: corta el match. Lo puede pedir un líder o un admin; sin penalidad
// (la penalidad existe solo en el camino de timeout del sweeper).
func (s *MatchService) Cancel(ctx context.Context, matchID, requester string, isAdmin bool, reason string) (domain.Match, error) {
	e := s.entry(matchID)
	if e == nil {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !isAdmin && !e.m.IsLeader(requester) {
		return *e.m.Clone(), domain.ErrNotALeader
	}
	cp := e.m.Clone()
	if err := cp.Cancel(reason); err != nil {
		return *e.m.Clone(), err
	}
	if err := s.matches.Save(ctx, cp); err != nil {
		return *e.m.Clone(), fmt.Errorf("persist cancel: %w", err)
	}
	e.m = cp
	s.evict(cp)
	return *cp.Clone(), nil
}

// ExpireOverdue: una pasada del sweeper. Cancela los matches en VOTING cuyo
// deadline de prueba venció, penaliza solo a los dos líderes y notifica.
func (s *MatchService) ExpireOverdue(ctx context.Context, now time.Time) int {
	expired := 0
	for _, id := range s.activeIDs() {
		e := s.entry(id)
		if e == nil {
			continue // lo evictaron entre el snapshot y ahora
		}
		if s.expireOne(ctx, e, now) {
			expired++
		}
	}
	return expired
}

func (s *MatchService) expireOne(ctx context.Context, e *matchEntry, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.m.Status != domain.StatusVoting {
		return false
	}
	cfg, err := s.settings.Get(ctx, e.m.GuildID)
	if err != nil {
		return false
	}
	if now.Before(e.m.ProofDeadline(cfg.ProofTimeoutMinutes)) {
		return false
	}

	cp := e.m.Clone()
	if err := cp.Cancel(cancelReasonNoProof); err != nil {
		return false // perdió la carrera contra una prueba en vuelo
	}
	if err := s.matches.Save(ctx, cp); err != nil {
		return false
	}

	// La cancelación ya está persistida: reintentar la pasada duplicaría la
	// penalidad, así que un fallo acá se loguea y el match se cierra igual.
	penalty := map[string]int{
		cp.Leader1: -cfg.NoProofPenalty,
		cp.Leader2: -cfg.NoProofPenalty,
	}
	if err := s.players.ApplyDeltas(ctx, penalty); err != nil {
		log.Printf("[sweeper] %s: apply penalty: %v", cp.ID, err)
	}

	e.m = cp
	s.evict(cp)

	if s.notify != nil {
		s.notify.MatchCancelled(ctx, MatchCancelledEvent{
			MatchID:   cp.ID,
			GuildID:   cp.GuildID,
			ChannelID: cp.ChannelID,
			Reason:    cp.CancelReason,
			Penalized: []string{cp.Leader1, cp.Leader2},
			Penalty:   cfg.NoProofPenalty,
		})
	}
	return true
}

// settle persiste el estado terminal y aplica el resultado: deltas de puntos
// en una transacción, stats por jugador e historial con los deltas tal cual.
// Con los deltas ya pagos la liquidación es irreversible: de ahí en adelante
// ningún error puede dejar el match vivo en el registry, porque un reintento
// volvería a pagar el ledger.
func (s *MatchService) settle(ctx context.Context, m *domain.Match) (map[string]int, error) {
	cfg, err := s.settings.Get(ctx, m.GuildID)
	if err != nil {
		return nil, err
	}
	if err := s.matches.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("persist result: %w", err)
	}

	deltas := domain.ComputeDeltas(m.Team1, m.Team2, m.WinnerTeam, m.MvpID, cfg)
	if err := s.players.ApplyDeltas(ctx, deltas); err != nil {
		return nil, fmt.Errorf("apply deltas: %w", err)
	}
	winners := m.Team1
	if m.WinnerTeam == 2 {
		winners = m.Team2
	}
	won := make(map[string]bool, len(winners))
	for _, p := range winners {
		won[p] = true
	}
	for _, p := range m.AllPlayers() {
		_ = s.players.BumpStats(ctx, p, won[p], p == m.MvpID)
	}

	if err := s.history.Append(ctx, storage.HistoryEntry{
		MatchID:    m.ID,
		GuildID:    m.GuildID,
		Team1:      m.Team1,
		Team2:      m.Team2,
		WinnerTeam: m.WinnerTeam,
		MvpID:      m.MvpID,
		Deltas:     deltas,
		ProofURL:   m.ProofURL,
	}); err != nil {
		log.Printf("[match] %s: append history: %v", m.ID, err)
	}
	return deltas, nil
}

// update: patrón común de mutación. Trabaja sobre una copia y recién publica
// cuando la escritura persistente confirmó; si el guard o el Save fallan, el
// estado en memoria queda intacto.
func (s *MatchService) update(ctx context.Context, matchID string, fn func(*domain.Match) error) (domain.Match, error) {
	e := s.entry(matchID)
	if e == nil {
		return domain.Match{}, domain.ErrMatchNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	cp := e.m.Clone()
	if err := fn(cp); err != nil {
		return *e.m.Clone(), err
	}
	if err := s.matches.Save(ctx, cp); err != nil {
		return *e.m.Clone(), fmt.Errorf("persist match: %w", err)
	}
	e.m = cp
	if cp.IsTerminal() {
		s.evict(cp)
	}
	return *cp.Clone(), nil
}

func (s *MatchService) entry(matchID string) *matchEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[matchID]
}

func (s *MatchService) activeIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	return ids
}

// evict saca el match del registry; se llama una sola vez, con el estado
// terminal ya persistido y bajo el lock del match.
func (s *MatchService) evict(m *domain.Match) {
	s.mu.Lock()
	delete(s.byID, m.ID)
	delete(s.byChannel, m.ChannelID)
	s.mu.Unlock()
}
