package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

type fixture struct {
	svc      *MatchService
	matches  *memMatches
	players  *memPlayers
	history  *memHistory
	settings *memSettings
	notify   *stubNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := domain.DefaultSettings("g1")
	cfg.QueueSize = 4

	f := &fixture{
		matches:  newMemMatches(),
		players:  newMemPlayers(),
		history:  &memHistory{},
		settings: newMemSettings(cfg),
		notify:   &stubNotifier{},
	}
	f.svc = NewMatchService(f.matches, f.players, f.history, f.settings, f.notify)
	return f
}

var testParticipants = []string{"u1", "u2", "u3", "u4"}

// createMatch registra a los jugadores (como haría la cola) y crea el match.
func createMatch(t *testing.T, f *fixture) domain.Match {
	t.Helper()
	ctx := context.Background()
	for _, p := range testParticipants {
		require.NoError(t, f.players.Ensure(ctx, p, p))
	}
	m, err := f.svc.Create(ctx, "g1", "chan-1", testParticipants)
	require.NoError(t, err)
	return m
}

// drive avanza el match por draft, lobby y votos hasta VOTING, con el
// equipo 1 ganador y su líder como MVP.
func driveToVoting(t *testing.T, f *fixture, m domain.Match) domain.Match {
	t.Helper()
	ctx := context.Background()

	for m.Status == domain.StatusDrafting {
		picksMade := len(m.Team1) + len(m.Team2) - 2
		turn := domain.NextDrafter(picksMade, m.Leader1, m.Leader2)
		avail := domain.AvailablePlayers(m.Participants, m.Team1, m.Team2)
		var err error
		m, err = f.svc.ApplyPick(ctx, m.ID, turn, avail[0])
		require.NoError(t, err)
	}

	m, err := f.svc.SetLobby(ctx, m.ID, m.Leader2, "AB12")
	require.NoError(t, err)
	require.Equal(t, domain.StatusInProgress, m.Status)

	_, err = f.svc.VoteWinner(ctx, m.ID, m.Leader1, 1)
	require.NoError(t, err)
	_, err = f.svc.VoteWinner(ctx, m.ID, m.Leader2, 1)
	require.NoError(t, err)
	_, err = f.svc.VoteMvp(ctx, m.ID, m.Leader1, m.Leader1)
	require.NoError(t, err)
	m, err = f.svc.VoteMvp(ctx, m.ID, m.Leader2, m.Leader1)
	require.NoError(t, err)
	require.Equal(t, domain.StatusVoting, m.Status)
	return m
}

func TestMatchLifecycleCompletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := createMatch(t, f)
	assert.Equal(t, domain.StatusDrafting, m.Status)
	assert.NotEqual(t, m.Leader1, m.Leader2)

	m = driveToVoting(t, f, m)

	done, deltas, err := f.svc.SubmitProof(ctx, m.ID, m.WinningLeader(), "win.png", 1024, "http://cdn/win.png")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)

	// deltas: +30 ganadores, -30 perdedores, +10 al MVP
	cfg := domain.DefaultSettings("g1")
	for _, p := range done.Team1 {
		want := cfg.PointsWin
		if p == done.MvpID {
			want += cfg.PointsMvp
		}
		assert.Equal(t, want, deltas[p])
	}
	for _, p := range done.Team2 {
		assert.Equal(t, cfg.PointsLoss, deltas[p])
	}

	// el ledger se aplicó una sola vez y el historial tiene la entrada
	assert.Len(t, f.players.deltaCalls, 1)
	require.Len(t, f.history.entries, 1)
	assert.Equal(t, done.ID, f.history.entries[0].MatchID)
	assert.Equal(t, deltas, f.history.entries[0].Deltas)

	// terminal: afuera del registry, la fila quedó completa
	_, err = f.svc.Get(m.ID)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	_, err = f.svc.GetByChannel("chan-1")
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	assert.Equal(t, domain.StatusCompleted, f.matches.stored(m.ID).Status)

	// una segunda prueba no re-aplica nada
	_, _, err = f.svc.SubmitProof(ctx, m.ID, done.WinningLeader(), "win.png", 1024, "u")
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	assert.Len(t, f.players.deltaCalls, 1)
}

func TestHistoryFailureDoesNotReapplyLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := createMatch(t, f)
	m = driveToVoting(t, f, m)

	// historial caído: los puntos ya se pagaron, así que el match cierra igual
	f.history.failAppend = true
	done, deltas, err := f.svc.SubmitProof(ctx, m.ID, m.WinningLeader(), "win.png", 1024, "u")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)
	assert.NotEmpty(t, deltas)
	assert.Len(t, f.players.deltaCalls, 1)
	assert.Empty(t, f.history.entries)

	// reintentar la prueba no vuelve a pagar el ledger
	_, _, err = f.svc.SubmitProof(ctx, m.ID, done.WinningLeader(), "win.png", 1024, "u")
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	assert.Len(t, f.players.deltaCalls, 1)

	// y la fila quedó completa, no en VOTING
	assert.Equal(t, domain.StatusCompleted, f.matches.stored(m.ID).Status)
}

func TestFullQueueBecomesMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cfg := domain.DefaultSettings("g1")
	cfg.QueueSize = 10
	require.NoError(t, f.settings.Upsert(ctx, cfg))
	queue := NewQueueService(f.players, f.settings)

	var promoted []string
	for i := 1; i <= 10; i++ {
		res, err := queue.Join(ctx, "g1", "u"+strconv.Itoa(i), "user")
		require.NoError(t, err)
		promoted = res.Promoted
	}
	require.Len(t, promoted, 10, "el décimo join promueve")

	inQueue, _ := queue.Snapshot("g1")
	assert.Empty(t, inQueue, "la cola queda vacía apenas promueve")

	m, err := f.svc.Create(ctx, "g1", "chan-10", promoted)
	require.NoError(t, err)
	assert.Equal(t, 5, m.TeamSize)
	assert.NotEqual(t, m.Leader1, m.Leader2)
	assert.Contains(t, promoted, m.Leader1)
	assert.Contains(t, promoted, m.Leader2)
}

func TestFailedSaveLeavesMemoryUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := createMatch(t, f)
	avail := domain.AvailablePlayers(m.Participants, m.Team1, m.Team2)

	f.matches.failSave = true
	_, err := f.svc.ApplyPick(ctx, m.ID, m.Leader1, avail[0])
	require.Error(t, err)

	// nada cambió en memoria
	cur, err := f.svc.Get(m.ID)
	require.NoError(t, err)
	assert.Len(t, cur.Team1, 1)

	// con la DB de vuelta el mismo pick entra limpio
	f.matches.failSave = false
	cur, err = f.svc.ApplyPick(ctx, m.ID, m.Leader1, avail[0])
	require.NoError(t, err)
	assert.Len(t, cur.Team1, 2)
}

func TestGetByChannel(t *testing.T) {
	f := newFixture(t)
	m := createMatch(t, f)

	got, err := f.svc.GetByChannel("chan-1")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	_, err = f.svc.GetByChannel("other")
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestRestoreReloadsActiveMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	active := domain.NewMatch("g1", "chan-a", testParticipants, "u1", "u2", 2)
	terminal := domain.NewMatch("g1", "chan-b", testParticipants, "u1", "u2", 2)
	require.NoError(t, terminal.Cancel("old"))
	require.NoError(t, f.matches.Save(ctx, active))
	require.NoError(t, f.matches.Save(ctx, terminal))

	fresh := NewMatchService(f.matches, f.players, f.history, f.settings, f.notify)
	n, err := fresh.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "los terminales no vuelven")

	got, err := fresh.GetByChannel("chan-a")
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)
}

func TestCancelPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := createMatch(t, f)

	nonLeader := domain.AvailablePlayers(m.Participants, m.Team1, m.Team2)[0]
	_, err := f.svc.Cancel(ctx, m.ID, nonLeader, false, "me aburrí")
	assert.ErrorIs(t, err, domain.ErrNotALeader)

	// un admin cancela sin ser líder
	done, err := f.svc.Cancel(ctx, m.ID, "admin", true, "limpieza")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, done.Status)
	assert.Equal(t, "limpieza", done.CancelReason)

	// cancelación manual no penaliza a nadie
	assert.Empty(t, f.players.deltaCalls)
	assert.Empty(t, f.notify.events)
}

func TestForceWinnerSkipsMvp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := createMatch(t, f)

	// el override no exige draft terminado ni votos
	done, deltas, err := f.svc.ForceWinner(ctx, m.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)
	assert.Equal(t, 2, done.WinnerTeam)
	assert.Empty(t, done.MvpID)
	assert.NotEmpty(t, deltas)
	assert.Len(t, f.history.entries, 1)
}

func TestExpireOverduePenalizesOnlyLeaders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := createMatch(t, f)
	m = driveToVoting(t, f, m)

	penalty := f.settings.cfg.NoProofPenalty
	before := map[string]int{}
	for _, p := range testParticipants {
		before[p] = f.players.points(p)
	}

	// todavía dentro de la ventana: no pasa nada
	assert.Zero(t, f.svc.ExpireOverdue(ctx, time.Now().UTC()))

	deadline := m.VotingAt.Add(time.Duration(f.settings.cfg.ProofTimeoutMinutes) * time.Minute)
	expired := f.svc.ExpireOverdue(ctx, deadline.Add(time.Minute))
	assert.Equal(t, 1, expired)

	for _, p := range testParticipants {
		want := before[p]
		if p == m.Leader1 || p == m.Leader2 {
			want -= penalty
		}
		assert.Equal(t, want, f.players.points(p), "player %s", p)
	}

	// evento para el adapter y fila cancelada con su motivo
	require.Len(t, f.notify.events, 1)
	ev := f.notify.events[0]
	assert.Equal(t, m.ID, ev.MatchID)
	assert.ElementsMatch(t, []string{m.Leader1, m.Leader2}, ev.Penalized)
	assert.Equal(t, penalty, ev.Penalty)

	stored := f.matches.stored(m.ID)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.NotEmpty(t, stored.CancelReason)

	_, err := f.svc.Get(m.ID)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)

	// segunda pasada: ya no hay nada que barrer
	assert.Zero(t, f.svc.ExpireOverdue(ctx, deadline.Add(2*time.Minute)))
}

func TestExpireOverduePenaltyFailureStillCancels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := createMatch(t, f)
	m = driveToVoting(t, f, m)
	before := f.players.points(m.Leader1)

	// la cancelación ya se persistió; un fallo al penalizar no revive el match
	f.players.failDeltas = true
	deadline := m.VotingAt.Add(time.Duration(f.settings.cfg.ProofTimeoutMinutes) * time.Minute)
	assert.Equal(t, 1, f.svc.ExpireOverdue(ctx, deadline.Add(time.Minute)))

	assert.Equal(t, before, f.players.points(m.Leader1))
	assert.Equal(t, domain.StatusCancelled, f.matches.stored(m.ID).Status)
	require.Len(t, f.notify.events, 1)

	_, err := f.svc.Get(m.ID)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)

	// la próxima pasada no lo vuelve a barrer (ni a penalizar doble)
	f.players.failDeltas = false
	assert.Zero(t, f.svc.ExpireOverdue(ctx, deadline.Add(2*time.Minute)))
	assert.Equal(t, before, f.players.points(m.Leader1))
}

func TestExpireOverdueIgnoresMatchesNotInVoting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createMatch(t, f)

	assert.Zero(t, f.svc.ExpireOverdue(ctx, time.Now().UTC().Add(24*time.Hour)))
	assert.Empty(t, f.players.deltaCalls)
}

func TestProofBeatsSweeper(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := createMatch(t, f)
	m = driveToVoting(t, f, m)

	// la prueba llega tarde pero antes de que el sweeper tome el lock
	_, _, err := f.svc.SubmitProof(ctx, m.ID, m.WinningLeader(), "win.png", 512, "u")
	require.NoError(t, err)

	deadline := m.VotingAt.Add(time.Duration(f.settings.cfg.ProofTimeoutMinutes) * time.Minute)
	assert.Zero(t, f.svc.ExpireOverdue(ctx, deadline.Add(time.Minute)))

	// solo los deltas del resultado, nunca la penalidad
	assert.Len(t, f.players.deltaCalls, 1)
	assert.Empty(t, f.notify.events)
}
