package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDrafting        Status = "drafting"
	StatusWaitingForLobby Status = "waiting_for_lobby"
	StatusInProgress      Status = "in_progress"
	StatusVoting          Status = "voting"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
)

// Match es el agregado central: toda mutación pasa por sus métodos y cada
// guard que falla devuelve un error tipado sin tocar el estado.
type Match struct {
	ID        string
	GuildID   string
	ChannelID string

	// Todos los que entraron desde la cola; el draft reparte los que no son líderes.
	Participants []string

	Team1    []string
	Team2    []string
	Leader1  string // primer pick del draft
	Leader2  string // crea el lobby
	TeamSize int

	Status       Status
	WinnerTeam   int // 0 = sin decidir
	MvpID        string
	LobbyID      string
	ProofURL     string
	CancelReason string

	CreatedAt time.Time
	UpdatedAt time.Time
	VotingAt  time.Time // entrada a VOTING; deadline del sweeper

	winnerVotes map[string]int
	mvpVotes    map[string]string
}

// NewMatchID genera un id corto único (primeros 8 hex de un uuid v4).
func NewMatchID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

func NewMatch(guildID, channelID string, participants []string, leader1, leader2 string, teamSize int) *Match {
	now := time.Now().UTC()
	return &Match{
		ID:           NewMatchID(),
		GuildID:      guildID,
		ChannelID:    channelID,
		Participants: append([]string(nil), participants...),
		Team1:        []string{leader1},
		Team2:        []string{leader2},
		Leader1:      leader1,
		Leader2:      leader2,
		TeamSize:     teamSize,
		Status:       StatusDrafting,
		CreatedAt:    now,
		UpdatedAt:    now,
		winnerVotes:  map[string]int{},
		mvpVotes:     map[string]string{},
	}
}

func (m *Match) IsTerminal() bool {
	return m.Status == StatusCompleted || m.Status == StatusCancelled
}

func (m *Match) IsLeader(playerID string) bool {
	return playerID == m.Leader1 || playerID == m.Leader2
}

// AllPlayers devuelve los jugadores ya rosterizados (team1 + team2).
func (m *Match) AllPlayers() []string {
	out := make([]string, 0, len(m.Team1)+len(m.Team2))
	out = append(out, m.Team1...)
	out = append(out, m.Team2...)
	return out
}

func (m *Match) isParticipant(playerID string) bool {
	for _, p := range m.Participants {
		if p == playerID {
			return true
		}
	}
	return false
}

func (m *Match) isRostered(playerID string) bool {
	for _, p := range m.AllPlayers() {
		if p == playerID {
			return true
		}
	}
	return false
}

func (m *Match) touch() { m.UpdatedAt = time.Now().UTC() }

// ApplyPick asigna un jugador libre al equipo del drafter en turno.
func (m *Match) ApplyPick(drafter, playerID string) error {
	if m.IsTerminal() {
		return ErrMatchTerminal
	}
	if m.Status != StatusDrafting {
		return ErrDraftNotActive
	}
	picksMade := len(m.Team1) + len(m.Team2) - 2 // los líderes no cuentan
	if drafter != NextDrafter(picksMade, m.Leader1, m.Leader2) {
		return ErrNotYourTurn
	}
	if m.isRostered(playerID) {
		return ErrPlayerAlreadyDrafted
	}
	if !m.isParticipant(playerID) {
		return ErrUnknownPlayer
	}

	if drafter == m.Leader1 {
		m.Team1 = append(m.Team1, playerID)
	} else {
		m.Team2 = append(m.Team2, playerID)
	}
	if IsDraftComplete(m.Team1, m.Team2, m.TeamSize) {
		m.Status = StatusWaitingForLobby
	}
	m.touch()
	return nil
}

// SetLobby registra el lobby id (solo leader2, formato validado y normalizado)
// y pasa el match a IN_PROGRESS. Devuelve el id normalizado.
func (m *Match) SetLobby(submitter, lobbyID string) (string, error) {
	if m.IsTerminal() {
		return "", ErrMatchTerminal
	}
	if m.Status != StatusWaitingForLobby {
		return "", ErrWrongStatus
	}
	if submitter != m.Leader2 {
		return "", ErrNotLobbyLeader
	}
	normalized, err := ValidateLobbyID(lobbyID)
	if err != nil {
		return "", err
	}
	m.LobbyID = normalized
	m.Status = StatusInProgress
	m.touch()
	return normalized, nil
}

// RecordWinnerVote registra/pisa el voto de un líder. El ganador queda fijado
// solo cuando ambos líderes votaron lo mismo; si difieren pueden re-votar.
func (m *Match) RecordWinnerVote(leaderID string, team int) error {
	if m.IsTerminal() {
		return ErrMatchTerminal
	}
	if m.Status != StatusInProgress && m.Status != StatusVoting {
		return ErrWrongStatus
	}
	if !m.IsLeader(leaderID) {
		return ErrNotALeader
	}
	if team != 1 && team != 2 {
		return ErrInvalidTeam
	}
	if m.winnerVotes == nil { // match rehidratado desde la DB
		m.winnerVotes = map[string]int{}
	}
	m.winnerVotes[leaderID] = team
	m.WinnerTeam = 0
	if v1, ok1 := m.winnerVotes[m.Leader1]; ok1 {
		if v2, ok2 := m.winnerVotes[m.Leader2]; ok2 && v1 == v2 {
			m.WinnerTeam = v1
		}
	}
	m.maybeEnterVoting()
	m.touch()
	return nil
}

// RecordMvpVote: misma regla de quórum que el ganador; el MVP debe ser
// participante del match.
func (m *Match) RecordMvpVote(leaderID, playerID string) error {
	if m.IsTerminal() {
		return ErrMatchTerminal
	}
	if m.Status != StatusInProgress && m.Status != StatusVoting {
		return ErrWrongStatus
	}
	if !m.IsLeader(leaderID) {
		return ErrNotALeader
	}
	if !m.isRostered(playerID) {
		return ErrInvalidMvp
	}
	if m.mvpVotes == nil {
		m.mvpVotes = map[string]string{}
	}
	m.mvpVotes[leaderID] = playerID
	m.MvpID = ""
	if v1, ok1 := m.mvpVotes[m.Leader1]; ok1 {
		if v2, ok2 := m.mvpVotes[m.Leader2]; ok2 && v1 == v2 {
			m.MvpID = v1
		}
	}
	m.maybeEnterVoting()
	m.touch()
	return nil
}

// maybeEnterVoting: se pide la prueba recién cuando hay consenso de ganador
// Y de MVP a la vez; llegar a uno solo simplemente espera.
func (m *Match) maybeEnterVoting() {
	if m.Status == StatusInProgress && m.WinnerTeam != 0 && m.MvpID != "" {
		m.Status = StatusVoting
		m.VotingAt = time.Now().UTC()
	}
}

// WinningLeader devuelve el líder del equipo ganador ("" si no hay ganador).
func (m *Match) WinningLeader() string {
	switch m.WinnerTeam {
	case 1:
		return m.Leader1
	case 2:
		return m.Leader2
	}
	return ""
}

// SubmitProof acepta la captura del líder ganador y completa el match.
func (m *Match) SubmitProof(uploader, filename string, sizeBytes int64, url string) error {
	if m.IsTerminal() {
		return ErrMatchTerminal
	}
	if m.Status != StatusVoting {
		return ErrAwaitingVotes
	}
	if uploader != m.WinningLeader() {
		return ErrNotProofLeader
	}
	if err := ValidateProofAttachment(filename, sizeBytes); err != nil {
		return err
	}
	m.ProofURL = url
	m.Status = StatusCompleted
	m.clearVotes()
	m.touch()
	return nil
}

// Cancel corta el match desde cualquier estado no terminal.
func (m *Match) Cancel(reason string) error {
	if m.IsTerminal() {
		return ErrMatchTerminal
	}
	m.Status = StatusCancelled
	m.CancelReason = reason
	m.clearVotes()
	m.touch()
	return nil
}

// ForceComplete: override administrativo. El MVP queda sin setear a propósito.
func (m *Match) ForceComplete(team int) error {
	if m.IsTerminal() {
		return ErrMatchTerminal
	}
	if team != 1 && team != 2 {
		return ErrInvalidTeam
	}
	m.WinnerTeam = team
	m.Status = StatusCompleted
	m.clearVotes()
	m.touch()
	return nil
}

func (m *Match) clearVotes() {
	m.winnerVotes = map[string]int{}
	m.mvpVotes = map[string]string{}
}

// Clone devuelve una copia profunda; las operaciones del registry mutan la
// copia y recién la publican cuando la escritura persistente confirmó.
func (m *Match) Clone() *Match {
	cp := *m
	cp.Participants = append([]string(nil), m.Participants...)
	cp.Team1 = append([]string(nil), m.Team1...)
	cp.Team2 = append([]string(nil), m.Team2...)
	cp.winnerVotes = make(map[string]int, len(m.winnerVotes))
	for k, v := range m.winnerVotes {
		cp.winnerVotes[k] = v
	}
	cp.mvpVotes = make(map[string]string, len(m.mvpVotes))
	for k, v := range m.mvpVotes {
		cp.mvpVotes[k] = v
	}
	return &cp
}

// ProofDeadline: límite wall-clock para subir la prueba.
func (m *Match) ProofDeadline(timeoutMinutes int) time.Time {
	return m.VotingAt.Add(time.Duration(timeoutMinutes) * time.Minute)
}
