package storage

import "time"

type Player struct {
	UserID        string
	Username      string
	Points        int
	MatchesPlayed int
	MatchesWon    int
	MvpCount      int
	TimeoutUntil  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsTimedOut: restricción activa para entrar a la cola.
func (p Player) IsTimedOut(now time.Time) bool {
	return p.TimeoutUntil != nil && now.Before(*p.TimeoutUntil)
}

func (p Player) WinRate() float64 {
	if p.MatchesPlayed == 0 {
		return 0
	}
	return float64(p.MatchesWon) / float64(p.MatchesPlayed) * 100
}

type HistoryEntry struct {
	ID          int64
	MatchID     string
	GuildID     string
	Team1       []string
	Team2       []string
	WinnerTeam  int
	MvpID       string
	Deltas      map[string]int // se persiste tal cual por auditabilidad
	ProofURL    string
	CompletedAt time.Time
}

// QueuePanel: mensaje persistente con los botones de join/leave de la cola.
type QueuePanel struct {
	GuildID   string
	ChannelID string
	MessageID string
	UpdatedAt time.Time
}
