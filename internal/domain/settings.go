package domain

// GuildSettings: configuración por guild que consumen el ledger y el sweeper.
// PointsLoss se guarda con signo negativo (se normaliza al setearla).
type GuildSettings struct {
	GuildID             string
	PointsWin           int
	PointsLoss          int
	PointsMvp           int
	TimeoutMinutes      int
	ProofTimeoutMinutes int
	NoProofPenalty      int
	QueueSize           int
	RankRolesEnabled    bool
}

func DefaultSettings(guildID string) GuildSettings {
	return GuildSettings{
		GuildID:             guildID,
		PointsWin:           30,
		PointsLoss:          -30,
		PointsMvp:           10,
		TimeoutMinutes:      30,
		ProofTimeoutMinutes: 30,
		NoProofPenalty:      100,
		QueueSize:           10,
		RankRolesEnabled:    true,
	}
}

// TeamSize se deriva del tamaño de cola; la cola garantiza paridad.
func (s GuildSettings) TeamSize() int { return s.QueueSize / 2 }
