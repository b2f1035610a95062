package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

type MatchRepo struct{ db *sql.DB }

func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{db: db} }

// Save hace upsert del snapshot completo del match. El registry en memoria es
// cache; esta fila es la fuente de verdad durable.
func (r *MatchRepo) Save(ctx context.Context, m *domain.Match) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO matches
  (match_id, guild_id, channel_id, participants, team1_players, team2_players,
   leader1_id, leader2_id, team_size, status, winner_team, mvp_id, lobby_id,
   proof_url, cancel_reason, created_at, voting_at, updated_at)
VALUES
  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,now())
ON CONFLICT (match_id) DO UPDATE SET
  team1_players = EXCLUDED.team1_players,
  team2_players = EXCLUDED.team2_players,
  status        = EXCLUDED.status,
  winner_team   = EXCLUDED.winner_team,
  mvp_id        = EXCLUDED.mvp_id,
  lobby_id      = EXCLUDED.lobby_id,
  proof_url     = EXCLUDED.proof_url,
  cancel_reason = EXCLUDED.cancel_reason,
  voting_at     = EXCLUDED.voting_at,
  updated_at    = now()
`,
		m.ID, m.GuildID, m.ChannelID, pq.Array(m.Participants),
		pq.Array(m.Team1), pq.Array(m.Team2), m.Leader1, m.Leader2, m.TeamSize,
		string(m.Status), nullInt(m.WinnerTeam), nullStr(m.MvpID), nullStr(m.LobbyID),
		nullStr(m.ProofURL), nullStr(m.CancelReason), m.CreatedAt, nullTime(m.VotingAt),
	)
	return err
}

func (r *MatchRepo) Get(ctx context.Context, matchID string) (*domain.Match, error) {
	row := r.db.QueryRowContext(ctx, selectMatch+` WHERE match_id = $1`, matchID)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return m, err
}

// ListActive devuelve todos los matches no terminales; se usa al arrancar el
// proceso para reconstruir el registry.
func (r *MatchRepo) ListActive(ctx context.Context) ([]*domain.Match, error) {
	rows, err := r.db.QueryContext(ctx, selectMatch+`
 WHERE status NOT IN ('completed','cancelled')
 ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

const selectMatch = `
SELECT match_id, guild_id, channel_id, participants, team1_players, team2_players,
       leader1_id, leader2_id, team_size, status, winner_team, mvp_id, lobby_id,
       proof_url, cancel_reason, created_at, voting_at, updated_at
  FROM matches`

type rowScanner interface{ Scan(dest ...any) error }

func scanMatch(row rowScanner) (*domain.Match, error) {
	var (
		m          domain.Match
		winner     sql.NullInt64
		mvp, lobby sql.NullString
		proof, why sql.NullString
		votingAt   sql.NullTime
	)
	err := row.Scan(
		&m.ID, &m.GuildID, &m.ChannelID, pq.Array(&m.Participants),
		pq.Array(&m.Team1), pq.Array(&m.Team2), &m.Leader1, &m.Leader2, &m.TeamSize,
		(*string)(&m.Status), &winner, &mvp, &lobby, &proof, &why,
		&m.CreatedAt, &votingAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.WinnerTeam = int(winner.Int64)
	m.MvpID = mvp.String
	m.LobbyID = lobby.String
	m.ProofURL = proof.String
	m.CancelReason = why.String
	if votingAt.Valid {
		m.VotingAt = votingAt.Time
	}
	return &m, nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
