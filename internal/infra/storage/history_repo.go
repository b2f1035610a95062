package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

type HistoryRepo struct{ db *sql.DB }

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// Append guarda el resultado final con el mapa de deltas tal cual se aplicó.
func (r *HistoryRepo) Append(ctx context.Context, e HistoryEntry) error {
	deltas, err := json.Marshal(e.Deltas)
	if err != nil {
		return fmt.Errorf("marshal deltas: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO match_history
  (match_id, guild_id, team1_players, team2_players, winner_team, mvp_id, deltas, proof_url)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, e.MatchID, e.GuildID, pq.Array(e.Team1), pq.Array(e.Team2),
		e.WinnerTeam, nullStr(e.MvpID), deltas, nullStr(e.ProofURL))
	return err
}

func (r *HistoryRepo) List(ctx context.Context, guildID string, limit, offset int) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, match_id, guild_id, team1_players, team2_players, winner_team,
       mvp_id, deltas, proof_url, completed_at
  FROM match_history
 WHERE guild_id = $1
 ORDER BY completed_at DESC
 LIMIT $2 OFFSET $3
`, guildID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var (
			e          HistoryEntry
			mvp, proof sql.NullString
			raw        []byte
		)
		if err := rows.Scan(
			&e.ID, &e.MatchID, &e.GuildID, pq.Array(&e.Team1), pq.Array(&e.Team2),
			&e.WinnerTeam, &mvp, &raw, &proof, &e.CompletedAt,
		); err != nil {
			return nil, err
		}
		e.MvpID = mvp.String
		e.ProofURL = proof.String
		if err := json.Unmarshal(raw, &e.Deltas); err != nil {
			return nil, fmt.Errorf("unmarshal deltas for %s: %w", e.MatchID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *HistoryRepo) Clear(ctx context.Context, guildID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM match_history WHERE guild_id = $1`, guildID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
