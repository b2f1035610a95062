package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("not found")

type PlayerRepo struct{ db *sql.DB }

func NewPlayerRepo(db *sql.DB) *PlayerRepo { return &PlayerRepo{db: db} }

// Ensure crea el jugador en su primer join (1000 puntos de arranque via
// default de la tabla) o refresca el username si ya existía.
func (r *PlayerRepo) Ensure(ctx context.Context, userID, username string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO players (user_id, username)
VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE SET
  username   = EXCLUDED.username,
  updated_at = now()
`, userID, username)
	return err
}

func (r *PlayerRepo) Get(ctx context.Context, userID string) (Player, error) {
	var p Player
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, username, points, matches_played, matches_won, mvp_count,
       timeout_until, created_at, updated_at
  FROM players
 WHERE user_id = $1
`, userID).Scan(
		&p.UserID, &p.Username, &p.Points, &p.MatchesPlayed, &p.MatchesWon,
		&p.MvpCount, &p.TimeoutUntil, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return Player{}, ErrNotFound
	}
	return p, err
}

// IsRestricted: lookup que consume la cola antes de dejar entrar.
func (r *PlayerRepo) IsRestricted(ctx context.Context, userID string) (bool, error) {
	p, err := r.Get(ctx, userID)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.IsTimedOut(time.Now().UTC()), nil
}

// ApplyDeltas aplica el mapa de deltas de un match en una sola transacción:
// o impacta entero o no impacta nada.
func (r *PlayerRepo) ApplyDeltas(ctx context.Context, deltas map[string]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for userID, delta := range deltas {
		if _, err := tx.ExecContext(ctx, `
UPDATE players SET points = points + $2, updated_at = now()
 WHERE user_id = $1
`, userID, delta); err != nil {
			return fmt.Errorf("apply delta for %s: %w", userID, err)
		}
	}
	return tx.Commit()
}

func (r *PlayerRepo) BumpStats(ctx context.Context, userID string, won, mvp bool) error {
	wonInc, mvpInc := 0, 0
	if won {
		wonInc = 1
	}
	if mvp {
		mvpInc = 1
	}
	_, err := r.db.ExecContext(ctx, `
UPDATE players SET
  matches_played = matches_played + 1,
  matches_won    = matches_won + $2,
  mvp_count      = mvp_count + $3,
  updated_at     = now()
 WHERE user_id = $1
`, userID, wonInc, mvpInc)
	return err
}

func (r *PlayerRepo) SetTimeout(ctx context.Context, userID string, until time.Time) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE players SET timeout_until = $2, updated_at = now() WHERE user_id = $1
`, userID, until)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PlayerRepo) ClearTimeout(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE players SET timeout_until = NULL, updated_at = now() WHERE user_id = $1
`, userID)
	return err
}

// Leaderboard ordena por puntos, desempata por victorias y MVPs.
func (r *PlayerRepo) Leaderboard(ctx context.Context, limit, offset int) ([]Player, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, username, points, matches_played, matches_won, mvp_count,
       timeout_until, created_at, updated_at
  FROM players
 ORDER BY points DESC, matches_won DESC, mvp_count DESC
 LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(
			&p.UserID, &p.Username, &p.Points, &p.MatchesPlayed, &p.MatchesWon,
			&p.MvpCount, &p.TimeoutUntil, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlayerRepo) RankPosition(ctx context.Context, userID string) (int, error) {
	var pos sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
SELECT rank FROM (
  SELECT user_id,
         ROW_NUMBER() OVER (ORDER BY points DESC, matches_won DESC, mvp_count DESC) AS rank
    FROM players
) ranked
 WHERE user_id = $1
`, userID).Scan(&pos)
	if err == sql.ErrNoRows || !pos.Valid {
		return 0, nil
	}
	return int(pos.Int64), err
}
