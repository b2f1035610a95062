package storage

import (
	"context"
	"database/sql"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

type SettingsRepo struct{ db *sql.DB }

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get crea la fila con defaults si el guild todavía no tiene settings.
func (r *SettingsRepo) Get(ctx context.Context, guildID string) (domain.GuildSettings, error) {
	var s domain.GuildSettings
	err := r.db.QueryRowContext(ctx, `
SELECT guild_id, points_win, points_loss, points_mvp, timeout_minutes,
       proof_timeout_minutes, no_proof_penalty, queue_size, rank_roles_enabled
  FROM guild_settings
 WHERE guild_id = $1
`, guildID).Scan(
		&s.GuildID, &s.PointsWin, &s.PointsLoss, &s.PointsMvp, &s.TimeoutMinutes,
		&s.ProofTimeoutMinutes, &s.NoProofPenalty, &s.QueueSize, &s.RankRolesEnabled,
	)
	if err == sql.ErrNoRows {
		if _, err := r.db.ExecContext(ctx, `
INSERT INTO guild_settings (guild_id) VALUES ($1)
`, guildID); err != nil {
			return domain.GuildSettings{}, err
		}
		return r.Get(ctx, guildID)
	}
	return s, err
}

func (r *SettingsRepo) Upsert(ctx context.Context, s domain.GuildSettings) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO guild_settings
  (guild_id, points_win, points_loss, points_mvp, timeout_minutes,
   proof_timeout_minutes, no_proof_penalty, queue_size, rank_roles_enabled, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now())
ON CONFLICT (guild_id) DO UPDATE SET
  points_win            = EXCLUDED.points_win,
  points_loss           = EXCLUDED.points_loss,
  points_mvp            = EXCLUDED.points_mvp,
  timeout_minutes       = EXCLUDED.timeout_minutes,
  proof_timeout_minutes = EXCLUDED.proof_timeout_minutes,
  no_proof_penalty      = EXCLUDED.no_proof_penalty,
  queue_size            = EXCLUDED.queue_size,
  rank_roles_enabled    = EXCLUDED.rank_roles_enabled,
  updated_at            = now()
`, s.GuildID, s.PointsWin, s.PointsLoss, s.PointsMvp, s.TimeoutMinutes,
		s.ProofTimeoutMinutes, s.NoProofPenalty, s.QueueSize, s.RankRolesEnabled)
	return err
}
