package storage

import (
	"context"
	"database/sql"
)

type PanelRepo struct{ db *sql.DB }

func NewPanelRepo(db *sql.DB) *PanelRepo { return &PanelRepo{db: db} }

func (r *PanelRepo) Get(ctx context.Context, guildID string) (QueuePanel, error) {
	var p QueuePanel
	err := r.db.QueryRowContext(ctx, `
SELECT guild_id, channel_id, message_id, updated_at
  FROM queue_panels
 WHERE guild_id = $1
`, guildID).Scan(&p.GuildID, &p.ChannelID, &p.MessageID, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return QueuePanel{}, ErrNotFound
	}
	return p, err
}

func (r *PanelRepo) Upsert(ctx context.Context, guildID, channelID, messageID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO queue_panels (guild_id, channel_id, message_id)
VALUES ($1,$2,$3)
ON CONFLICT (guild_id) DO UPDATE SET
  channel_id = EXCLUDED.channel_id,
  message_id = EXCLUDED.message_id,
  updated_at = now()
`, guildID, channelID, messageID)
	return err
}
