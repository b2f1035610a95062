package config

import (
	"log"
	"os"
	"strings"
)

type Config struct {
	DatabaseURL  string
	DiscordToken string
	DiscordGuild string

	// Opcionales
	ScrimCategoryID  string // categoría donde se crean los canales de scrim
	HistoryChannelID string // canal al que se reenvían resultados
	QueueChannelID   string // canal del panel de cola
	AdminRoleIDs     []string
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("missing env %s", k)
		}
		return v
	}

	cfg := Config{
		DatabaseURL:      get("DATABASE_URL", true),
		DiscordToken:     get("DISCORD_BOT_TOKEN", true),
		DiscordGuild:     get("DISCORD_GUILD_ID", true),
		ScrimCategoryID:  get("SCRIM_CATEGORY_ID", false),
		HistoryChannelID: get("HISTORY_CHANNEL_ID", false),
		QueueChannelID:   get("QUEUE_CHANNEL_ID", false),
	}
	if raw := get("ADMIN_ROLE_IDS", false); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.AdminRoleIDs = append(cfg.AdminRoleIDs, id)
			}
		}
	}
	return cfg
}
