package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/jose-valero/scrims-bot/internal/app/service"
)

// MatchCancelled implementa service.Notifier: el sweeper avisa acá cuando
// cierra un match por falta de prueba.
func (r *Router) MatchCancelled(ctx context.Context, ev service.MatchCancelledEvent) {
	embed := cancelEmbed(ev.MatchID, ev.Reason)
	if ev.Penalty > 0 && len(ev.Penalized) > 0 {
		embed.Description += fmt.Sprintf(
			"\nPenalidad de **-%d** puntos para %s y %s por no subir la prueba.",
			ev.Penalty, mention(ev.Penalized[0]), mention(ev.Penalized[len(ev.Penalized)-1]),
		)
	}
	if _, err := r.s.ChannelMessageSendEmbed(ev.ChannelID, embed); err != nil {
		log.Printf("[sweeper] announce cancel %s: %v", ev.MatchID, err)
	}
	if r.cfg.HistoryChannelID != "" {
		if _, err := r.s.ChannelMessageSendEmbed(r.cfg.HistoryChannelID, embed); err != nil {
			log.Printf("[sweeper] forward cancel %s: %v", ev.MatchID, err)
		}
	}
	r.syncRankRoles(ev.GuildID, ev.Penalized)
	r.deleteChannelLater(ev.ChannelID, channelTeardownGrace)
}
