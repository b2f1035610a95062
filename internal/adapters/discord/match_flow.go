package discord

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

const channelTeardownGrace = 2 * time.Minute

// startMatch: la cola llena (o un force-start) se convierte en match. Crea el
// canal privado, registra el match y publica el mensaje vivo del draft.
func (r *Router) startMatch(ctx context.Context, guildID string, participants []string) (domain.Match, error) {
	ch, err := r.createScrimChannel(guildID, participants)
	if err != nil {
		return domain.Match{}, err
	}

	m, err := r.matches.Create(ctx, guildID, ch.ID, participants)
	if err != nil {
		// sin match no tiene sentido dejar el canal colgado
		_, _ = r.s.ChannelDelete(ch.ID)
		return domain.Match{}, err
	}

	// el id del match recién existe acá; renombrar es cosmético
	if _, err := r.s.ChannelEdit(ch.ID, &discordgo.ChannelEdit{Name: "scrim-" + strings.ToLower(m.ID)}); err != nil {
		log.Printf("[scrim] rename channel %s: %v", m.ID, err)
	}

	names := r.memberNames(guildID, participants)
	embeds, comps := draftView(m, names)
	if _, err := r.s.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Content:    "🎮 ¡Arranca el draft! Líderes: " + mention(m.Leader1) + " y " + mention(m.Leader2),
		Embeds:     embeds,
		Components: comps,
	}); err != nil {
		log.Printf("[scrim] post draft %s: %v", m.ID, err)
	}
	return m, nil
}

// matchView elige qué pintar según el estado; lo usan el repaint del draft y
// el submit del lobby.
func (r *Router) matchView(m domain.Match) ([]*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	names := r.memberNames(m.GuildID, m.Participants)
	switch m.Status {
	case domain.StatusDrafting:
		return draftView(m, names)
	case domain.StatusWaitingForLobby:
		return lobbyView(m)
	default:
		return liveView(m, names)
	}
}

// announceResult publica el resultado en el canal del match, lo replica al
// canal de historial y agenda el borrado del canal.
func (r *Router) announceResult(m domain.Match, deltas map[string]int) {
	embed := resultEmbed(m, deltas)
	if _, err := r.s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		log.Printf("[scrim] post result %s: %v", m.ID, err)
	}
	if r.cfg.HistoryChannelID != "" {
		if _, err := r.s.ChannelMessageSendEmbed(r.cfg.HistoryChannelID, embed); err != nil {
			log.Printf("[scrim] forward result %s: %v", m.ID, err)
		}
	}
	r.syncRankRoles(m.GuildID, m.AllPlayers())
	r.deleteChannelLater(m.ChannelID, channelTeardownGrace)
}

// announceCancel: versión para matches cortados (manual o por admin).
func (r *Router) announceCancel(m domain.Match) {
	if _, err := r.s.ChannelMessageSendEmbed(m.ChannelID, cancelEmbed(m.ID, m.CancelReason)); err != nil {
		log.Printf("[scrim] post cancel %s: %v", m.ID, err)
	}
	r.deleteChannelLater(m.ChannelID, channelTeardownGrace)
}
