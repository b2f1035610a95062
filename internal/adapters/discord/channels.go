package discord

import (
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

// createScrimChannel arma el canal privado del match: visible solo para los
// participantes y el bot, colgado de la categoría de scrims si está seteada.
// Nace con nombre provisorio y se renombra al id del match apenas existe.
func (r *Router) createScrimChannel(guildID string, participants []string) (*discordgo.Channel, error) {
	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   guildID, // @everyone comparte id con el guild
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    r.s.State.User.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionManageChannels,
		},
	}
	for _, pid := range participants {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    pid,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages | discordgo.PermissionAttachFiles,
		})
	}

	return r.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 "scrim-" + strings.ToLower(domain.NewMatchID()),
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             r.cfg.ScrimCategoryID,
		PermissionOverwrites: overwrites,
	})
}

// deleteChannelLater borra el canal del match después de una gracia para que
// los jugadores alcancen a leer el resultado.
func (r *Router) deleteChannelLater(channelID string, after time.Duration) {
	time.AfterFunc(after, func() {
		if _, err := r.s.ChannelDelete(channelID); err != nil {
			log.Printf("[scrim] delete channel %s: %v", channelID, err)
		}
	})
}

// memberNames resuelve nombres mostrables, con el state como cache y la API
// como fallback. Si todo falla queda el id pelado.
func (r *Router) memberNames(guildID string, ids []string) map[string]string {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if m, err := r.s.State.Member(guildID, id); err == nil && m != nil {
			out[id] = displayName(m)
			continue
		}
		if m, err := r.s.GuildMember(guildID, id); err == nil && m != nil {
			out[id] = displayName(m)
		}
	}
	return out
}

func displayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		if m.User.GlobalName != "" {
			return m.User.GlobalName
		}
		return m.User.Username
	}
	return ""
}
