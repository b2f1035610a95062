package discord

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/scrims-bot/internal/app/service"
)

const (
	leaderboardPageSize = 10
	historyPageSize     = 10
)

func (r *Router) handleSlash(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic.Member == nil || ic.Member.User == nil {
		return
	}
	data := ic.ApplicationCommandData()
	_ = DeferEphemeral(s, ic)

	switch data.Name {
	case "queue":
		r.slashQueue(s, ic, data)
	case "stats":
		r.slashStats(s, ic, data)
	case "leaderboard":
		r.slashLeaderboard(s, ic, data)
	case "history":
		r.slashHistory(s, ic)
	case "config":
		r.slashConfig(s, ic, data)
	case "points":
		r.slashPoints(s, ic, data)
	case "timeout":
		r.slashTimeout(s, ic, data)
	case "scrim":
		r.slashScrim(s, ic, data)
	default:
		ReplyEphemeral(s, ic, "⚠️ Comando desconocido.")
	}
}

func (r *Router) slashQueue(s *discordgo.Session, ic *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	sub := data.Options[0]
	uid := ic.Member.User.ID

	switch sub.Name {
	case "join":
		r.doJoin(s, ic, uid)

	case "leave":
		ctx, cancel := ctxFor()
		defer cancel()
		if err := r.queue.Leave(ctx, ic.GuildID, uid); err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		ReplyEphemeral(s, ic, "🚪 Saliste de la cola.")
		r.refreshQueuePanel(ic.GuildID)

	case "status":
		ctx, cancel := ctxFor()
		defer cancel()
		players, lastLeft := r.queue.Snapshot(ic.GuildID)
		cfg, err := r.settings.Get(ctx, ic.GuildID)
		if err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		ReplyEphemeral(s, ic, "", queuePanelEmbed(players, lastLeft, cfg.QueueSize))

	case "panel":
		if !r.requireAdminOrRoles(s, ic) {
			return
		}
		ctx, cancel := ctxFor()
		defer cancel()
		if err := r.publishQueuePanel(ctx, ic.GuildID, ic.ChannelID); err != nil {
			log.Printf("[panel] publish: %v", err)
			ReplyEphemeral(s, ic, "⚠️ No pude publicar el panel.")
			return
		}
		ReplyEphemeral(s, ic, "✅ Panel publicado.")
	}
}

// doJoin comparte el camino del slash y del botón: anotar, repintar el panel
// y, si la cola se llenó, arrancar el match.
func (r *Router) doJoin(s *discordgo.Session, ic *discordgo.InteractionCreate, uid string) {
	ctx, cancel := ctxFor()
	defer cancel()

	res, err := r.queue.Join(ctx, ic.GuildID, uid, displayName(ic.Member))
	if err != nil {
		ReplyEphemeral(s, ic, errText(err))
		return
	}
	if len(res.Promoted) == 0 {
		ReplyEphemeral(s, ic, fmt.Sprintf("✅ Estás en la cola (%d/%d).", res.Size, res.Capacity))
		r.refreshQueuePanel(ic.GuildID)
		return
	}

	m, err := r.startMatch(ctx, ic.GuildID, res.Promoted)
	if err != nil {
		log.Printf("[scrim] start match: %v", err)
		ReplyEphemeral(s, ic, "⚠️ La cola se llenó pero no pude crear el match. Avisale a un admin.")
		return
	}
	ReplyEphemeral(s, ic, "🎮 ¡Cola completa! Draft en <#"+m.ChannelID+">")
	r.refreshQueuePanel(ic.GuildID)
}

func (r *Router) slashStats(s *discordgo.Session, ic *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	target := ic.Member.User.ID
	if len(data.Options) > 0 {
		target = data.Options[0].UserValue(nil).ID
	}
	ctx, cancel := ctxFor()
	defer cancel()

	st, err := r.stats.PlayerStats(ctx, target)
	if err != nil {
		ReplyEphemeral(s, ic, errText(err))
		return
	}
	ReplyEphemeral(s, ic, "", statsEmbed(st))
}

func (r *Router) slashLeaderboard(s *discordgo.Session, ic *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	page := 1
	if len(data.Options) > 0 {
		if v := int(data.Options[0].IntValue()); v > 0 {
			page = v
		}
	}
	ctx, cancel := ctxFor()
	defer cancel()

	players, err := r.stats.Leaderboard(ctx, leaderboardPageSize, (page-1)*leaderboardPageSize)
	if err != nil {
		ReplyEphemeral(s, ic, errText(err))
		return
	}
	ReplyEphemeral(s, ic, "", leaderboardEmbed(players, page))
}

func (r *Router) slashHistory(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	ctx, cancel := ctxFor()
	defer cancel()

	entries, err := r.stats.History(ctx, ic.GuildID, historyPageSize, 0)
	if err != nil {
		ReplyEphemeral(s, ic, errText(err))
		return
	}
	ReplyEphemeral(s, ic, "", historyEmbed(entries))
}

func (r *Router) slashConfig(s *discordgo.Session, ic *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	if !r.requireAdminOrRoles(s, ic) {
		return
	}
	sub := data.Options[0]
	ctx, cancel := ctxFor()
	defer cancel()

	switch sub.Name {
	case "show":
		cfg, err := r.settings.Get(ctx, ic.GuildID)
		if err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		ReplyEphemeral(s, ic, "", configEmbed(cfg))

	case "set":
		var patch service.SettingsPatch
		for _, opt := range sub.Options {
			switch opt.Name {
			case "points_win":
				v := int(opt.IntValue())
				patch.PointsWin = &v
			case "points_loss":
				v := int(opt.IntValue())
				patch.PointsLoss = &v
			case "points_mvp":
				v := int(opt.IntValue())
				patch.PointsMvp = &v
			case "timeout_minutes":
				v := int(opt.IntValue())
				patch.TimeoutMinutes = &v
			case "proof_timeout_minutes":
				v := int(opt.IntValue())
				patch.ProofTimeoutMinutes = &v
			case "no_proof_penalty":
				v := int(opt.IntValue())
				patch.NoProofPenalty = &v
			case "queue_size":
				v := int(opt.IntValue())
				patch.QueueSize = &v
			case "rank_roles_enabled":
				v := opt.BoolValue()
				patch.RankRolesEnabled = &v
			}
		}
		cfg, err := r.settings.Update(ctx, ic.GuildID, patch)
		if err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		ReplyEphemeral(s, ic, "✅ Configuración actualizada.", configEmbed(cfg))
	}
}

func (r *Router) slashPoints(s *discordgo.Session, ic *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	if !r.requireAdminOrRoles(s, ic) {
		return
	}
	var target string
	var delta int
	for _, opt := range data.Options {
		switch opt.Name {
		case "player":
			target = opt.UserValue(nil).ID
		case "delta":
			delta = int(opt.IntValue())
		}
	}
	ctx, cancel := ctxFor()
	defer cancel()

	if err := r.stats.AdjustPoints(ctx, target, delta); err != nil {
		ReplyEphemeral(s, ic, errText(err))
		return
	}
	r.syncRankRoles(ic.GuildID, []string{target})
	ReplyEphemeral(s, ic, fmt.Sprintf("✅ Aplicado %+d a %s.", delta, mention(target)))
}

func (r *Router) slashTimeout(s *discordgo.Session, ic *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	if !r.requireAdminOrRoles(s, ic) {
		return
	}
	sub := data.Options[0]
	ctx, cancel := ctxFor()
	defer cancel()

	switch sub.Name {
	case "set":
		var target string
		var minutes int
		for _, opt := range sub.Options {
			switch opt.Name {
			case "player":
				target = opt.UserValue(nil).ID
			case "minutes":
				minutes = int(opt.IntValue())
			}
		}
		until, err := r.stats.ApplyTimeout(ctx, target, minutes)
		if err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("⏳ %s sin cola hasta <t:%d:t>.", mention(target), until.Unix()))

	case "remove":
		target := sub.Options[0].UserValue(nil).ID
		if err := r.stats.RemoveTimeout(ctx, target); err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		ReplyEphemeral(s, ic, "✅ Timeout removido para "+mention(target)+".")
	}
}

func (r *Router) slashScrim(s *discordgo.Session, ic *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	if !r.requireAdminOrRoles(s, ic) {
		return
	}
	sub := data.Options[0]
	ctx, cancel := ctxFor()
	defer cancel()

	switch sub.Name {
	case "force_winner":
		var matchID string
		var team int
		for _, opt := range sub.Options {
			switch opt.Name {
			case "match_id":
				matchID = strings.ToUpper(strings.TrimSpace(opt.StringValue()))
			case "team":
				team = int(opt.IntValue())
			}
		}
		m, deltas, err := r.matches.ForceWinner(ctx, matchID, team)
		if err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("✅ Match %s cerrado: ganó el Equipo %d.", m.ID, team))
		r.announceResult(m, deltas)

	case "cancel":
		var matchID, reason string
		for _, opt := range sub.Options {
			switch opt.Name {
			case "match_id":
				matchID = strings.ToUpper(strings.TrimSpace(opt.StringValue()))
			case "reason":
				reason = opt.StringValue()
			}
		}
		m, err := r.matches.Cancel(ctx, matchID, ic.Member.User.ID, true, reason)
		if err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		ReplyEphemeral(s, ic, "✅ Match "+m.ID+" cancelado.")
		r.announceCancel(m)

	case "clear_queue":
		n := r.queue.Clear(ic.GuildID)
		ReplyEphemeral(s, ic, fmt.Sprintf("🧹 Cola vaciada (%d jugadores).", n))
		r.refreshQueuePanel(ic.GuildID)

	case "clear_history":
		n, err := r.stats.ClearHistory(ctx, ic.GuildID)
		if err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		ReplyEphemeral(s, ic, fmt.Sprintf("🧹 Historial borrado (%d entradas).", n))

	case "force_start":
		promoted, err := r.queue.ForceDrain(ic.GuildID)
		if err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		m, err := r.startMatch(ctx, ic.GuildID, promoted)
		if err != nil {
			log.Printf("[scrim] force start: %v", err)
			ReplyEphemeral(s, ic, "⚠️ No pude crear el match.")
			return
		}
		ReplyEphemeral(s, ic, "🎮 Match forzado: draft en <#"+m.ChannelID+">")
		r.refreshQueuePanel(ic.GuildID)
	}
}
