package discord

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/scrims-bot/internal/domain"
)

func (r *Router) handleMessageComponent(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic.Member == nil || ic.Member.User == nil {
		return
	}
	uid := ic.Member.User.ID
	data := ic.MessageComponentData()
	id := data.CustomID

	if !r.clickLimiter.Allow(uid) {
		_ = DeferEphemeral(s, ic)
		ReplyEphemeral(s, ic, "⏳ Esperá un segundo…")
		return
	}

	switch {
	case id == "queue_join":
		_ = DeferEphemeral(s, ic)
		r.doJoin(s, ic, uid)

	case id == "queue_leave":
		_ = DeferEphemeral(s, ic)
		ctx, cancel := ctxFor()
		defer cancel()
		if err := r.queue.Leave(ctx, ic.GuildID, uid); err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		ReplyEphemeral(s, ic, "🚪 Saliste de la cola.")
		r.refreshQueuePanel(ic.GuildID)

	case strings.HasPrefix(id, "draft:"):
		r.componentDraftPick(s, ic, uid, id)

	case strings.HasPrefix(id, "lobby_open:"):
		r.componentLobbyOpen(s, ic, uid, strings.TrimPrefix(id, "lobby_open:"))

	case strings.HasPrefix(id, "vote_team:"):
		r.componentVoteTeam(s, ic, uid, id)

	case strings.HasPrefix(id, "mvp_select:"):
		r.componentVoteMvp(s, ic, uid, strings.TrimPrefix(id, "mvp_select:"), data.Values)

	case strings.HasPrefix(id, "match_cancel:"):
		_ = DeferEphemeral(s, ic)
		ctx, cancel := ctxFor()
		defer cancel()
		m, err := r.matches.Cancel(ctx, strings.TrimPrefix(id, "match_cancel:"), uid, false, "cancelado por un líder")
		if err != nil {
			ReplyEphemeral(s, ic, errText(err))
			return
		}
		ReplyEphemeral(s, ic, "✅ Match cancelado.")
		r.announceCancel(m)
	}
}

// componentDraftPick: el pick repinta el mensaje del draft en la misma
// interacción, así el botón usado desaparece al toque.
func (r *Router) componentDraftPick(s *discordgo.Session, ic *discordgo.InteractionCreate, uid, id string) {
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 {
		return
	}
	matchID, playerID := parts[1], parts[2]

	ctx, cancel := ctxFor()
	defer cancel()

	m, err := r.matches.ApplyPick(ctx, matchID, uid, playerID)
	if err != nil {
		ReplyEphemeral(s, ic, errText(err))
		return
	}
	embeds, comps := r.matchView(m)
	content := ""
	if m.Status == domain.StatusWaitingForLobby {
		content = "✅ Draft completo. " + mention(m.Leader2) + ", compartí el código del lobby."
	}
	UpdateMessage(s, ic, content, embeds, comps)
}

// componentLobbyOpen abre el modal del código de lobby (solo leader2).
func (r *Router) componentLobbyOpen(s *discordgo.Session, ic *discordgo.InteractionCreate, uid, matchID string) {
	m, err := r.matches.Get(matchID)
	if err != nil {
		ReplyEphemeral(s, ic, errText(err))
		return
	}
	if uid != m.Leader2 {
		ReplyEphemeral(s, ic, errText(domain.ErrNotLobbyLeader))
		return
	}

	err = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: "lobby_submit:" + matchID,
			Title:    "Código del lobby",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "lobby_id",
						Label:       "Código (4-10 letras/números)",
						Style:       discordgo.TextInputShort,
						Placeholder: "AB12CD",
						Required:    true,
						MinLength:   4,
						MaxLength:   10,
					},
				}},
			},
		},
	})
	if err != nil {
		log.Printf("[scrim] open lobby modal %s: %v", matchID, err)
	}
}

func (r *Router) componentVoteTeam(s *discordgo.Session, ic *discordgo.InteractionCreate, uid, id string) {
	_ = DeferEphemeral(s, ic)
	parts := strings.SplitN(id, ":", 3)
	if len(parts) != 3 {
		return
	}
	matchID := parts[1]
	team, err := strconv.Atoi(parts[2])
	if err != nil {
		return
	}

	ctx, cancel := ctxFor()
	defer cancel()

	prev, _ := r.matches.Get(matchID)
	m, err := r.matches.VoteWinner(ctx, matchID, uid, team)
	if err != nil {
		ReplyEphemeral(s, ic, errText(err))
		return
	}
	ReplyEphemeral(s, ic, fmt.Sprintf("🗳️ Voto registrado: Equipo %d.", team))
	r.afterVote(prev, m)
}

func (r *Router) componentVoteMvp(s *discordgo.Session, ic *discordgo.InteractionCreate, uid, matchID string, values []string) {
	_ = DeferEphemeral(s, ic)
	if len(values) == 0 {
		return
	}

	ctx, cancel := ctxFor()
	defer cancel()

	prev, _ := r.matches.Get(matchID)
	m, err := r.matches.VoteMvp(ctx, matchID, uid, values[0])
	if err != nil {
		ReplyEphemeral(s, ic, errText(err))
		return
	}
	ReplyEphemeral(s, ic, "🗳️ Voto de MVP registrado: "+mention(values[0]))
	r.afterVote(prev, m)
}

// afterVote: cuando el doble consenso recién se alcanza, se le pide la prueba
// al líder ganador con su deadline. El prompt sale una sola vez.
func (r *Router) afterVote(prev, m domain.Match) {
	if prev.Status == domain.StatusVoting || m.Status != domain.StatusVoting {
		return
	}
	ctx, cancel := ctxFor()
	defer cancel()

	cfg, err := r.settings.Get(ctx, m.GuildID)
	if err != nil {
		log.Printf("[scrim] settings for proof prompt %s: %v", m.ID, err)
		return
	}
	deadline := m.ProofDeadline(cfg.ProofTimeoutMinutes)
	msg := fmt.Sprintf(
		"📸 Consenso: ganó el **Equipo %d** y el MVP es %s.\n%s, subí una captura del resultado en este canal antes de <t:%d:R> o el match se cancela con penalidad.",
		m.WinnerTeam, mention(m.MvpID), mention(m.WinningLeader()), deadline.Unix(),
	)
	if _, err := r.s.ChannelMessageSend(m.ChannelID, msg); err != nil {
		log.Printf("[scrim] proof prompt %s: %v", m.ID, err)
	}
}

// handleModalSubmit: por ahora el único modal es el del lobby.
func (r *Router) handleModalSubmit(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic.Member == nil || ic.Member.User == nil {
		return
	}
	data := ic.ModalSubmitData()
	if !strings.HasPrefix(data.CustomID, "lobby_submit:") {
		return
	}
	matchID := strings.TrimPrefix(data.CustomID, "lobby_submit:")

	var raw string
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			if in, ok := c.(*discordgo.TextInput); ok && in.CustomID == "lobby_id" {
				raw = in.Value
			}
		}
	}

	ctx, cancel := ctxFor()
	defer cancel()

	m, err := r.matches.SetLobby(ctx, matchID, ic.Member.User.ID, raw)
	if err != nil {
		ReplyEphemeral(s, ic, errText(err))
		return
	}

	// el modal vino de un componente, así que podemos repintar su mensaje
	embeds, comps := r.matchView(m)
	UpdateMessage(s, ic, "", embeds, comps)

	if _, err := r.s.ChannelMessageSend(m.ChannelID, "🔑 Lobby **"+m.LobbyID+"** listo, ¡entren todos!"); err != nil {
		log.Printf("[scrim] announce lobby %s: %v", m.ID, err)
	}
}
