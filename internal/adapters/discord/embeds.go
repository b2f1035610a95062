package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/scrims-bot/internal/app/service"
	"github.com/jose-valero/scrims-bot/internal/domain"
	"github.com/jose-valero/scrims-bot/internal/infra/storage"
)

const (
	colorQueue  = 0x5865f2
	colorDraft  = 0xfee75c
	colorLive   = 0x57f287
	colorResult = 0xeb459e
	colorCancel = 0xed4245
)

func mention(userID string) string { return "<@" + userID + ">" }

func mentionList(ids []string) string {
	if len(ids) == 0 {
		return "_vacío_"
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, mention(id))
	}
	return strings.Join(out, "\n")
}

// ---- panel de cola -------------------------------------------------------

func queuePanelEmbed(players []string, lastLeft string, capacity int) *discordgo.MessageEmbed {
	desc := "Tocá **Unirme** para anotarte. Al llegar a " +
		fmt.Sprintf("%d", capacity) + " arranca el draft automáticamente."
	e := &discordgo.MessageEmbed{
		Title:       "🎮 Cola de scrims",
		Description: desc,
		Color:       colorQueue,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("En cola (%d/%d)", len(players), capacity),
				Value: mentionList(players),
			},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if lastLeft != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: "Último en salir: se liberó un lugar"}
	}
	return e
}

func queuePanelComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Unirme", Style: discordgo.SuccessButton, CustomID: "queue_join", Emoji: &discordgo.ComponentEmoji{Name: "✅"}},
			discordgo.Button{Label: "Salir", Style: discordgo.DangerButton, CustomID: "queue_leave", Emoji: &discordgo.ComponentEmoji{Name: "🚪"}},
		}},
	}
}

// ---- draft ---------------------------------------------------------------

func teamsField(m domain.Match) []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{Name: "🔵 Equipo 1 · líder " + mention(m.Leader1), Value: mentionList(m.Team1), Inline: true},
		{Name: "🔴 Equipo 2 · líder " + mention(m.Leader2), Value: mentionList(m.Team2), Inline: true},
	}
}

// draftView arma el mensaje vivo del draft: equipos arriba, un botón por
// jugador libre abajo. Se repinta en cada pick vía UpdateMessage.
func draftView(m domain.Match, names map[string]string) ([]*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	avail := domain.AvailablePlayers(m.Participants, m.Team1, m.Team2)
	picksMade := len(m.Team1) + len(m.Team2) - 2
	turn := domain.NextDrafter(picksMade, m.Leader1, m.Leader2)

	embed := &discordgo.MessageEmbed{
		Title:       "📝 Draft · match " + m.ID,
		Description: "Turno de " + mention(turn) + " para pickear.",
		Color:       colorDraft,
		Fields:      teamsField(m),
	}

	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent
	for _, pid := range avail {
		label := names[pid]
		if label == "" {
			label = pid
		}
		if len(label) > 80 {
			label = label[:80]
		}
		row = append(row, discordgo.Button{
			Label:    label,
			Style:    discordgo.SecondaryButton,
			CustomID: "draft:" + m.ID + ":" + pid,
		})
		if len(row) == 5 {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}
	return []*discordgo.MessageEmbed{embed}, rows
}

// lobbyView: draft cerrado, falta el código de lobby del líder 2.
func lobbyView(m domain.Match) ([]*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "🧩 Equipos listos · match " + m.ID,
		Description: mention(m.Leader2) + " crea el lobby custom y comparte el código con el botón.",
		Color:       colorDraft,
		Fields:      teamsField(m),
	}
	comps := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Compartir lobby", Style: discordgo.PrimaryButton, CustomID: "lobby_open:" + m.ID, Emoji: &discordgo.ComponentEmoji{Name: "🔑"}},
			discordgo.Button{Label: "Cancelar match", Style: discordgo.DangerButton, CustomID: "match_cancel:" + m.ID},
		}},
	}
	return []*discordgo.MessageEmbed{embed}, comps
}

// liveView: match en juego, con los controles de voto para los líderes.
func liveView(m domain.Match, names map[string]string) ([]*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "⚔️ Match " + m.ID + " en juego",
		Description: "Lobby: **" + m.LobbyID + "**\nAl terminar, los dos líderes votan ganador y MVP.",
		Color:       colorLive,
		Fields:      teamsField(m),
	}

	opts := make([]discordgo.SelectMenuOption, 0, len(m.Participants))
	for _, pid := range m.AllPlayers() {
		label := names[pid]
		if label == "" {
			label = pid
		}
		if len(label) > 100 {
			label = label[:100]
		}
		opts = append(opts, discordgo.SelectMenuOption{Label: label, Value: pid})
	}

	comps := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Ganó Equipo 1", Style: discordgo.PrimaryButton, CustomID: "vote_team:" + m.ID + ":1", Emoji: &discordgo.ComponentEmoji{Name: "🔵"}},
			discordgo.Button{Label: "Ganó Equipo 2", Style: discordgo.PrimaryButton, CustomID: "vote_team:" + m.ID + ":2", Emoji: &discordgo.ComponentEmoji{Name: "🔴"}},
			discordgo.Button{Label: "Cancelar match", Style: discordgo.DangerButton, CustomID: "match_cancel:" + m.ID},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    "mvp_select:" + m.ID,
				Placeholder: "Votar MVP",
				Options:     opts,
			},
		}},
	}
	return []*discordgo.MessageEmbed{embed}, comps
}

func resultEmbed(m domain.Match, deltas map[string]int) *discordgo.MessageEmbed {
	winners, losers := m.Team1, m.Team2
	if m.WinnerTeam == 2 {
		winners, losers = m.Team2, m.Team1
	}
	var sb strings.Builder
	for _, p := range winners {
		fmt.Fprintf(&sb, "%s **%+d**\n", mention(p), deltas[p])
	}
	winField := sb.String()
	sb.Reset()
	for _, p := range losers {
		fmt.Fprintf(&sb, "%s **%+d**\n", mention(p), deltas[p])
	}
	loseField := sb.String()

	e := &discordgo.MessageEmbed{
		Title: "🏆 Match " + m.ID + " · ganó el Equipo " + fmt.Sprintf("%d", m.WinnerTeam),
		Color: colorResult,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ganadores", Value: winField, Inline: true},
			{Name: "Perdedores", Value: loseField, Inline: true},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if m.MvpID != "" {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name: "⭐ MVP", Value: mention(m.MvpID),
		})
	}
	if m.ProofURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: m.ProofURL}
	}
	return e
}

func cancelEmbed(matchID, reason string) *discordgo.MessageEmbed {
	if reason == "" {
		reason = "sin motivo"
	}
	return &discordgo.MessageEmbed{
		Title:       "🚫 Match " + matchID + " cancelado",
		Description: "Motivo: " + reason,
		Color:       colorCancel,
	}
}

// ---- stats / leaderboard / history / config ------------------------------

func statsEmbed(st service.PlayerStats) *discordgo.MessageEmbed {
	p := st.Player
	return &discordgo.MessageEmbed{
		Title: "📊 Stats de " + p.Username,
		Color: colorQueue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Puntos", Value: fmt.Sprintf("%d", p.Points), Inline: true},
			{Name: "Rango", Value: st.Rank, Inline: true},
			{Name: "Posición", Value: fmt.Sprintf("#%d", st.Position), Inline: true},
			{Name: "Jugados", Value: fmt.Sprintf("%d", p.MatchesPlayed), Inline: true},
			{Name: "Ganados", Value: fmt.Sprintf("%d", p.MatchesWon), Inline: true},
			{Name: "Winrate", Value: fmt.Sprintf("%.1f%%", p.WinRate()), Inline: true},
			{Name: "MVPs", Value: fmt.Sprintf("%d", p.MvpCount), Inline: true},
		},
	}
}

func leaderboardEmbed(players []storage.Player, page int) *discordgo.MessageEmbed {
	var sb strings.Builder
	base := (page - 1) * leaderboardPageSize
	for i, p := range players {
		fmt.Fprintf(&sb, "**%d.** %s · %d pts · %s\n", base+i+1, p.Username, p.Points, domain.RankFor(p.Points))
	}
	if sb.Len() == 0 {
		sb.WriteString("_todavía no hay jugadores_")
	}
	return &discordgo.MessageEmbed{
		Title:       "🏅 Leaderboard",
		Description: sb.String(),
		Color:       colorQueue,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Página %d", page)},
	}
}

func historyEmbed(entries []storage.HistoryEntry) *discordgo.MessageEmbed {
	var sb strings.Builder
	for _, e := range entries {
		line := fmt.Sprintf("`%s` · ganó Equipo %d", e.MatchID, e.WinnerTeam)
		if e.MvpID != "" {
			line += " · MVP " + mention(e.MvpID)
		}
		sb.WriteString(line + "\n")
	}
	if sb.Len() == 0 {
		sb.WriteString("_sin matches todavía_")
	}
	return &discordgo.MessageEmbed{
		Title:       "📜 Historial reciente",
		Description: sb.String(),
		Color:       colorQueue,
	}
}

func configEmbed(cfg domain.GuildSettings) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⚙️ Configuración",
		Color: colorQueue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "points_win", Value: fmt.Sprintf("%d", cfg.PointsWin), Inline: true},
			{Name: "points_loss", Value: fmt.Sprintf("%d", cfg.PointsLoss), Inline: true},
			{Name: "points_mvp", Value: fmt.Sprintf("%d", cfg.PointsMvp), Inline: true},
			{Name: "timeout_minutes", Value: fmt.Sprintf("%d", cfg.TimeoutMinutes), Inline: true},
			{Name: "proof_timeout_minutes", Value: fmt.Sprintf("%d", cfg.ProofTimeoutMinutes), Inline: true},
			{Name: "no_proof_penalty", Value: fmt.Sprintf("%d", cfg.NoProofPenalty), Inline: true},
			{Name: "queue_size", Value: fmt.Sprintf("%d", cfg.QueueSize), Inline: true},
			{Name: "rank_roles_enabled", Value: fmt.Sprintf("%v", cfg.RankRolesEnabled), Inline: true},
		},
	}
}
