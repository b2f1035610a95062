package discord

import "github.com/bwmarrin/discordgo"

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "queue",
		Description: "Gestiona la cola de scrims",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "join", Description: "Unirte a la cola"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "leave", Description: "Salir de la cola"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "status", Description: "Ver la cola"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "panel", Description: "Publicar el panel con botones (admins)"},
		},
	},
	{
		Name:        "stats",
		Description: "Tus estadísticas (o las de otro jugador)",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "player",
			Description: "Jugador a consultar",
		}},
	},
	{
		Name:        "leaderboard",
		Description: "Tabla de puntos del server",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "page",
			Description: "Página (10 por página)",
		}},
	},
	{
		Name:        "history",
		Description: "Historial de matches recientes",
	},
	{
		Name:        "config",
		Description: "Ver o cambiar settings del bot (admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "show", Description: "Ver configuración"},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Actualizar configuración (sólo lo que pases)",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "points_win", Description: "Puntos por victoria"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "points_loss", Description: "Puntos por derrota (se normaliza a negativo)"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "points_mvp", Description: "Bonus MVP"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "timeout_minutes", Description: "Timeout de jugador (min)"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "proof_timeout_minutes", Description: "Ventana para subir prueba (min)"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "no_proof_penalty", Description: "Penalidad a líderes sin prueba"},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "queue_size", Description: "Tamaño de cola (par, 4-20)"},
					{Type: discordgo.ApplicationCommandOptionBoolean, Name: "rank_roles_enabled", Description: "Roles de rango automáticos"},
				},
			},
		},
	},
	{
		Name:        "points",
		Description: "Ajustar puntos de un jugador (admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "player", Description: "Jugador", Required: true},
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "delta", Description: "Delta (positivo o negativo)", Required: true},
		},
	},
	{
		Name:        "timeout",
		Description: "Aplicar o sacar timeout de cola (admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "set", Description: "Aplicar timeout",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionUser, Name: "player", Description: "Jugador", Required: true},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "minutes", Description: "Duración (1-1440)", Required: true},
				},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "remove", Description: "Sacar timeout",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionUser, Name: "player", Description: "Jugador", Required: true},
				},
			},
		},
	},
	{
		Name:        "scrim",
		Description: "Acciones sobre un match (admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "force_winner", Description: "Forzar ganador y cerrar",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "match_id", Description: "ID del match", Required: true},
					{Type: discordgo.ApplicationCommandOptionInteger, Name: "team", Description: "1 o 2", Required: true},
				},
			},
			{
				Type: discordgo.ApplicationCommandOptionSubCommand, Name: "cancel", Description: "Cancelar match",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "match_id", Description: "ID del match", Required: true},
					{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Motivo"},
				},
			},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "clear_queue", Description: "Vaciar la cola"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "force_start", Description: "Arrancar con los que haya (par, 4+)"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "clear_history", Description: "Borrar el historial del guild"},
		},
	},
}
