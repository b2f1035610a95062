package discord

import "github.com/bwmarrin/discordgo"

// requireAdminOrRoles corta las acciones administrativas: pasan el owner del
// guild, cualquier miembro con el bit de Administrator y los roles listados
// en la config del bot. Al resto se le responde efímero y no se sigue.
func (r *Router) requireAdminOrRoles(s *discordgo.Session, ic *discordgo.InteractionCreate) bool {
	if r.isAdmin(s, ic) {
		return true
	}
	ReplyEphemeral(s, ic, "🔒 Esa acción es solo para administradores.")
	return false
}

func (r *Router) isAdmin(s *discordgo.Session, ic *discordgo.InteractionCreate) bool {
	if ic.Member == nil || ic.Member.User == nil {
		return false
	}
	if g, _ := s.State.Guild(ic.GuildID); g != nil && g.OwnerID == ic.Member.User.ID {
		return true
	}
	// en interacciones el gateway ya manda los permisos resueltos del miembro
	if ic.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	for _, want := range r.adminRoleIDs {
		for _, rid := range ic.Member.Roles {
			if rid == want {
				return true
			}
		}
	}
	return false
}
