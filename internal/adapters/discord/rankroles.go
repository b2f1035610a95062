package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Roles de rango en Discord: un rol por tier, con nombre decorado y color
// propio. Radiant queda afuera del sync porque no sale del mapeo por puntos
// (se asigna a mano al top del leaderboard) y no hay que pisarlo.
type rankRole struct {
	Name  string
	Color int
}

var rankRoleByTier = map[string]rankRole{
	"Bronze":    {"🟤 Bronze", 0x8b4513},
	"Silver":    {"⚪ Silver", 0xc0c0c0},
	"Gold":      {"🟡 Gold", 0xffd700},
	"Platinum":  {"🟦 Platinum", 0x4169e1},
	"Diamond":   {"💎 Diamond", 0x00ced1},
	"Ascendant": {"🟢 Ascendant", 0x00ff00},
	"Immortal":  {"🔥 Immortal", 0xff4500},
}

// staleRankRoleIDs devuelve los roles de rango del miembro que ya no
// corresponden a su tier actual.
func staleRankRoleIDs(memberRoles []string, idByName map[string]string, keepID string) []string {
	rankIDs := make(map[string]bool, len(rankRoleByTier))
	for _, rr := range rankRoleByTier {
		if id, ok := idByName[rr.Name]; ok {
			rankIDs[id] = true
		}
	}
	var stale []string
	for _, rid := range memberRoles {
		if rankIDs[rid] && rid != keepID {
			stale = append(stale, rid)
		}
	}
	return stale
}

// syncRankRoles alinea el rol de rango de cada jugador con sus puntos
// actuales. Respeta el toggle rank_roles_enabled del guild; es mejor
// esfuerzo: los errores se loguean y no cortan el flujo que lo disparó.
func (r *Router) syncRankRoles(guildID string, playerIDs []string) {
	ctx, cancel := ctxFor()
	defer cancel()

	cfg, err := r.settings.Get(ctx, guildID)
	if err != nil || !cfg.RankRolesEnabled {
		return
	}

	roles, err := r.s.GuildRoles(guildID)
	if err != nil {
		log.Printf("[ranks] list roles: %v", err)
		return
	}
	idByName := make(map[string]string, len(roles))
	for _, ro := range roles {
		idByName[ro.Name] = ro.ID
	}

	for _, uid := range playerIDs {
		r.applyRankRole(ctx, guildID, uid, idByName)
	}
}

func (r *Router) applyRankRole(ctx context.Context, guildID, userID string, idByName map[string]string) {
	st, err := r.stats.PlayerStats(ctx, userID)
	if err != nil {
		return
	}
	rr, ok := rankRoleByTier[st.Rank]
	if !ok {
		return
	}

	targetID, ok := idByName[rr.Name]
	if !ok {
		color := rr.Color
		hoist := true
		created, err := r.s.GuildRoleCreate(guildID, &discordgo.RoleParams{
			Name:  rr.Name,
			Color: &color,
			Hoist: &hoist,
		})
		if err != nil {
			log.Printf("[ranks] create role %q: %v", rr.Name, err)
			return
		}
		idByName[rr.Name] = created.ID
		targetID = created.ID
	}

	member, err := r.s.State.Member(guildID, userID)
	if err != nil || member == nil {
		if member, err = r.s.GuildMember(guildID, userID); err != nil || member == nil {
			return
		}
	}

	hasTarget := false
	for _, rid := range member.Roles {
		if rid == targetID {
			hasTarget = true
			break
		}
	}
	for _, rid := range staleRankRoleIDs(member.Roles, idByName, targetID) {
		if err := r.s.GuildMemberRoleRemove(guildID, userID, rid); err != nil {
			log.Printf("[ranks] remove role %s de %s: %v", rid, userID, err)
		}
	}
	if !hasTarget {
		if err := r.s.GuildMemberRoleAdd(guildID, userID, targetID); err != nil {
			log.Printf("[ranks] add role %q a %s: %v", rr.Name, userID, err)
		}
	}
}
