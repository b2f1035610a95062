package domain

import "math/rand"

// NextDrafter: picks alternados estrictos. Los líderes ocupan el pick 0
// implícito, así que el primer pick libre es el índice 1 y le toca a leader1
// (índices impares), leader2 se lleva los pares.
func NextDrafter(picksMade int, leader1, leader2 string) string {
	if (picksMade+1)%2 == 1 {
		return leader1
	}
	return leader2
}

// AvailablePlayers: participantes que todavía no están en ningún roster.
func AvailablePlayers(participants, team1, team2 []string) []string {
	drafted := make(map[string]struct{}, len(team1)+len(team2))
	for _, p := range team1 {
		drafted[p] = struct{}{}
	}
	for _, p := range team2 {
		drafted[p] = struct{}{}
	}
	out := make([]string, 0, len(participants))
	for _, p := range participants {
		if _, ok := drafted[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

func IsDraftComplete(team1, team2 []string, teamSize int) bool {
	return len(team1) == teamSize && len(team2) == teamSize
}

// PickLeaders elige dos líderes distintos al azar de la lista promovida.
// El orden de llegada a la cola no pesa acá.
func PickLeaders(players []string) (string, string) {
	idx := rand.Perm(len(players))
	return players[idx[0]], players[idx[1]]
}
