package domain

// ComputeDeltas: función pura del resultado a los deltas de puntos por
// jugador. Ganadores reciben PointsWin, perdedores PointsLoss (el signo viene
// normalizado desde settings, acá no se toca) y el MVP suma PointsMvp encima
// de su base esté en el equipo que esté. Aplicarla dos veces lo impide el
// guard terminal del match, no el ledger.
func ComputeDeltas(team1, team2 []string, winnerTeam int, mvpID string, s GuildSettings) map[string]int {
	winners, losers := team1, team2
	if winnerTeam == 2 {
		winners, losers = team2, team1
	}

	deltas := make(map[string]int, len(team1)+len(team2))
	for _, p := range winners {
		deltas[p] = s.PointsWin
	}
	for _, p := range losers {
		deltas[p] = s.PointsLoss
	}
	if mvpID != "" {
		deltas[mvpID] += s.PointsMvp
	}
	return deltas
}
