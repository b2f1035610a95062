package domain

// Umbrales de rango por puntos. Radiant es top-5 del leaderboard y se decide
// afuera, acá solo se mapea por puntos.
type Rank struct {
	Name      string
	Threshold int
}

var Ranks = []Rank{
	{"Immortal", 2200},
	{"Ascendant", 1800},
	{"Diamond", 1500},
	{"Platinum", 1200},
	{"Gold", 1000},
	{"Silver", 600},
	{"Bronze", 0},
}

func RankFor(points int) string {
	for _, r := range Ranks {
		if points >= r.Threshold {
			return r.Name
		}
	}
	return "Bronze"
}
