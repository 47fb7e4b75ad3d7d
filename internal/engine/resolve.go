package engine

import (
	"github.com/tatianab/portal-escape/internal/models"
	"github.com/tatianab/portal-escape/internal/random"
)

// GeneratePortals draws which directions are open this round: one draw per
// loaded direction, in table order. An empty result is a normal outcome.
func GeneratePortals(table *models.ProbabilityTable, src random.Source) []models.Direction {
	var open []models.Direction
	for _, d := range table.Present() {
		e, _ := table.Get(d)
		if random.Chance(src, e.Open) {
			open = append(open, d)
		}
	}
	return open
}

// CheckExit reports whether d leads out. The caller drifts the exit chance
// on failure.
func CheckExit(table *models.ProbabilityTable, d models.Direction, src random.Source) bool {
	e, ok := table.Get(d)
	if !ok {
		return false
	}
	return random.Chance(src, e.Exit)
}

// CheckPolice reports whether the police are waiting behind d.
func CheckPolice(table *models.ProbabilityTable, d models.Direction, src random.Source) bool {
	e, ok := table.Get(d)
	if !ok {
		return false
	}
	return random.Chance(src, e.Police)
}

// BribeAmount is uniform over [coins/2, 3*coins/2], both floored.
func BribeAmount(coins int, src random.Source) int {
	if coins <= 0 {
		return 0
	}
	lo := coins / 2
	hi := coins * 3 / 2
	return random.Between(src, lo, hi)
}
