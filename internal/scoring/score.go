package scoring

import (
	"math"

	"wishlist/internal/models"
)

// Coefficient tables. Necessity outranks discretionary, and a resolved or
// rejected status zeroes the score regardless of the other factors.
var categoryCoefficients = map[models.Category]float64{
	models.CategoryNecessity:     1.5,
	models.CategoryDiscretionary: 1.0,
}

var statusCoefficients = map[models.Status]float64{
	models.StatusWanted:         1.0,
	models.StatusMaybeNotNeeded: 0.1,
	models.StatusPurchased:      0,
	models.StatusNotNeeded:      0,
}

// Score computes the priority score for a wish item. It is total over the
// enumerated domains; callers validate enum values before calling. The result
// is rounded to one decimal place, half away from zero.
func Score(category models.Category, desireLevel int, status models.Status) float64 {
	score := categoryCoefficients[category] * float64(desireLevel) * statusCoefficients[status]
	return math.Round(score*10) / 10
}
