package planner

import (
	"math"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
)

// Portion is an amount of one catalog food.
type Portion struct {
	Food  model.FoodItem
	Grams int
}

type Totals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Sodium   int     `json:"sodium"`
}

// Value returns the total for one metric as a float.
func (t Totals) Value(m Metric) float64 {
	switch m {
	case MetricCalories:
		return float64(t.Calories)
	case MetricProtein:
		return t.Protein
	case MetricCarbs:
		return t.Carbs
	case MetricFat:
		return t.Fat
	case MetricSodium:
		return float64(t.Sodium)
	}
	return 0
}

// Add accumulates other into t. Decimal fields are re-rounded so repeated
// sums do not drift away from one decimal place.
func (t Totals) Add(other Totals) Totals {
	return Totals{
		Calories: t.Calories + other.Calories,
		Protein:  round1(t.Protein + other.Protein),
		Carbs:    round1(t.Carbs + other.Carbs),
		Fat:      round1(t.Fat + other.Fat),
		Sodium:   t.Sodium + other.Sodium,
	}
}

// Consumed is the nutrition eaten over the tracked days of a plan.
type Consumed struct {
	Totals
	DaysTracked int `json:"days_tracked"`
}

// Aggregate sums the nutrients of portions. Each portion is rounded on its
// own before it is added: whole numbers for calories and sodium, one decimal
// for protein, carbs and fat. Halves round away from zero.
func Aggregate(portions []Portion) Totals {
	var out Totals
	for _, p := range portions {
		out = out.Add(nutrientsFor(p))
	}
	return out
}

func nutrientsFor(p Portion) Totals {
	multiplier := float64(p.Grams) / 100
	return Totals{
		Calories: int(math.Round(float64(p.Food.CaloriesPer100g) * multiplier)),
		Protein:  round1(p.Food.ProteinPer100g * multiplier),
		Carbs:    round1(p.Food.CarbsPer100g * multiplier),
		Fat:      round1(p.Food.FatPer100g * multiplier),
		Sodium:   int(math.Round(float64(p.Food.SodiumMgPer100g) * multiplier)),
	}
}

// DayPortions holds the planned and actual meals of one closed day.
type DayPortions struct {
	Planned []Portion
	Actual  []Portion
}

// ConsumedFromDays sums days in order, preferring a day's actual meals and
// falling back to its planned meals. Every day counts as tracked, even when
// both lists are empty.
func ConsumedFromDays(days []DayPortions) Consumed {
	var out Consumed
	for _, d := range days {
		src := d.Planned
		if len(d.Actual) > 0 {
			src = d.Actual
		}
		out.Totals = out.Totals.Add(Aggregate(src))
		out.DaysTracked++
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
