package planner

import (
	"math"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
)

const (
	MinAdjustment = 0.7
	MaxAdjustment = 1.3
)

// PortionRange is the base draw range and the absolute bounds of one meal
// slot, in grams.
type PortionRange struct {
	BaseMin int
	BaseMax int
	Floor   int
	Ceiling int
}

var PortionRanges = map[model.MealType]PortionRange{
	model.Breakfast: {BaseMin: 150, BaseMax: 250, Floor: 100, Ceiling: 400},
	model.Lunch:     {BaseMin: 200, BaseMax: 350, Floor: 150, Ceiling: 500},
	model.Dinner:    {BaseMin: 200, BaseMax: 300, Floor: 150, Ceiling: 450},
	model.Snack:     {BaseMin: 50, BaseMax: 150, Floor: 30, Ceiling: 250},
}

// AdjustmentFactor scales portions so the average daily intake of the goal
// metric moves toward its target. Balanced goals and plans with no recorded
// intake are left at 1.
func AdjustmentFactor(target GoalTarget, consumed Consumed) float64 {
	single, ok := target.(SingleMetricTarget)
	if !ok {
		return 1.0
	}
	days := consumed.DaysTracked
	if days < 1 {
		days = 1
	}
	avg := consumed.Value(single.Metric) / float64(days)
	if avg <= 0 {
		return 1.0
	}
	return clampFloat(single.PerDay/avg, MinAdjustment, MaxAdjustment)
}

// DrawPortion draws a base portion for mealType, scales it by factor and
// clamps the result to the slot's bounds.
func DrawPortion(mealType model.MealType, factor float64, rng Rand) int {
	r, ok := PortionRanges[mealType]
	if !ok {
		r = PortionRanges[model.Lunch]
	}
	base := r.BaseMin + rng.IntN(r.BaseMax-r.BaseMin+1)
	grams := int(math.Round(float64(base) * factor))
	if grams < r.Floor {
		return r.Floor
	}
	if grams > r.Ceiling {
		return r.Ceiling
	}
	return grams
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
