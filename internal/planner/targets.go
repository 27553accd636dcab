package planner

import (
	"math"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
)

type Metric string

const (
	MetricCalories Metric = "calories"
	MetricProtein  Metric = "protein"
	MetricCarbs    Metric = "carbs"
	MetricFat      Metric = "fat"
	MetricSodium   Metric = "sodium"
)

// Target is a per-day amount of one metric.
type Target struct {
	Metric Metric  `json:"metric"`
	PerDay float64 `json:"per_day"`
	Unit   string  `json:"unit"`
}

// GoalTarget is either a SingleMetricTarget or BalancedTargets.
type GoalTarget interface {
	Targets() []Target
	goalTarget()
}

type SingleMetricTarget struct {
	Target
}

func (s SingleMetricTarget) Targets() []Target { return []Target{s.Target} }
func (SingleMetricTarget) goalTarget()         {}

type BalancedTargets struct {
	Calories Target
	Protein  Target
	Carbs    Target
	Fat      Target
}

func (b BalancedTargets) Targets() []Target {
	return []Target{b.Calories, b.Protein, b.Carbs, b.Fat}
}
func (BalancedTargets) goalTarget() {}

var goalTargets = map[model.Goal]GoalTarget{
	model.GoalWeightLoss: SingleMetricTarget{Target{Metric: MetricCalories, PerDay: 1800, Unit: "kcal"}},
	model.GoalMuscleGain: SingleMetricTarget{Target{Metric: MetricProtein, PerDay: 150, Unit: "g"}},
	model.GoalLowSodium:  SingleMetricTarget{Target{Metric: MetricSodium, PerDay: 1500, Unit: "mg"}},
	model.GoalBalancedDiet: BalancedTargets{
		Calories: Target{Metric: MetricCalories, PerDay: 2000, Unit: "kcal"},
		Protein:  Target{Metric: MetricProtein, PerDay: 75, Unit: "g"},
		Carbs:    Target{Metric: MetricCarbs, PerDay: 250, Unit: "g"},
		Fat:      Target{Metric: MetricFat, PerDay: 65, Unit: "g"},
	},
}

// TargetsFor returns the static target definition for goal. Goals outside the
// enumerated set get the balanced targets, the same fallback the selector uses.
func TargetsFor(goal model.Goal) GoalTarget {
	if t, ok := goalTargets[goal]; ok {
		return t
	}
	return goalTargets[model.GoalBalancedDiet]
}

type MetricProgress struct {
	Metric      Metric  `json:"metric"`
	Unit        string  `json:"unit"`
	PerDay      float64 `json:"target_per_day"`
	TargetTotal float64 `json:"target_total"`
	Current     float64 `json:"current"`
	Percentage  float64 `json:"percentage"`
	AvgPerDay   float64 `json:"avg_per_day"`
}

// Progress compares consumption against the whole-plan target of every metric
// in target. Percentages are capped at 100.
func Progress(target GoalTarget, consumed Consumed, durationDays int) []MetricProgress {
	days := consumed.DaysTracked
	if days < 1 {
		days = 1
	}
	var targets []Target
	switch t := target.(type) {
	case SingleMetricTarget:
		targets = []Target{t.Target}
	case BalancedTargets:
		targets = t.Targets()
	}
	out := make([]MetricProgress, 0, len(targets))
	for _, t := range targets {
		current := consumed.Value(t.Metric)
		total := t.PerDay * float64(durationDays)
		pct := 0.0
		if total > 0 {
			pct = math.Min(100, round1(current/total*100))
		}
		out = append(out, MetricProgress{
			Metric:      t.Metric,
			Unit:        t.Unit,
			PerDay:      t.PerDay,
			TargetTotal: total,
			Current:     current,
			Percentage:  pct,
			AvgPerDay:   round1(current / float64(days)),
		})
	}
	return out
}
