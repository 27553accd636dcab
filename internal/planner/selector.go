package planner

import (
	"math"
	"sort"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
)

const (
	// DefaultBaseCount is how many foods a plan works from before feedback
	// widens or narrows the pool.
	DefaultBaseCount = 15
	// MinSelection is the smallest history-biased set worth keeping.
	MinSelection = 5
	// FrequentThreshold is how many times a food must have been eaten to be
	// pulled to the front of the selection.
	FrequentThreshold = 2
)

// Rand is the random source used for shuffles and draws. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Rank orders a copy of catalog by how well each food serves goal. Equal keys
// keep catalog order. Balanced and unknown goals are shuffled.
func Rank(catalog []model.FoodItem, goal model.Goal, rng Rand) []model.FoodItem {
	out := append([]model.FoodItem(nil), catalog...)
	switch goal {
	case model.GoalLowSodium:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].SodiumMgPer100g < out[j].SodiumMgPer100g
		})
	case model.GoalWeightLoss:
		sort.SliceStable(out, func(i, j int) bool {
			return calorieDensity(out[i]) < calorieDensity(out[j])
		})
	case model.GoalMuscleGain:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ProteinPer100g > out[j].ProteinPer100g
		})
	default:
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

// calorieDensity is calories per gram of protein; the +1 keeps zero-protein
// foods finite.
func calorieDensity(f model.FoodItem) float64 {
	return float64(f.CaloriesPer100g) / (f.ProteinPer100g + 1)
}

// Strictness turns feedback counts into a pool multiplier in [0.5, 2.0].
// It is computed in tenths so that e.g. two less_healthy days and one
// more_healthy day give exactly 1.1.
func Strictness(lessHealthy, moreHealthy int) float64 {
	tenths := 10 + lessHealthy - moreHealthy
	if tenths < 5 {
		tenths = 5
	}
	if tenths > 20 {
		tenths = 20
	}
	return float64(tenths) / 10
}

func TargetCount(base int, strictness float64) int {
	n := int(math.Round(float64(base) * strictness))
	if n < base {
		return base
	}
	return n
}

// History is what the selector knows about a plan's past days.
type History struct {
	LessHealthy int
	MoreHealthy int
	// FrequentFoodIDs are foods eaten at least FrequentThreshold times,
	// most eaten first.
	FrequentFoodIDs []int64
}

// HistoryFrom counts feedback and finds frequently eaten foods among actual
// meals recorded strictly before day beforeDay.
func HistoryFrom(trackings []model.DailyTracking, actuals []model.ActualMealEntry, beforeDay int) History {
	var h History
	for _, t := range trackings {
		if t.DayIndex >= beforeDay {
			continue
		}
		switch t.Feedback {
		case model.LessHealthy:
			h.LessHealthy++
		case model.MoreHealthy:
			h.MoreHealthy++
		}
	}
	h.FrequentFoodIDs = FrequentFoods(actuals, beforeDay)
	return h
}

// FrequentFoods returns ids of foods eaten FrequentThreshold or more times on
// days before beforeDay, ordered by count and then by first appearance.
func FrequentFoods(actuals []model.ActualMealEntry, beforeDay int) []int64 {
	counts := map[int64]int{}
	order := make([]int64, 0)
	for _, a := range actuals {
		if a.DayIndex >= beforeDay {
			continue
		}
		if _, seen := counts[a.FoodItemID]; !seen {
			order = append(order, a.FoodItemID)
		}
		counts[a.FoodItemID]++
	}
	out := make([]int64, 0)
	for _, id := range order {
		if counts[id] >= FrequentThreshold {
			out = append(out, id)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return counts[out[i]] > counts[out[j]]
	})
	return out
}

type Selection struct {
	Foods       []model.FoodItem
	Strictness  float64
	TargetCount int
	// HistoryBiased is false when the frequent-food merge was discarded.
	HistoryBiased bool
}

// Select picks the working food set for a plan. Frequently eaten foods go
// first, followed by the best ranked foods for the goal. When that leaves
// fewer than MinSelection foods the history is dropped and the ranked list is
// used alone.
func Select(catalog []model.FoodItem, goal model.Goal, h History, base int, rng Rand) Selection {
	strictness := Strictness(h.LessHealthy, h.MoreHealthy)
	target := TargetCount(base, strictness)
	sel := Selection{Strictness: strictness, TargetCount: target}
	if len(catalog) == 0 {
		return sel
	}

	ranked := Rank(catalog, goal, rng)
	candidates := truncate(ranked, target*2)

	byID := make(map[int64]model.FoodItem, len(catalog))
	for _, f := range catalog {
		byID[f.ID] = f
	}
	merged := make([]model.FoodItem, 0, target)
	seen := map[int64]bool{}
	for _, id := range h.FrequentFoodIDs {
		if f, ok := byID[id]; ok && !seen[id] {
			seen[id] = true
			merged = append(merged, f)
		}
	}
	for _, f := range candidates {
		if !seen[f.ID] {
			seen[f.ID] = true
			merged = append(merged, f)
		}
	}
	merged = truncate(merged, target)

	if len(merged) < MinSelection {
		sel.Foods = truncate(ranked, target)
		return sel
	}
	sel.Foods = merged
	sel.HistoryBiased = len(h.FrequentFoodIDs) > 0
	return sel
}

func truncate(foods []model.FoodItem, n int) []model.FoodItem {
	if len(foods) > n {
		return foods[:n]
	}
	return foods
}
