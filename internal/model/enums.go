package model

import (
	"fmt"
	"strings"
)

type Goal string

const (
	GoalWeightLoss   Goal = "Weight Loss"
	GoalMuscleGain   Goal = "Muscle Gain"
	GoalLowSodium    Goal = "Low Sodium"
	GoalBalancedDiet Goal = "Balanced Diet"
)

var Goals = []Goal{GoalWeightLoss, GoalMuscleGain, GoalLowSodium, GoalBalancedDiet}

func (g Goal) Valid() bool {
	for _, v := range Goals {
		if g == v {
			return true
		}
	}
	return false
}

// ParseGoal accepts the display name in any case ("low sodium") as well as
// the snake form used on the command line ("low_sodium").
func ParseGoal(value string) (Goal, error) {
	norm := strings.ToLower(strings.TrimSpace(value))
	norm = strings.ReplaceAll(norm, "_", " ")
	norm = strings.ReplaceAll(norm, "-", " ")
	for _, g := range Goals {
		if strings.ToLower(string(g)) == norm {
			return g, nil
		}
	}
	return "", fmt.Errorf("invalid goal %q (expected one of: %s)", value, joinGoals())
}

func joinGoals() string {
	names := make([]string, 0, len(Goals))
	for _, g := range Goals {
		names = append(names, string(g))
	}
	return strings.Join(names, ", ")
}

type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
)

type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// GeneratedMealTypes are the slots the planner fills for every day.
var GeneratedMealTypes = []MealType{Breakfast, Lunch, Dinner}

func (m MealType) Valid() bool {
	for _, v := range MealTypes {
		if m == v {
			return true
		}
	}
	return false
}

func ParseMealType(value string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(value)))
	if m == "snacks" {
		m = Snack
	}
	if !m.Valid() {
		return "", fmt.Errorf("invalid meal type %q (expected breakfast, lunch, dinner or snack)", value)
	}
	return m, nil
}

type Feedback string

const (
	StrictlyFollowed Feedback = "strictly_followed"
	LessHealthy      Feedback = "less_healthy"
	MoreHealthy      Feedback = "more_healthy"
)

var Feedbacks = []Feedback{StrictlyFollowed, LessHealthy, MoreHealthy}

func (f Feedback) Valid() bool {
	for _, v := range Feedbacks {
		if f == v {
			return true
		}
	}
	return false
}

func ParseFeedback(value string) (Feedback, error) {
	f := Feedback(strings.ToLower(strings.TrimSpace(value)))
	f = Feedback(strings.ReplaceAll(string(f), "-", "_"))
	if !f.Valid() {
		return "", fmt.Errorf("invalid feedback %q (expected strictly_followed, less_healthy or more_healthy)", value)
	}
	return f, nil
}
