package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/model"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/planner"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

type Handler struct {
	db    *sql.DB
	plans *service.PlanService
	log   *zap.Logger
}

func NewHandler(db *sql.DB, plans *service.PlanService, log *zap.Logger) *Handler {
	return &Handler{db: db, plans: plans, log: log}
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (h *Handler) ListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := service.ListUsers(c.Request.Context(), h.db)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func (h *Handler) CreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.UserInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		user, err := service.CreateUser(c.Request.Context(), h.db, in)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// ActivePlan returns the user's active plan, or 404 when there is none.
func (h *Handler) ActivePlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := idParam(c, "id")
		if !ok {
			return
		}
		plan, err := service.ActivePlanForUser(c.Request.Context(), h.db, userID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		if plan == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active plan"})
			return
		}
		c.JSON(http.StatusOK, plan)
	}
}

func (h *Handler) ListFoods() gin.HandlerFunc {
	return func(c *gin.Context) {
		foods, err := service.ListFoods(c.Request.Context(), h.db)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, foods)
	}
}

func (h *Handler) CreateFood() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in service.FoodInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		food, err := service.CreateFood(c.Request.Context(), h.db, in)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, food)
	}
}

type createPlanRequest struct {
	UserID          int64  `json:"user_id" binding:"required"`
	Goal            string `json:"goal" binding:"required"`
	DurationDays    int    `json:"duration_days" binding:"required"`
	ReplaceExisting bool   `json:"replace_existing"`
}

func (h *Handler) CreatePlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "user_id, goal and duration_days are required")
			return
		}
		goal, err := model.ParseGoal(req.Goal)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		in := service.CreatePlanInput{UserID: req.UserID, Goal: goal, DurationDays: req.DurationDays}
		var plan model.Plan
		if req.ReplaceExisting {
			plan, err = h.plans.ReplacePlan(c.Request.Context(), in)
		} else {
			plan, err = h.plans.CreatePlan(c.Request.Context(), in)
		}
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, plan)
	}
}

func (h *Handler) PlanDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		planID, ok := idParam(c, "id")
		if !ok {
			return
		}
		detail, err := service.GetPlanDetail(c.Request.Context(), h.db, planID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

func (h *Handler) DeletePlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		planID, ok := idParam(c, "id")
		if !ok {
			return
		}
		if err := h.plans.DeletePlan(c.Request.Context(), planID); err != nil {
			h.writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type todayResponse struct {
	PlanID      int64                   `json:"plan_id"`
	Day         int                     `json:"day"`
	Completed   bool                    `json:"completed"`
	Meals       service.MealsByType     `json:"meals"`
	ActualMeals []model.ActualMealEntry `json:"actual_meals"`
}

func (h *Handler) Today() gin.HandlerFunc {
	return func(c *gin.Context) {
		planID, ok := idParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		plan, err := service.GetPlan(ctx, h.db, planID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		meals, err := service.TodayMeals(ctx, h.db, planID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		actual, err := service.TodayActualMeals(ctx, h.db, planID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, todayResponse{
			PlanID:      plan.ID,
			Day:         plan.CurrentDay,
			Completed:   plan.Completed(),
			Meals:       meals,
			ActualMeals: actual,
		})
	}
}

func (h *Handler) Options() gin.HandlerFunc {
	return func(c *gin.Context) {
		planID, ok := idParam(c, "id")
		if !ok {
			return
		}
		day, err := strconv.Atoi(c.Param("day"))
		if err != nil {
			badRequest(c, "invalid day")
			return
		}
		mealType, err := model.ParseMealType(c.Query("meal_type"))
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		recs, err := service.RecommendationsFor(c.Request.Context(), h.db, planID, day, mealType)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, recs)
	}
}

type actualMealRequest struct {
	MealType   string `json:"meal_type"`
	FoodItemID int64  `json:"food_item_id"`
	Grams      int    `json:"grams"`
}

type advanceRequest struct {
	Feedback    string              `json:"feedback" binding:"required"`
	ActualMeals []actualMealRequest `json:"actual_meals"`
}

func (h *Handler) Advance() gin.HandlerFunc {
	return func(c *gin.Context) {
		planID, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req advanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "feedback is required")
			return
		}
		feedback, err := model.ParseFeedback(req.Feedback)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		actuals := make([]service.ActualMealInput, 0, len(req.ActualMeals))
		for _, a := range req.ActualMeals {
			mealType, err := model.ParseMealType(a.MealType)
			if err != nil {
				badRequest(c, err.Error())
				return
			}
			actuals = append(actuals, service.ActualMealInput{MealType: mealType, FoodItemID: a.FoodItemID, Grams: a.Grams})
		}
		res, err := h.plans.Advance(c.Request.Context(), planID, feedback, actuals)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func (h *Handler) Progress() gin.HandlerFunc {
	return func(c *gin.Context) {
		planID, ok := idParam(c, "id")
		if !ok {
			return
		}
		report, err := service.GoalProgress(c.Request.Context(), h.db, planID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func (h *Handler) Nutrition() gin.HandlerFunc {
	return func(c *gin.Context) {
		planID, ok := idParam(c, "id")
		if !ok {
			return
		}
		summary, err := service.PlanNutrition(c.Request.Context(), h.db, planID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

type goalTargets struct {
	Goal    model.Goal       `json:"goal"`
	Targets []planner.Target `json:"targets"`
}

// GoalTargets lists per-day targets for one goal, or for all goals when the
// goal query parameter is omitted.
func (h *Handler) GoalTargets() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.Query("goal"); raw != "" {
			goal, err := model.ParseGoal(raw)
			if err != nil {
				badRequest(c, err.Error())
				return
			}
			c.JSON(http.StatusOK, goalTargets{Goal: goal, Targets: planner.TargetsFor(goal).Targets()})
			return
		}
		out := make([]goalTargets, 0, len(model.Goals))
		for _, g := range model.Goals {
			out = append(out, goalTargets{Goal: g, Targets: planner.TargetsFor(g).Targets()})
		}
		c.JSON(http.StatusOK, out)
	}
}
