package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SaaS-team111111/easyNutri-iter2/internal/logging"
	"github.com/SaaS-team111111/easyNutri-iter2/internal/service"
)

type Deps struct {
	DB          *sql.DB
	Plans       *service.PlanService
	Log         *zap.Logger
	CORSOrigins []string
}

func NewRouter(deps Deps) *gin.Engine {
	log := logging.OrNop(deps.Log)
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(log))
	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  deps.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "DELETE"},
			AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
			ExposeHeaders: []string{RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := NewHandler(deps.DB, deps.Plans, log)

	r.GET("/users", h.ListUsers())
	r.POST("/users", h.CreateUser())
	r.GET("/users/:id/plan", h.ActivePlan())

	r.GET("/foods", h.ListFoods())
	r.POST("/foods", h.CreateFood())

	plans := r.Group("/plans")
	{
		plans.POST("", h.CreatePlan())
		plans.GET("/:id", h.PlanDetail())
		plans.DELETE("/:id", h.DeletePlan())
		plans.GET("/:id/today", h.Today())
		plans.GET("/:id/days/:day/options", h.Options())
		plans.POST("/:id/advance", h.Advance())
		plans.GET("/:id/progress", h.Progress())
		plans.GET("/:id/nutrition", h.Nutrition())
	}

	r.GET("/goals/targets", h.GoalTargets())
	return r
}
