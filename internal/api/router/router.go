package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/config"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/api/handler"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/internal/api/middleware"
	"github.com/HadarguetaTur/RAZ-MICHAEL-MAZURIK-sub000/pkg/redis"
)

// Setup builds the gin engine and wires all routes.
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		teachers := v1.Group("/teachers")
		{
			teachers.GET("", h.Teacher.List)
			teachers.GET("/:id", h.Teacher.Get)
			teachers.POST("", h.Teacher.Create)
			teachers.PUT("/:id", h.Teacher.Update)
		}

		templates := v1.Group("/templates")
		{
			templates.GET("", h.Template.List)
			templates.GET("/:id", h.Template.Get)
			templates.POST("", h.Template.Create)
			templates.PUT("/:id", h.Template.Update)
			templates.DELETE("/:id", h.Template.Deactivate)
		}

		lessons := v1.Group("/lessons")
		{
			lessons.GET("", h.Lesson.List)
			lessons.GET("/:id", h.Lesson.Get)
			lessons.POST("", h.Lesson.Create)
			lessons.POST("/:id/cancel", h.Lesson.Cancel)
		}

		slots := v1.Group("/slots")
		{
			slots.GET("", h.Slot.List)
			slots.GET("/:id", h.Slot.Get)
			// Sync and rollover are heavyweight batch operations.
			slots.POST("/sync", middleware.RateLimit(rdb, 10, time.Minute), h.Slot.Sync)
			slots.POST("/rollover", middleware.RateLimit(rdb, 10, time.Minute), h.Slot.Rollover)
			slots.POST("/block", h.Slot.Block)
			slots.POST("/:id/unblock", h.Slot.Unblock)
			slots.POST("/:id/lock", h.Slot.Lock)
			slots.POST("/:id/unlock", h.Slot.Unlock)
		}

		conflicts := v1.Group("/conflicts")
		{
			conflicts.POST("/check", h.Conflict.Check)
		}

		export := v1.Group("/export")
		{
			export.GET("/availability", h.Export.Availability)
			export.GET("/teachers/:id/calendar.ics", h.Export.TeacherCalendar)
		}
	}

	return r
}
