package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/dmytro-malyk-dm/gym-manager/internal/auth"
	"github.com/dmytro-malyk-dm/gym-manager/internal/booking"
	"github.com/dmytro-malyk-dm/gym-manager/internal/config"
	"github.com/dmytro-malyk-dm/gym-manager/internal/schedule"
	"github.com/dmytro-malyk-dm/gym-manager/internal/stats"
	"github.com/dmytro-malyk-dm/gym-manager/internal/trainer"
	"github.com/dmytro-malyk-dm/gym-manager/internal/user"
	"github.com/dmytro-malyk-dm/gym-manager/internal/workout"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(db)
	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))
	trainerHandler := trainer.NewHandler(trainer.NewService(trainer.NewRepository(db), userRepo))
	workoutHandler := workout.NewHandler(workout.NewService(workout.NewRepository(db)))
	scheduleHandler := schedule.NewHandler(schedule.NewService(schedule.NewRepository(db)))
	bookingHandler := booking.NewHandler(booking.NewService(booking.NewRepository(db)))
	statsHandler := stats.NewHandler(stats.NewService(stats.NewRepository(db), rdb))

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/stats", statsHandler.Overview)
	SetupSwagger(router)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/trainers", trainerHandler.List)
		protected.GET("/trainers/:trainerID", trainerHandler.Get)
		protected.GET("/trainers/:trainerID/workouts", workoutHandler.ListByTrainer)
		protected.GET("/specializations", trainerHandler.ListSpecializations)

		protected.GET("/workouts", workoutHandler.List)
		protected.GET("/workouts/:workoutID", workoutHandler.Get)
		protected.GET("/workouts/:workoutID/schedules", scheduleHandler.ListByWorkout)

		protected.GET("/schedules", scheduleHandler.List)
		protected.GET("/schedules/:scheduleID", scheduleHandler.Get)
		protected.GET("/schedules/:scheduleID/availability", bookingHandler.Availability)

		protected.POST("/schedules/:scheduleID/book", bookingHandler.Reserve)
		protected.POST("/schedules/:scheduleID/cancel", bookingHandler.Release)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
	}

	staff := router.Group("/")
	staff.Use(authMiddleware, auth.RequireRole(user.RoleTrainer, user.RoleAdmin))
	{
		staff.POST("/workouts", workoutHandler.Create)
		staff.PUT("/workouts/:workoutID", workoutHandler.Update)
		staff.DELETE("/workouts/:workoutID", workoutHandler.Delete)

		staff.POST("/schedules", scheduleHandler.Create)
		staff.PUT("/schedules/:scheduleID", scheduleHandler.Update)
		staff.DELETE("/schedules/:scheduleID", scheduleHandler.Delete)

		staff.PUT("/trainers/:trainerID", trainerHandler.Update)
		staff.GET("/schedules/:scheduleID/bookings", bookingHandler.ListBySchedule)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(user.RoleAdmin))
	{
		admin.POST("/trainers", trainerHandler.Create)
		admin.POST("/specializations", trainerHandler.CreateSpecialization)
		admin.DELETE("/users/:userID", userHandler.Delete)
	}

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
