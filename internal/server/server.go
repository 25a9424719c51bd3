// Package server contains the HTTP handlers and routing for the API.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"pethealth/internal/cache"
	"pethealth/internal/config"
	"pethealth/internal/database"
	"pethealth/internal/middleware"
	"pethealth/internal/models"
	"pethealth/internal/repository"
	"pethealth/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo     repository.UserRepository
	petRepo      repository.PetRepository
	weightRepo   repository.WeightLogRepository
	dietRepo     repository.DietLogRepository
	vaccineRepo  repository.VaccineLogRepository
	growthRepo   repository.GrowthLogRepository
	reminderRepo repository.ReminderRepository
	photoRepo    repository.PhotoRepository

	userService     *service.UserService
	petService      *service.PetService
	weightService   *service.WeightLogService
	dietService     *service.DietLogService
	vaccineService  *service.VaccineLogService
	growthService   *service.GrowthLogService
	reminderService *service.ReminderService
	photoService    *service.PhotoService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests and bootstrap layers that establish DB/Redis themselves use this.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("pethealth-api"),
		userRepo:       repository.NewUserRepository(db),
		petRepo:        repository.NewPetRepository(db),
		weightRepo:     repository.NewWeightLogRepository(db),
		dietRepo:       repository.NewDietLogRepository(db),
		vaccineRepo:    repository.NewVaccineLogRepository(db),
		growthRepo:     repository.NewGrowthLogRepository(db),
		reminderRepo:   repository.NewReminderRepository(db),
		photoRepo:      repository.NewPhotoRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo)
	server.petService = service.NewPetService(server.petRepo)
	server.weightService = service.NewWeightLogService(server.weightRepo, server.petService)
	server.dietService = service.NewDietLogService(server.dietRepo, server.petService)
	server.vaccineService = service.NewVaccineLogService(server.vaccineRepo, server.petService)
	server.photoService = service.NewPhotoService(server.photoRepo, cfg)
	server.growthService = service.NewGrowthLogService(server.growthRepo, server.photoService, server.petService)
	server.reminderService = service.NewReminderService(server.reminderRepo, server.petService)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// Propagate request ID and user ID into the request context for logging.
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)

	// Everything below requires a valid token.
	protected := api.Group("", s.AuthRequired())

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Delete("/:id", s.DeleteUser)

	// Pet routes. Specific /:id/:resource routes BEFORE the generic /:id.
	pets := protected.Group("/pets")
	pets.Get("/", s.GetPets)
	pets.Post("/", s.CreatePet)
	pets.Get("/:id/weight-logs/trend", s.GetWeightTrend)
	pets.Get("/:id/weight-logs", s.GetPetWeightLogs)
	pets.Get("/:id/diet-logs", s.GetPetDietLogs)
	pets.Get("/:id/vaccine-logs", s.GetPetVaccineLogs)
	pets.Get("/:id/growth-logs", s.GetPetGrowthLogs)
	pets.Post("/:id/growth-logs", s.CreateGrowthLog)
	pets.Delete("/:id/growth-logs/:logId", s.DeleteGrowthLog)
	pets.Get("/:id/reminders", s.GetPetReminders)
	pets.Get("/:id", s.GetPet)
	pets.Put("/:id", s.UpdatePet)
	pets.Delete("/:id", s.DeletePet)

	// Log routes
	weightLogs := protected.Group("/weight-logs")
	weightLogs.Post("/", s.CreateWeightLog)
	weightLogs.Put("/:id", s.UpdateWeightLog)
	weightLogs.Delete("/:id", s.DeleteWeightLog)

	dietLogs := protected.Group("/diet-logs")
	dietLogs.Post("/", s.CreateDietLog)
	dietLogs.Put("/:id", s.UpdateDietLog)
	dietLogs.Delete("/:id", s.DeleteDietLog)

	vaccineLogs := protected.Group("/vaccine-logs")
	vaccineLogs.Post("/", s.CreateVaccineLog)
	vaccineLogs.Put("/:id", s.UpdateVaccineLog)
	vaccineLogs.Delete("/:id", s.DeleteVaccineLog)

	// Reminder routes. Specific routes before the generic /:id.
	reminders := protected.Group("/reminders")
	reminders.Get("/", s.GetReminders)
	reminders.Post("/", s.CreateReminder)
	reminders.Get("/due-soon", s.GetDueSoonReminders)
	reminders.Get("/overdue", s.GetOverdueReminders)
	reminders.Patch("/:id/mark-sent", s.MarkReminderSent)
	reminders.Get("/:id", s.GetReminder)
	reminders.Put("/:id", s.UpdateReminder)
	reminders.Delete("/:id", s.DeleteReminder)

	// Photo routes
	photos := protected.Group("/photos")
	photos.Post("/", s.UploadPhoto)
	photos.Get("/:hash/:size", s.GetPhoto)
	photos.Get("/:hash", s.GetPhoto)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Reject tokens revoked by logout.
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if s.redis != nil {
				isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
				if err == nil && isBlacklisted > 0 {
					return models.RespondWithError(c, fiber.StatusUnauthorized,
						models.NewUnauthorizedError("Token has been revoked"))
				}
			}
		}

		c.Locals("userID", uint(userID))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName:   "Pet Health API",
		BodyLimit: int(s.config.MaxUploadSizeMB+1) * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	s.photoService.StartBackgroundWorker(s.shutdownCtx)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the photo worker and any other server-scoped goroutines.
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
