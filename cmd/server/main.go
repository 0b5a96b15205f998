package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/shiftcal/shiftcal-api/internal/config"
	"github.com/shiftcal/shiftcal-api/internal/constants"
	"github.com/shiftcal/shiftcal-api/internal/database"
	"github.com/shiftcal/shiftcal-api/internal/handlers"
	"github.com/shiftcal/shiftcal-api/internal/middleware"
	"github.com/shiftcal/shiftcal-api/internal/repository"
	"github.com/shiftcal/shiftcal-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	templateRepo := repository.NewShiftTemplateRepository(db)
	shiftTypeRepo := repository.NewShiftTypeRepository(db)
	workShiftRepo := repository.NewWorkShiftRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	templateService := services.NewShiftTemplateService(templateRepo)
	shiftTypeService := services.NewShiftTypeService(templateRepo, shiftTypeRepo, workShiftRepo)
	workShiftService := services.NewWorkShiftService(templateRepo, shiftTypeRepo, workShiftRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	templateHandler := handlers.NewShiftTemplateHandler(templateService)
	shiftTypeHandler := handlers.NewShiftTypeHandler(shiftTypeService)
	workShiftHandler := handlers.NewWorkShiftHandler(workShiftService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Shift Calendar API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Shift template routes (protected)
		template := api.Group("/shift-template")
		template.Use(middleware.RequireAuth())
		{
			template.GET("", templateHandler.GetMyTemplate)
			template.PATCH("", templateHandler.Rename)
			template.POST("/versions", templateHandler.CreateVersion)
		}

		// Shift type routes (protected)
		shiftTypes := api.Group("/shift-types")
		shiftTypes.Use(middleware.RequireAuth())
		{
			shiftTypes.GET("", shiftTypeHandler.ListShiftTypes)
			shiftTypes.POST("", shiftTypeHandler.CreateShiftType)
			shiftTypes.PATCH("/:id", shiftTypeHandler.UpdateShiftType)
			shiftTypes.DELETE("/:id", shiftTypeHandler.DeleteShiftType)
		}

		// Work shift routes (protected)
		workShifts := api.Group("/work-shifts")
		workShifts.Use(middleware.RequireAuth())
		{
			workShifts.GET("", workShiftHandler.ListWorkShifts)
			workShifts.PUT("", workShiftHandler.UpsertWorkShift)
			workShifts.PUT("/batch", workShiftHandler.BatchUpsertWorkShifts)
			workShifts.DELETE("/:date", workShiftHandler.DeleteWorkShift)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
