package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"employee-records-api/config"
	"employee-records-api/events"
	"employee-records-api/middleware"
	"employee-records-api/routes"
	"employee-records-api/services"
	"employee-records-api/storage"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logFile, _ := config.InitLogging(settings.Environment)
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB(settings)

	ctx := context.Background()

	store, err := storage.NewStoreFromSettings(ctx, settings.Upload)
	if err != nil {
		log.Fatal("Failed to initialize upload storage: ", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if settings.Events.AMQPURL != "" {
		rabbit, err := events.NewRabbitPublisher(settings.Events.AMQPURL, settings.Events.Exchange)
		if err != nil {
			config.Logger.Warn().Err(err).Msg("event publishing disabled")
		} else {
			publisher = rabbit
		}
	}
	defer publisher.Close()

	notifiers := services.MultiNotifier{
		services.NewInboxService(config.DB),
		services.NewEventNotifier(publisher),
	}
	if config.MailConfigured() {
		notifiers = append(notifiers, services.NewMailNotifier(config.DB))
	}

	workflows := services.NewWorkflows(config.DB,
		services.WithNotifier(notifiers),
		services.WithEmployeeCodePrefix(settings.EmployeeCodePrefix),
	)

	// Set Gin mode
	if settings.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.LoggerWithWriter(config.LogWriter))
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware(settings.CORS.AllowedOrigins))
	router.MaxMultipartMemory = settings.Upload.MaxBytes

	// Setup routes
	routes.SetupRoutes(router, routes.Dependencies{
		DB:        config.DB,
		Settings:  settings,
		Workflows: workflows,
		Store:     store,
	})

	config.Logger.Info().
		Str("port", settings.ServerPort).
		Str("environment", settings.Environment).
		Str("upload_backend", settings.Upload.Backend).
		Msg("Server starting")

	if err := router.Run(":" + settings.ServerPort); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
