package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/trainermarkt/backend/config"
	"github.com/trainermarkt/backend/internal/handler"
	"github.com/trainermarkt/backend/internal/middleware"
	"github.com/trainermarkt/backend/internal/notify"
	"github.com/trainermarkt/backend/internal/repository"
	"github.com/trainermarkt/backend/internal/service"
	"github.com/trainermarkt/backend/pkg/database"
	"github.com/trainermarkt/backend/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Notification publishing is best-effort; the service runs without a
	// broker, it just stops mirroring messages to the exchange.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Printf("rabbitmq unavailable, notifications are persisted only: %v", err)
	} else {
		defer publisher.Close()
	}

	// Repositories
	requestRepo := repository.NewRequestRepository(db)
	trainingRepo := repository.NewTrainingRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Services
	notifier := notify.NewNotifier(publisher)
	negotiationSvc := service.NewNegotiationService(requestRepo, trainingRepo, trainerRepo, messageRepo, notifier)
	searchSvc := service.NewSearchService(trainerRepo, trainingRepo)
	trainingSvc := service.NewTrainingService(trainingRepo)
	trainerSvc := service.NewTrainerService(trainerRepo, messageRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "trainermarkt"})
	})

	auth := middleware.RequireIdentity([]byte(cfg.JWTSecret))
	handler.NewRequestHandler(negotiationSvc).RegisterRoutes(e, auth)
	handler.NewSearchHandler(searchSvc).RegisterRoutes(e)
	handler.NewTrainingHandler(trainingSvc).RegisterRoutes(e, auth)
	handler.NewTrainerHandler(trainerSvc).RegisterRoutes(e, auth)

	log.Printf("Trainermarkt API starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
