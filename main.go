package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"crmdesk/config"
	controller "crmdesk/controllers"
	"crmdesk/middleware"
	"crmdesk/routes"
	"crmdesk/worker"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if config.AppConfig.Environment == "development" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.DebugLevel)
	}

	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Warnf("Sentry init failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "crmdesk",
	})

	app.Use(recover.New())
	app.Use(middleware.CORS(middleware.DefaultCORSConfig(config.AppConfig.DashboardURL)))
	app.Use(middleware.Metrics())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	feed := controller.NewLinkclickFeed(logger)

	counterWorker := worker.NewCounterWorker(config.DB, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go counterWorker.Start(ctx)

	routes.Setup(app, config.DB, logger, feed)

	logger.Infof("Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
