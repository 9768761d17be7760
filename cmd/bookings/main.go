package main

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"srimurugan/internal/auth"
	"srimurugan/internal/bookings/events"
	bookinghandler "srimurugan/internal/bookings/handler"
	"srimurugan/internal/bookings/repository"
	bookingservice "srimurugan/internal/bookings/service"
	"srimurugan/internal/bookings/validator"
	calendarhandler "srimurugan/internal/calendar/handler"
	calendarservice "srimurugan/internal/calendar/service"
	reporthandler "srimurugan/internal/reports/handler"
	reportservice "srimurugan/internal/reports/service"
	"srimurugan/pkg/app"
	"srimurugan/pkg/clock"
	"srimurugan/pkg/config"
	"srimurugan/pkg/contracts"
	"srimurugan/pkg/kafka"
	kafka_middleware "srimurugan/pkg/kafka/middleware"
	"srimurugan/pkg/middleware"
)

const (
	ServiceName = "bookings"

	// PinAttemptsPerWindow caps PIN guesses per client within RateLimitWindow.
	PinAttemptsPerWindow = 5
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Sri Murugan bookings service")

	serverApp := app.NewApplication(cfg)

	verifier, err := middleware.NewPinVerifier(cfg.AccessPin, cfg.AccessPinHash, bcrypt.DefaultCost)
	if err != nil {
		cfg.Log.Fatal("Invalid access pin configuration", "error", err)
	}
	pinLimiter := middleware.NewRateLimiter(PinAttemptsPerWindow, cfg.RateLimitWindow, middleware.ClientIP, cfg.Log)
	serverApp.OnShutdown(func(context.Context) { pinLimiter.Stop() })

	publisher := initPublisher(cfg, serverApp)
	handlers := initHandlers(cfg, publisher)
	handlers = append(handlers, auth.NewPinHandler(verifier, pinLimiter, cfg.Log))

	serverApp.SetApp(verifier, handlers...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.NewNoopPublisher()
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.KafkaBookingTopic, cfg.KafkaBookingDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	metrics := kafka_middleware.NewPublishMetrics()
	producer.Use(metrics.Middleware())
	if cfg.Kafka.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	serverApp.OnShutdown(func(context.Context) {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
		stats := metrics.Snapshot()
		cfg.Log.Info("Kafka producer closed",
			"published", stats.Published,
			"failed", stats.Failed,
			"average_duration", stats.AverageDuration,
		)
	})

	cfg.Log.Info("Kafka producer initialized", "topic", producer.Topic())
	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log)
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	clk := clock.New(cfg.Location)

	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)
	bookingValidator := validator.NewBookingValidator(cfg.Log, cfg.Fleet, cfg.MaxBookingDays)

	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingValidator,
		publisher,
		clk,
		cfg,
	)
	calendarService := calendarservice.NewCalendarService(bookingRepo, cfg.Fleet, clk, cfg.Log)
	reportService := reportservice.NewReportService(bookingService, cfg.Fleet, clk, cfg.Log)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName, "fleet", cfg.Fleet.Names())

	return []contracts.Handler{
		bookinghandler.NewBookingHandler(bookingService, cfg.Fleet, cfg.Log),
		calendarhandler.NewCalendarHandler(calendarService, cfg.Log),
		reporthandler.NewReportHandler(reportService, cfg.Log),
	}
}
