package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "srimurugan"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultAppTimezone = "Asia/Kolkata"
	DefaultBusFleet    = "Vettaiyan:#FF6B6B,Dheeran:#4ECDC4,Maaran:#45B7D1,Veeran:#96CEB4"
	DefaultBusColor    = "#888888"

	DefaultAccessPin = "1969"

	DefaultMaxBookingDays = 30
	DefaultBookingLockTTL = 30 * time.Second

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaEnabled         = false
	DefaultKafkaBookingTopic    = "bookings.events"
	DefaultKafkaBookingDLQTopic = "bookings.events.dlq"

	DefaultDotEnvFile = ".env"

	DefaultPaginationLimit = 100
)

var defaultBusIcons = []string{"🚌", "🚍", "🚐", "🚎"}
