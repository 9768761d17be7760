package kafka_config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	compressions = []string{"none", "gzip", "snappy", "lz4", "zstd"}
	acks         = []int{-1, 0, 1}
)

// Config is the producer side of the booking event stream.
type Config struct {
	Brokers  []string
	ClientID string

	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerWriteTimeout time.Duration
	ProducerRequireAcks  int // -1 all replicas, 0 none, 1 leader
	ProducerCompression  string
	ProducerAsync        bool

	// EnableMiddleware turns on per-message publish logging.
	EnableMiddleware bool
}

// Load reads the environment. Validate is called by the service config so
// Kafka problems are reported with the rest.
func Load() *Config {
	return &Config{
		Brokers:  ParseBrokers(env(EnvKafkaBrokers, DefaultKafkaBrokers, parseString)),
		ClientID: env(EnvKafkaClientID, DefaultKafkaClientID, parseString),

		ProducerMaxAttempts:  env(EnvKafkaProducerMaxAttempts, DefaultProducerMaxAttempts, strconv.Atoi),
		ProducerBatchTimeout: env(EnvKafkaProducerBatchTimeout, DefaultProducerBatchTimeout, time.ParseDuration),
		ProducerWriteTimeout: env(EnvKafkaProducerWriteTimeout, DefaultProducerWriteTimeout, time.ParseDuration),
		ProducerRequireAcks:  env(EnvKafkaProducerRequireAcks, DefaultProducerRequireAcks, strconv.Atoi),
		ProducerCompression:  strings.ToLower(env(EnvKafkaProducerCompression, DefaultProducerCompression, parseString)),
		ProducerAsync:        env(EnvKafkaProducerAsync, DefaultProducerAsync, strconv.ParseBool),

		EnableMiddleware: env(EnvKafkaEnableMiddleware, DefaultEnableMiddleware, strconv.ParseBool),
	}
}

// ParseBrokers splits a comma separated host:port list, dropping blanks.
func ParseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (cfg *Config) Validate() error {
	var problems []string

	if len(cfg.Brokers) == 0 {
		problems = append(problems, "at least one broker is required")
	}
	for _, b := range cfg.Brokers {
		if !strings.Contains(b, ":") {
			problems = append(problems, fmt.Sprintf("broker %q must be host:port", b))
		}
	}
	if cfg.ProducerMaxAttempts <= 0 {
		problems = append(problems, fmt.Sprintf("ProducerMaxAttempts must be positive, got: %d", cfg.ProducerMaxAttempts))
	}
	if cfg.ProducerBatchTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("ProducerBatchTimeout must be positive, got: %s", cfg.ProducerBatchTimeout))
	}
	if cfg.ProducerWriteTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("ProducerWriteTimeout must be positive, got: %s", cfg.ProducerWriteTimeout))
	}
	if !slices.Contains(compressions, cfg.ProducerCompression) {
		problems = append(problems, fmt.Sprintf("ProducerCompression must be one of %v, got: %s", compressions, cfg.ProducerCompression))
	}
	if !slices.Contains(acks, cfg.ProducerRequireAcks) {
		problems = append(problems, fmt.Sprintf("ProducerRequireAcks must be one of %v, got: %d", acks, cfg.ProducerRequireAcks))
	}

	if len(problems) > 0 {
		return fmt.Errorf("kafka: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (cfg *Config) LogConfiguration(logFunc func(msg string, keysAndValues ...any)) {
	if logFunc == nil {
		return
	}
	logFunc("Kafka configuration loaded",
		"brokers", cfg.Brokers,
		"client_id", cfg.ClientID,
		"producer_max_attempts", cfg.ProducerMaxAttempts,
		"producer_batch_timeout", cfg.ProducerBatchTimeout,
		"producer_write_timeout", cfg.ProducerWriteTimeout,
		"producer_require_acks", cfg.ProducerRequireAcks,
		"producer_compression", cfg.ProducerCompression,
		"producer_async", cfg.ProducerAsync,
		"enable_middleware", cfg.EnableMiddleware,
	)
}

func parseString(s string) (string, error) { return s, nil }

// env returns fallback when key is unset or does not parse.
func env[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}
