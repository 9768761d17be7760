package kafka_config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.ProducerCompression != DefaultProducerCompression {
		t.Errorf("compression = %s", cfg.ProducerCompression)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv(EnvKafkaProducerCompression, "ZSTD")
	t.Setenv(EnvKafkaProducerWriteTimeout, "3s")
	t.Setenv(EnvKafkaProducerMaxAttempts, "lots")

	cfg := Load()
	if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "kafka-2:9092" {
		t.Errorf("brokers = %v", cfg.Brokers)
	}
	if cfg.ProducerCompression != "zstd" {
		t.Errorf("compression = %s", cfg.ProducerCompression)
	}
	if cfg.ProducerWriteTimeout != 3*time.Second {
		t.Errorf("write timeout = %s", cfg.ProducerWriteTimeout)
	}
	if cfg.ProducerMaxAttempts != DefaultProducerMaxAttempts {
		t.Errorf("unparsable attempts should fall back, got %d", cfg.ProducerMaxAttempts)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Brokers:              []string{"localhost"},
		ProducerMaxAttempts:  0,
		ProducerBatchTimeout: time.Millisecond,
		ProducerWriteTimeout: time.Second,
		ProducerRequireAcks:  2,
		ProducerCompression:  "brotli",
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"host:port", "ProducerMaxAttempts", "ProducerRequireAcks", "ProducerCompression"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
