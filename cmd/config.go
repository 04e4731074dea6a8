package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"onlineshop/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort   string `envconfig:"HTTP_PORT" default:"8080"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	// KafkaHost may list several brokers separated by commas. Empty means
	// order events are only logged.
	KafkaHost             string `envconfig:"KAFKA_HOST"`
	KafkaOrderEventsTopic string `envconfig:"KAFKA_ORDER_EVENTS_TOPIC" default:"order-lifecycle"`

	LowStockThreshold int `envconfig:"LOW_STOCK_THRESHOLD" default:"5"`

	// LowStockSchedule is a cron expression with five fields, six fields
	// (leading seconds) or a descriptor such as "@every 1m".
	LowStockSchedule string `envconfig:"LOW_STOCK_SCHEDULE" default:"@every 1m"`
}

// LoadConfig reads envFile when it exists and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}

	if config.LowStockThreshold < 0 {
		return Config{}, fmt.Errorf("LOW_STOCK_THRESHOLD must not be negative, got %d", config.LowStockThreshold)
	}

	if err := jobs.ValidateSchedule(config.LowStockSchedule); err != nil {
		return Config{}, fmt.Errorf("LOW_STOCK_SCHEDULE: %w", err)
	}

	return config, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, broker := range strings.Split(c.KafkaHost, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
