package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Schedule  ScheduleConfig
	Booking   BookingConfig
	Invoice   InvoiceConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,If-Match"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,ETag"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// ScheduleConfig describes the shop calendar used when a request names no resource.
type ScheduleConfig struct {
	TimeZone     string        `envconfig:"SCHEDULE_TIMEZONE" default:"UTC"`
	DefaultOpen  string        `envconfig:"SCHEDULE_DEFAULT_OPEN" default:"09:00"`
	DefaultClose string        `envconfig:"SCHEDULE_DEFAULT_CLOSE" default:"18:00"`
	SlotStep     time.Duration `envconfig:"SCHEDULE_SLOT_STEP" default:"30m"`
}

type BookingConfig struct {
	IdempotencyTTL time.Duration `envconfig:"BOOKING_IDEMPOTENCY_TTL" default:"24h"`
}

type InvoiceConfig struct {
	DueDays int `envconfig:"INVOICE_DUE_DAYS" default:"30"`
}

// RedisConfig: an empty Addr disables the availability cache.
type RedisConfig struct {
	Addr            string        `envconfig:"REDIS_ADDR" default:""`
	Password        string        `envconfig:"REDIS_PASSWORD" default:""`
	DB              int           `envconfig:"REDIS_DB" default:"0"`
	AvailabilityTTL time.Duration `envconfig:"REDIS_AVAILABILITY_TTL" default:"2m"`
}

// KafkaConfig: no brokers means events stay in the outbox table.
type KafkaConfig struct {
	Brokers       []string      `envconfig:"KAFKA_BROKERS" default:""`
	Topic         string        `envconfig:"KAFKA_TOPIC" default:"booking-events"`
	RelayInterval time.Duration `envconfig:"KAFKA_RELAY_INTERVAL" default:"5s"`
	RelayBatch    int           `envconfig:"KAFKA_RELAY_BATCH" default:"100"`
}

type RateLimitConfig struct {
	RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	Burst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (k KafkaConfig) Enabled() bool {
	for _, b := range k.Brokers {
		if b != "" {
			return true
		}
	}
	return false
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Schedule: ScheduleConfig{
			TimeZone:     "UTC",
			DefaultOpen:  "09:00",
			DefaultClose: "18:00",
			SlotStep:     30 * time.Minute,
		},
		Booking: BookingConfig{
			IdempotencyTTL: 24 * time.Hour,
		},
		Invoice: InvoiceConfig{
			DueDays: 30,
		},
		Kafka: KafkaConfig{
			Topic:         "booking-events",
			RelayInterval: time.Second,
			RelayBatch:    100,
		},
		RateLimit: RateLimitConfig{
			RPS:   1000,
			Burst: 1000,
		},
	}
}
