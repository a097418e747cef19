package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Config is shared by every service; each one reads the fields it needs.
type Config struct {
	HTTPAddr string

	StoreBackend string
	DBHost       string
	DBPort       string
	DBName       string
	DBUser       string
	DBPassword   string
	DBSSLMode    string

	RedisHost string
	RedisPort string

	KafkaBroker string
	KafkaTopic  string

	MediaBackend       string
	MediaDir           string
	MediaURLPrefix     string
	GCSBucket          string
	GCSCredentialsFile string

	PublicBaseURL     string
	WebhookSecret     string
	Timezone          string
	MenuCacheTTL      time.Duration
	OrderCancelWindow time.Duration

	DiningSvcURL    string
	AnalyticsSvcURL string

	StatsAddr     string
	AnalyticsAddr string
	GatewayAddr   string
	StatsTTL      time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8081"),

		StoreBackend: getEnv("STORE_BACKEND", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBName:       getEnv("DB_NAME", "tableside"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),

		RedisHost: os.Getenv("REDIS_HOST"),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "dining-events"),

		MediaBackend:       getEnv("MEDIA_BACKEND", "local"),
		MediaDir:           getEnv("MEDIA_DIR", "./uploads"),
		MediaURLPrefix:     getEnv("MEDIA_URL_PREFIX", "/uploads"),
		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GCSCredentialsFile: os.Getenv("GCS_CREDENTIALS_FILE"),

		PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		WebhookSecret:     os.Getenv("IDENTITY_WEBHOOK_SECRET"),
		Timezone:          getEnv("RESTAURANT_TZ", "Local"),
		MenuCacheTTL:      getDuration("MENU_CACHE_TTL", 5*time.Minute),
		OrderCancelWindow: getDuration("ORDER_CANCEL_WINDOW", 5*time.Minute),

		DiningSvcURL:    getEnv("DINING_SVC_URL", "http://localhost:8081"),
		AnalyticsSvcURL: getEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),

		StatsAddr:     getEnv("STATS_HTTP_ADDR", ":8082"),
		AnalyticsAddr: getEnv("ANALYTICS_HTTP_ADDR", ":8083"),
		GatewayAddr:   getEnv("GATEWAY_HTTP_ADDR", ":8080"),
		StatsTTL:      getDuration("STATS_TTL", 30*24*time.Hour),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Location resolves the restaurant time zone used for "today" comparisons.
func (c Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("unknown RESTAURANT_TZ %q, falling back to local time: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}

func (c Config) PostgresDSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=" + c.DBSSLMode
}

func (c Config) RedisEnabled() bool { return c.RedisHost != "" }

func (c Config) KafkaEnabled() bool { return c.KafkaBroker != "" }

// MustInitPostgres opens the process-wide connection pool.
func MustInitPostgres(cfg Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg Config, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaTopic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.Hash{},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("invalid duration for %s=%q, using %s", key, value, defaultValue)
	return defaultValue
}
