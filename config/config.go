package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"foodplan/pkg/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	KafkaBroker    string
	JWTSecret      string
	CallbackSecret string
	PlannerSvcURL  string
	PaymentSvcURL  string
	StatsSvcURL    string
	PublicBaseURL  string
	Port           string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.L().Info("no .env file found, using system environment")
	}

	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "foodplan"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		KafkaBroker:    getEnv("KAFKA_BROKER", "localhost:9092"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CallbackSecret: getEnv("PAYMENT_CALLBACK_SECRET", ""),
		PlannerSvcURL:  getEnv("PLANNER_SVC_URL", "http://localhost:8081"),
		PaymentSvcURL:  getEnv("PAYMENT_SVC_URL", "http://localhost:8082"),
		StatsSvcURL:    getEnv("STATS_SVC_URL", "http://localhost:8083"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		Port:           getEnv("PORT", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// ListenAddr returns the HTTP listen address, falling back to the service's own port when PORT is unset.
func (c *Config) ListenAddr(defaultPort string) string {
	if c.Port != "" {
		return ":" + c.Port
	}
	return ":" + defaultPort
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func MustInitPostgres(cfg *Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}

	if err = db.Ping(); err != nil {
		logger.L().Fatal("failed to ping database", zap.Error(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

// MustInitGorm opens the same database through gorm and migrates the given models.
func MustInitGorm(cfg *Config, models ...interface{}) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()+" TimeZone=UTC"), &gorm.Config{})
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			logger.L().Fatal("failed to migrate database", zap.Error(err))
		}
	}

	return db
}

func MustInitRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
		Password: cfg.RedisPassword,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.L().Fatal("failed to connect to redis", zap.Error(err))
	}

	return client
}

func NewKafkaReader(cfg *Config, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   topic,
		GroupID: groupID,
	})
}

// NewKafkaWriter partitions by message key so events sharing a key stay ordered.
func NewKafkaWriter(cfg *Config, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}
