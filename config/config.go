package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// ActivityFeedKey is the Redis list activity-svc pushes to and admin-svc reads.
const ActivityFeedKey = "activity:recent"

type Postgres struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	Name     string `env:"DB_NAME" envDefault:"toro_admin"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
}

func (p Postgres) DSN() string {
	return "host=" + p.Host + " port=" + p.Port + " user=" + p.User +
		" password=" + p.Password + " dbname=" + p.Name + " sslmode=disable"
}

type Redis struct {
	Host string `env:"REDIS_HOST" envDefault:"localhost"`
	Port string `env:"REDIS_PORT" envDefault:"6379"`
}

func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

type Kafka struct {
	Broker        string `env:"KAFKA_BROKER" envDefault:"localhost:9092"`
	ActivityTopic string `env:"ACTIVITY_TOPIC" envDefault:"admin-activity"`
}

type Admin struct {
	Port           string        `env:"PORT" envDefault:"8081"`
	Password       string        `env:"ADMIN_PASSWORD,required,notEmpty"`
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	SessionKey     string        `env:"SESSION_KEY"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	SecureCookies  bool          `env:"SECURE_COOKIES" envDefault:"false"`
	BackendURL     string        `env:"BACKEND_URL" envDefault:"http://localhost:3000/api"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	PageSize       int           `env:"PAGE_SIZE" envDefault:"25"`
	Redis          Redis
	Kafka          Kafka
}

type Activity struct {
	Port     string `env:"PORT" envDefault:"8082"`
	GroupID  string `env:"ACTIVITY_GROUP" envDefault:"activity-svc"`
	FeedSize int    `env:"FEED_SIZE" envDefault:"50"`
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
}

type Gateway struct {
	Port           string `env:"PORT" envDefault:"8080"`
	AdminSvcURL    string `env:"ADMIN_SVC_URL" envDefault:"http://localhost:8081"`
	ActivitySvcURL string `env:"ACTIVITY_SVC_URL" envDefault:"http://localhost:8082"`
	JWTSecret      string `env:"JWT_SECRET,required,notEmpty"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// MustLoad reads an optional .env file and then the environment into target.
func MustLoad(target any) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	if err := ParseEnv(target); err != nil {
		log.Fatal("Failed to load config:", err)
	}
}

func MustInitPostgres(cfg Postgres) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
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

func MustInitRedis(cfg Redis) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg Kafka, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.ActivityTopic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg Kafka) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Broker),
		Topic:                  cfg.ActivityTopic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}
