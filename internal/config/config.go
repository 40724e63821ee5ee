package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogMemory   = "memory"
	CatalogPostgres = "postgres"
)

type Config struct {
	ServerPort string

	CatalogSource  string // "memory" (built-in seed) or "postgres"
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	DBMaxOpenConns int
	DBConnMaxIdle  time.Duration

	RedisAddr     string // empty keeps booking flows in memory
	RedisPassword string
	RedisDB       int
	FlowTTL       time.Duration

	AWSRegion         string
	SQSStatusQueueURL string // detector events feeding the /status board

	AMQPURL string // empty disables booking.confirmed publishing

	PaymentDelay    time.Duration
	StatusSlotCount int
	StatusURL       string // remote /status for the voice interpreter; empty uses the local board
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	flowTTL := positiveInt("FLOW_TTL_MINUTES", 30)
	paymentDelayMs := positiveInt("PAYMENT_DELAY_MS", 2000)
	slotCount := positiveInt("STATUS_SLOT_COUNT", 9)
	maxOpenConns := positiveInt("DB_MAX_OPEN_CONNS", 10)
	connMaxIdle := positiveInt("DB_CONN_MAX_IDLE_MINUTES", 5)

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		CatalogSource:  getEnv("CATALOG_SOURCE", CatalogMemory),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         dbPort,
		DBUser:         getEnv("DB_USER", "parking"),
		DBPassword:     getEnv("DB_PASSWORD", "parking"),
		DBName:         getEnv("DB_NAME", "parking_db"),
		DBSslMode:      getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns: maxOpenConns,
		DBConnMaxIdle:  time.Duration(connMaxIdle) * time.Minute,

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		FlowTTL:       time.Duration(flowTTL) * time.Minute,

		AWSRegion:         getEnv("AWS_REGION", "eu-west-2"),
		SQSStatusQueueURL: getEnv("SQS_STATUS_QUEUE_URL", ""),

		AMQPURL: getEnv("AMQP_URL", ""),

		PaymentDelay:    time.Duration(paymentDelayMs) * time.Millisecond,
		StatusSlotCount: slotCount,
		StatusURL:       getEnv("STATUS_URL", ""),
	}
}

// positiveInt reads an integer setting. Anything unparsable or not above zero
// falls back, with a log line, to the default.
func positiveInt(key string, fallback int) int {
	raw := getEnv(key, strconv.Itoa(fallback))
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("Environment variable '%s' has invalid value '%s', using default: %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable '%s' not set, using default: '%s'", key, fallback)
	return fallback
}
