package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// Read model storage: sqlite, postgres or memory
	DBDriver   string
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	// Auth Configuration
	JWTSecret          string
	TokenTTLMinutes    int
	RecoveryTTLMinutes int
	AuthUsers          map[string]string // email -> password, seeded into the local provider
	// Dashboard
	ExpiryWindowDays int
	CORSOrigins      []string
	// Redis Configuration (optional - for cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTL      int  // Cache TTL in seconds
	UseCache      bool // Whether to use cache (Redis) or not
	// Kafka Configuration (optional)
	KafkaBrokers    []string
	KafkaTopicItems string
	KafkaTopicSales string
	KafkaTopicAuth  string
	KafkaGroupID    string
	KafkaClientID   string
	UseKafka        bool
}

func Load() *Config {
	// .env file is optional, continue with environment variables
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8082"),
		Environment: getEnv("ENVIRONMENT", "development"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		SQLitePath:  getEnv("SQLITE_PATH", "./dashboard.db"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "dashboard_db"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		// Auth Configuration
		JWTSecret:          getEnv("JWT_SECRET", "your-secret-key-change-in-production-min-32-chars"),
		TokenTTLMinutes:    getEnvAsInt("TOKEN_TTL_MINUTES", 10),
		RecoveryTTLMinutes: getEnvAsInt("RECOVERY_TTL_MINUTES", 30),
		AuthUsers:          parseUsers(getEnv("AUTH_USERS", "admin@example.com:admin123")),
		ExpiryWindowDays:   getEnvAsInt("EXPIRY_WINDOW_DAYS", 7),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
		// Redis Configuration (optional)
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      getEnvAsInt("CACHE_TTL", 60),
		UseCache:      getEnvAsBool("USE_CACHE", false),
		// Kafka Configuration (optional)
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "localhost:9093")),
		KafkaTopicItems: getEnv("KAFKA_TOPIC_ITEMS", "inventory.items"),
		KafkaTopicSales: getEnv("KAFKA_TOPIC_SALES", "inventory.sales"),
		KafkaTopicAuth:  getEnv("KAFKA_TOPIC_AUTH", "dashboard.auth"),
		KafkaGroupID:    getEnv("KAFKA_GROUP_ID", "dashboard-service"),
		KafkaClientID:   getEnv("KAFKA_CLIENT_ID", "dashboard-service"),
		UseKafka:        getEnvAsBool("USE_KAFKA", false),
	}
}

// PostgresDSN builds a lib/pq connection string from the DB_* settings
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// parseUsers parses "email:password" pairs separated by commas
func parseUsers(value string) map[string]string {
	users := make(map[string]string)
	for _, pair := range splitList(value) {
		email, password, ok := strings.Cut(pair, ":")
		if !ok || email == "" || password == "" {
			continue
		}
		users[strings.ToLower(strings.TrimSpace(email))] = password
	}
	return users
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true" || value == "1"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}
