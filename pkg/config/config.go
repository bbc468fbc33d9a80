package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	LogLevel    string

	ServerPort int

	JWTAccessSecret []byte

	KafkaBrokers  []string
	LowStockTopic string

	LowStockThreshold int
}

// Load reads .env files if present and then the process environment.
func Load(files ...string) Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			log.Printf("notice: %s not loaded: %v. Using system environment variables", f, err)
		}
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "shopledger"),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		JWTAccessSecret: []byte(os.Getenv("JWT_SECRET")),

		KafkaBrokers:  CSV(os.Getenv("KAFKA_BROKERS")),
		LowStockTopic: EnvDefault("LOW_STOCK_TOPIC", "low_stock_alerts"),

		LowStockThreshold: EnvIntDefault("LOW_STOCK_THRESHOLD", 10),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
