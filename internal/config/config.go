// Package config gathers process configuration from the environment once
// at startup. A .env file is honored when present.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultTimezone = "Asia/Manila"
	DefaultDBFile   = "attendance.db"
)

type Config struct {
	Env  string
	Port string

	// Postgres; when DBHost is empty the embedded sqlite backend is used.
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	DBFile     string

	RedisAddr   string
	KafkaBroker string

	SlackBotToken string
	SlackAppToken string
	ChannelID     string

	Timezone    string
	DataDir     string
	CORSOrigins []string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:  getenv("APP_ENV", "development"),
		Port: getenv("PORT", "8000"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),
		DBFile:     getenv("DB_FILE", DefaultDBFile),

		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),

		SlackBotToken: os.Getenv("SLACK_BOT_TOKEN"),
		SlackAppToken: os.Getenv("SLACK_APP_TOKEN"),
		ChannelID:     os.Getenv("CHANNEL_ID"),

		Timezone: getenv("TIMEZONE", DefaultTimezone),
		DataDir:  getenv("DATA_DIR", "data"),
		CORSOrigins: splitList(getenv(
			"CORS_ORIGINS",
			"http://localhost:3000,http://localhost:5173",
		)),
	}
}

// UsePostgres reports whether the networked backend is configured.
func (c Config) UsePostgres() bool {
	return c.DBHost != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
