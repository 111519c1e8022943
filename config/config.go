package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// App is the process configuration, read from the environment.
type App struct {
	Port          string
	SlackTokens   []string
	ImageLocation string
	RedisURI      string
	RedisPassword string
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found, using environment variables")
	}
}

func GetEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

// LoadApp reads the application settings. SLACK_TOKENS is a
// comma-separated set of shared secrets so tokens can be rotated
// without downtime.
func LoadApp() App {
	var tokens []string
	for _, t := range strings.Split(GetEnv("SLACK_TOKENS", ""), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return App{
		Port:          GetEnv("PORT", "8080"),
		SlackTokens:   tokens,
		ImageLocation: GetEnv("IMAGE_LOCATION", "https://pokerbot.example.com/images/"),
		RedisURI:      GetEnv("REDIS_URI", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
	}
}
