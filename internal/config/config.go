package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	OpenAIAPIKey   string
	Model          string
	// Pricing API
	PricingAPIURL string
	// Optional rules file overriding the embedded phrase/template data
	RulesFile string
	// Session history backends (first configured wins: redis, postgres, memory)
	RedisURL    string
	DatabaseURL string
	// Business constants
	BusinessPhone   string
	BusinessWebsite string
	DiscountPercent int
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port: getEnvDefault("PORT", "8080"),
		AllowedOrigins: getEnvListDefault("ALLOWED_ORIGINS", []string{
			"https://fabrico.ae",
			"https://www.fabrico.ae",
			"https://fabrico.vercel.app",
			"http://localhost:5173",
		}),
		LogLevel:        getEnvDefault("LOG_LEVEL", "info"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		Model:           getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		PricingAPIURL:   getEnvDefault("PRICING_API_URL", "https://doobi.ae/packages"),
		RulesFile:       os.Getenv("RULES_FILE"),
		RedisURL:        os.Getenv("REDIS_URL"),
		DatabaseURL:     os.Getenv("DB_URL"),
		BusinessPhone:   getEnvDefault("BUSINESS_PHONE", "056 211 1334"),
		BusinessWebsite: getEnvDefault("BUSINESS_WEBSITE", "fabrico.ae"),
		DiscountPercent: getEnvIntDefault("DISCOUNT_PERCENT", 20),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("warning: OPENAI_API_KEY is not set; fallback replies will use the canned apology")
	}
	return cfg
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvListDefault(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			s := strings.TrimSpace(p)
			if s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}
