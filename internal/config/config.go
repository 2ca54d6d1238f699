package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	ServerPort     string
	MongoURI       string
	MongoDatabase  string
	JWTSecret      string
	TokenTTL       time.Duration
	UploadDir      string
	AllowedOrigins []string
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DB", "sociable"),
		JWTSecret:      getEnv("TOKEN_SECRET", "dev-secret-change-me"),
		TokenTTL:       getDuration("TOKEN_EXPIRATION", 24*time.Hour),
		UploadDir:      getEnv("UPLOAD_DIR", "public/uploads"),
		AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}

	return d
}

func splitEnv(key, fallback string) []string {
	raw := getEnv(key, fallback)

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
