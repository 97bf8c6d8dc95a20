package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI       string
	MongoDB        string
	ServerPort     string
	RedisURL       string
	AuthServiceURL string
}

// LoadConfig reads the environment. The Mongo URI and auth service address
// are mandatory; startup fails without them.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        os.Getenv("MONGO_DB"),
		ServerPort:     os.Getenv("SERVER_PORT"),
		RedisURL:       os.Getenv("REDIS_URL"),
		AuthServiceURL: os.Getenv("AUTH_SERVICE_URL"),
	}

	for name, value := range map[string]string{
		"MONGO_URI":        cfg.MongoURI,
		"AUTH_SERVICE_URL": cfg.AuthServiceURL,
	} {
		if value == "" {
			return nil, fmt.Errorf("required environment variable %s is not set", name)
		}
	}

	if cfg.MongoDB == "" {
		cfg.MongoDB = "car_care"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = ":8001"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379"
	}
	return cfg, nil
}
