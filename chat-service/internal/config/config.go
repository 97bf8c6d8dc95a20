package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI         string
	MongoDB          string
	ServerPort       string
	GeminiAPIKey     string
	GeminiModel      string
	ElevenLabsAPIKey string
}

// LoadConfig reads the environment. Secrets have no fallback values; missing
// ones fail startup.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          os.Getenv("MONGO_DB"),
		ServerPort:       os.Getenv("SERVER_PORT"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      os.Getenv("GEMINI_MODEL"),
		ElevenLabsAPIKey: os.Getenv("ELEVEN_LABS_API_KEY"),
	}

	for name, value := range map[string]string{
		"MONGO_URI":           cfg.MongoURI,
		"GEMINI_API_KEY":      cfg.GeminiAPIKey,
		"ELEVEN_LABS_API_KEY": cfg.ElevenLabsAPIKey,
	} {
		if value == "" {
			return nil, fmt.Errorf("required environment variable %s is not set", name)
		}
	}

	if cfg.MongoDB == "" {
		cfg.MongoDB = "car_care"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = ":8002"
	}
	return cfg, nil
}
