package config

import (
	"os"
)

// Config carries everything the process reads from the environment.
// Loaded once in main and handed down explicitly — the Mongo handle is
// injected into each component at construction rather than living in a
// package-level variable.
type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	JWTSecret       []byte
	StripeSecretKey string
	// ClientOrigin is the frontend base URL used for checkout redirects.
	ClientOrigin string
}

// Load reads configuration from the environment with dev-friendly fallbacks.
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "3000"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "local_chef_bazaar_db"),
		JWTSecret:       []byte(getEnv("JWT_SECRET", "local_chef_bazaar_super_secret_2024")),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
