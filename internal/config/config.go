package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Admin         AdminConfig   `yaml:"admin"`

	// LegacyPlaintextPasswords reproduces the original app's clear-text
	// password storage and recovery-by-display. Leave off for anything
	// resembling a real deployment.
	LegacyPlaintextPasswords bool `yaml:"legacy_plaintext_passwords"`
}

// AdminConfig is the account seeded with the admin role at startup.
type AdminConfig struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:                     getEnv("GRIEVANCE_ADDR", ":8080"),
		JWTSecret:                getEnv("GRIEVANCE_JWT_SECRET", "supersecretkey"),
		APITimeout:               durationEnv("GRIEVANCE_API_TIMEOUT", 15*time.Second),
		DatabasePath:             getEnv("GRIEVANCE_DATABASE_PATH", "grievance.db"),
		TokenDuration:            durationEnv("GRIEVANCE_TOKEN_DURATION", 1*time.Hour),
		LegacyPlaintextPasswords: boolEnv("GRIEVANCE_LEGACY_PLAINTEXT_PASSWORDS", false),
		Admin: AdminConfig{
			Name:     getEnv("GRIEVANCE_ADMIN_NAME", "Admin"),
			Email:    getEnv("GRIEVANCE_ADMIN_EMAIL", "admin@college.local"),
			Password: getEnv("GRIEVANCE_ADMIN_PASSWORD", "ChangeMe1!"),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func durationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %s", key, err, def)
			return def
		}
		return d
	}

	return def
}

func boolEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid bool for %s: %v, using default %t", key, err, def)
			return def
		}
		return b
	}

	return def
}
