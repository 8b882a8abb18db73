package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Storage
	DataDir      string
	GraphFile    string // durable triple artifact
	IntakeDBFile string // sqlite demographics side-table

	// Analytics
	TargetedDomain string // domain compared against all others

	// Neo4j mirror (optional)
	Neo4jExportEnabled bool
	Neo4jURI           string
	Neo4jUser          string
	Neo4jPassword      string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "data")

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		DataDir:            dataDir,
		GraphFile:          getEnv("GRAPH_FILE", filepath.Join(dataDir, "intervention_graph.nt")),
		IntakeDBFile:       getEnv("INTAKE_DB_FILE", filepath.Join(dataDir, "intake.db")),
		TargetedDomain:     getEnv("TARGETED_DOMAIN", "employment"),
		Neo4jExportEnabled: getEnvBool("NEO4J_EXPORT_ENABLED", false),
		Neo4jURI:           getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:          getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:      getEnv("NEO4J_PASSWORD", "password"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.GraphFile == "" {
		return fmt.Errorf("GRAPH_FILE is required")
	}
	if c.IntakeDBFile == "" {
		return fmt.Errorf("INTAKE_DB_FILE is required")
	}
	if c.TargetedDomain == "" {
		return fmt.Errorf("TARGETED_DOMAIN is required")
	}
	if c.Neo4jExportEnabled {
		if c.Neo4jURI == "" {
			return fmt.Errorf("NEO4J_URI is required when export is enabled")
		}
		if c.Neo4jUser == "" {
			return fmt.Errorf("NEO4J_USER is required when export is enabled")
		}
		if c.Neo4jPassword == "" {
			return fmt.Errorf("NEO4J_PASSWORD is required when export is enabled")
		}
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}
