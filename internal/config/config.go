package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kerimovok/go-pkg-utils/config"
	"gopkg.in/yaml.v3"
)

// LocalStorageConfig holds local storage settings
type LocalStorageConfig struct {
	UploadDir  string `yaml:"upload_dir"`
	CreateDirs bool   `yaml:"create_dirs"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	BodyLimit int `yaml:"body_limit"`
}

// StorageConfig holds the complete storage configuration
type StorageConfig struct {
	Storage LocalStorageConfig `yaml:"storage"`
	Server  ServerConfig       `yaml:"server"`
}

// MainConfig holds the root configuration
type MainConfig struct {
	Storage StorageConfig `yaml:"storage"`
}

var (
	Config MainConfig
)

// LoadConfig loads the configuration: .env first, then config/storage.yaml.
// The UPLOAD_DIR environment variable, when set, overrides the yaml value.
func LoadConfig() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if config.GetEnv("GO_ENV") != "production" {
			log.Println("Warning: Failed to load .env file")
		}
	}

	// Read config file
	data, err := os.ReadFile("config/storage.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg MainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if dir := config.GetEnv("UPLOAD_DIR"); dir != "" {
		cfg.Storage.Storage.UploadDir = dir
	}

	// Store config globally
	Config = cfg

	log.Println("Storage configuration loaded successfully from config/storage.yaml")
	return nil
}

// GetConfig returns the current configuration
func GetConfig() MainConfig {
	return Config
}

func applyDefaults(cfg *MainConfig) {
	if cfg.Storage.Storage.UploadDir == "" {
		cfg.Storage.Storage.UploadDir = "./uploads"
	}
	if cfg.Storage.Server.BodyLimit == 0 {
		cfg.Storage.Server.BodyLimit = 100 * 1024 * 1024 // 100MB limit for file uploads
	}
}
