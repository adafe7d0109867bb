package config

import (
	"errors"
	"fmt"
	"os"

	"secmatrix/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultProjectName = "Geotermia con CNN"

type Config struct {
	ServerPort string
	DataDir    string

	// editor auth is enabled only when both are set
	EditorUsername     string
	EditorPasswordHash string
	SessionSecret      string

	DBDSN       string // empty disables the audit trail
	ProjectName string

	LogLevel  string
	LogFormat string

	Sources map[models.SourceName]models.Source
}

// fileOverrides is the optional YAML file pointed to by SECMATRIX_CONFIG.
type fileOverrides struct {
	DataDir     string            `yaml:"data_dir"`
	ProjectName string            `yaml:"project_name"`
	Files       map[string]string `yaml:"files"`
}

func (c *Config) EditorAuthEnabled() bool {
	return c.EditorUsername != "" && c.EditorPasswordHash != ""
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:         os.Getenv("SERVER_PORT"),
		DataDir:            os.Getenv("DATA_DIR"),
		EditorUsername:     os.Getenv("EDITOR_USERNAME"),
		EditorPasswordHash: os.Getenv("EDITOR_PASSWORD_HASH"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		DBDSN:              os.Getenv("DB_DSN"),
		ProjectName:        os.Getenv("PROJECT_NAME"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		LogFormat:          os.Getenv("LOG_FORMAT"),
		Sources:            models.DefaultSources(),
	}

	if path := os.Getenv("SECMATRIX_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if cfg.ProjectName == "" {
		cfg.ProjectName = DefaultProjectName
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.EditorAuthEnabled() && cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is not set")
	}

	return cfg, nil
}

// applyFile merges YAML overrides; environment variables already set win.
func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var ov fileOverrides
	if err := yaml.Unmarshal(raw, &ov); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.DataDir == "" {
		c.DataDir = ov.DataDir
	}
	if c.ProjectName == "" {
		c.ProjectName = ov.ProjectName
	}
	for name, file := range ov.Files {
		sn, ok := models.ParseSourceName(name)
		if !ok {
			return fmt.Errorf("config %s: unknown source %q", path, name)
		}
		src := c.Sources[sn]
		src.File = file
		c.Sources[sn] = src
	}
	return nil
}
