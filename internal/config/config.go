package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	App AppConfig `toml:"app"`
	API APIConfig `toml:"api"`
	Log LogConfig `toml:"log"`
}

type AppConfig struct {
	Name string `toml:"name"`
	Env  string `toml:"env"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Prefix  string `toml:"prefix"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func Load() (*Config, error) {
	return LoadFile(getEnv("CONFIG_FILE", "configs/config.toml"))
}

// LoadFile reads defaults, then the TOML file at path if present, then the environment.
func LoadFile(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env file failed: %w", err)
	}

	cfg := defaultConfig()
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if _, err := toml.DecodeFile(configPath, cfg); err != nil {
				return nil, fmt.Errorf("decode config file failed: %w", err)
			}
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

// APIRoot joins base URL and prefix, e.g. http://127.0.0.1:8000/api/v1.
func (c *Config) APIRoot() string {
	base := strings.TrimRight(c.API.BaseURL, "/")
	prefix := strings.Trim(c.API.Prefix, "/")
	if prefix == "" {
		return base
	}
	return base + "/" + prefix
}

func (c *Config) IsProd() bool {
	return c.App.Env == "prod"
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name: "ragconsole",
			Env:  "dev",
		},
		API: APIConfig{
			BaseURL: "http://127.0.0.1:8000",
			Prefix:  "/api/v1",
		},
		Log: LogConfig{
			Level: "info",
			File:  "ragconsole.log",
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.API.BaseURL = getEnv("API_BASE_URL", cfg.API.BaseURL)
	cfg.API.Prefix = getEnv("API_PREFIX", cfg.API.Prefix)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
