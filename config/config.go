package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const placeholderAccessToken = "YOUR_LINE_CHANNEL_ACCESS_TOKEN"
const placeholderChannelSecret = "YOUR_LINE_CHANNEL_SECRET"

const DefaultTranslatorEndpoint = "https://api.cognitive.microsofttranslator.com"
const DefaultLineAPIEndpoint = "https://api.line.me"

type Configuration struct {
	ApiPort  string `json:"api_port" env:"PORT"`
	LogPath  string `json:"log_path" env:"LOG_PATH"`
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`

	Line struct {
		ChannelAccessToken string `json:"channel_access_token" env:"CHANNEL_ACCESS_TOKEN"`
		ChannelSecret      string `json:"channel_secret" env:"CHANNEL_SECRET"`
		APIEndpoint        string `json:"api_endpoint" env:"LINE_API_ENDPOINT"`
	} `json:"line"`

	Translator struct {
		APIKey   string `json:"api_key" env:"API_KEY"`
		Endpoint string `json:"endpoint" env:"ENDPOINT"`
		Region   string `json:"region" env:"REGION"`
	} `json:"translator"`

	Workers struct {
		Size               int `json:"size" env:"WORKER_COUNT"`
		QueueSize          int `json:"queue_size" env:"WORKER_QUEUE_SIZE"`
		TaskTimeoutSeconds int `json:"task_timeout_seconds" env:"TASK_TIMEOUT_SECONDS"`
	} `json:"workers"`

	HTTPTimeoutSeconds int `json:"http_timeout_seconds" env:"HTTP_TIMEOUT_SECONDS"`
}

// Get builds the configuration once at startup. Values come from the optional
// JSON file at path, then .env, then the process environment; anything still
// empty falls back to a default. Missing credentials only produce a warning so
// the server starts with placeholders.
func Get(path string) (Configuration, error) {
	var c Configuration

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return c, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &c); err != nil {
				return c, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file loaded, using process environment")
	}

	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse environment: %w", err)
	}

	applyDefaults(&c)
	return c, nil
}

func applyDefaults(c *Configuration) {
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Line.APIEndpoint == "" {
		c.Line.APIEndpoint = DefaultLineAPIEndpoint
	}
	if c.Line.ChannelAccessToken == "" {
		log.Warn().Msg("CHANNEL_ACCESS_TOKEN not set, replies will be rejected")
		c.Line.ChannelAccessToken = placeholderAccessToken
	}
	if c.Line.ChannelSecret == "" {
		log.Warn().Msg("CHANNEL_SECRET not set, every webhook call will fail verification")
		c.Line.ChannelSecret = placeholderChannelSecret
	}
	if c.Translator.Endpoint == "" {
		c.Translator.Endpoint = DefaultTranslatorEndpoint
	}
	if c.Translator.APIKey == "" {
		log.Warn().Msg("API_KEY not set, translations will fail")
	}
	if c.Workers.Size <= 0 {
		c.Workers.Size = 8
	}
	if c.Workers.QueueSize <= 0 {
		c.Workers.QueueSize = 100
	}
	if c.Workers.TaskTimeoutSeconds <= 0 {
		c.Workers.TaskTimeoutSeconds = 25
	}
	if c.HTTPTimeoutSeconds <= 0 {
		c.HTTPTimeoutSeconds = 20
	}
}

func (c Configuration) TaskTimeout() time.Duration {
	return time.Duration(c.Workers.TaskTimeoutSeconds) * time.Second
}

func (c Configuration) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
