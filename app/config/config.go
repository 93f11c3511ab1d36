package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

type Config struct {
	Log      Log      `yaml:"log"`
	HTTP     HTTP     `yaml:"http"`
	MCP      MCP      `yaml:"mcp"`
	Backend  Backend  `yaml:"backend"`
	OpenAI   OpenAI   `yaml:"openai"`
	Supabase Supabase `yaml:"supabase"`
	Redis    Redis    `yaml:"redis"`
	Session  Session  `yaml:"session"`
}

type HTTP struct {
	// Listen address of the API server
	Addr string `yaml:"addr" example:":8080" validate:"required"`
	// Allowed CORS origins, comma separated
	CORSOrigins string `yaml:"cors_origins" example:"http://localhost:3000"`
}

type MCP struct {
	// Serve the assistant as an MCP tool over stdio
	Enabled bool `yaml:"enabled" example:"false"`
}

type Backend struct {
	// Base url of the remote travel backend, empty disables it
	URL string `yaml:"url" example:"http://localhost:8000" validate:"omitempty,url"`
	// Request timeout
	Timeout time.Duration `yaml:"timeout" example:"10s"`
}

type OpenAI struct {
	// OpenAI base url
	BaseURL string `yaml:"base_url" example:"https://api.openai.com/v1" validate:"omitempty,url"`
	// OpenAI token, empty disables the hosted model
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// OpenAI model
	Model string `yaml:"model" example:"gpt-3.5-turbo" validate:"required"`
	// Max completion tokens
	MaxTokens int `yaml:"max_tokens" example:"800" validate:"gte=1"`
	// Sampling temperature
	Temperature float64 `yaml:"temperature" example:"0.7" validate:"gte=0,lte=2"`
	// Request timeout
	Timeout time.Duration `yaml:"timeout" example:"30s"`
}

type Supabase struct {
	// Supabase project url, empty disables it
	URL string `yaml:"url" example:"https://abcdefgh.supabase.co" validate:"omitempty,url"`
	// Anon or service role key
	Key string `yaml:"key" validate:"required_with=URL"`
	// Request timeout
	Timeout time.Duration `yaml:"timeout" example:"10s"`
}

type Redis struct {
	// Redis url for the catalog cache, empty disables it
	URL string `yaml:"url" example:"redis://localhost:6379/0"`
	// Catalog snapshot TTL
	TTL time.Duration `yaml:"ttl" example:"5m"`
}

type Session struct {
	// Sessions idle longer than this are dropped
	IdleTimeout time.Duration `yaml:"idle_timeout" example:"30m"`
	// Cleanup interval
	CleanupInterval time.Duration `yaml:"cleanup_interval" example:"30s"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890" validate:"required_with=Token"`
}

// env holds the variable names used by existing deployments
type env struct {
	HTTPAddr      string `envconfig:"HTTP_ADDR"`
	BackendURL    string `envconfig:"FASTAPI_URL"`
	OpenAIToken   string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL"`
	SupabaseURL   string `envconfig:"SUPABASE_URL"`
	SupabaseKey   string `envconfig:"SUPABASE_ANON_KEY"`
	RedisURL      string `envconfig:"REDIS_URL"`
}

const defaultTemperature = 0.7

func Load() (*Config, error) {
	return LoadFile(DefaultPath)
}

func LoadFile(path string) (*Config, error) {
	// seeded before parsing: temperature 0 is a valid setting
	result := Config{OpenAI: OpenAI{Temperature: defaultTemperature}}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, oops.Errorf("failed to read config file: %w", err)
	default:
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err = applyEnv(&result); err != nil {
		return nil, err
	}

	setDefaults(&result)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func applyEnv(cfg *Config) error {
	_ = godotenv.Load()

	var e env
	if err := envconfig.Process("", &e); err != nil {
		return oops.Errorf("failed to read environment: %w", err)
	}

	override := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}

	override(&cfg.HTTP.Addr, e.HTTPAddr)
	override(&cfg.Backend.URL, e.BackendURL)
	override(&cfg.OpenAI.Token, e.OpenAIToken)
	override(&cfg.OpenAI.BaseURL, e.OpenAIBaseURL)
	override(&cfg.OpenAI.Model, e.OpenAIModel)
	override(&cfg.Supabase.URL, e.SupabaseURL)
	override(&cfg.Supabase.Key, e.SupabaseKey)
	override(&cfg.Redis.URL, e.RedisURL)

	return nil
}

func setDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.CORSOrigins == "" {
		cfg.HTTP.CORSOrigins = "http://localhost:3000"
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 10 * time.Second
	}
	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-3.5-turbo"
	}
	if cfg.OpenAI.MaxTokens == 0 {
		cfg.OpenAI.MaxTokens = 800
	}
	if cfg.OpenAI.Timeout == 0 {
		cfg.OpenAI.Timeout = 30 * time.Second
	}
	if cfg.Supabase.Timeout == 0 {
		cfg.Supabase.Timeout = 10 * time.Second
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 5 * time.Minute
	}
	if cfg.Session.IdleTimeout == 0 {
		cfg.Session.IdleTimeout = 30 * time.Minute
	}
	if cfg.Session.CleanupInterval == 0 {
		cfg.Session.CleanupInterval = 30 * time.Second
	}
}
