package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIBase               string        `mapstructure:"api_base"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	UserAgent             string        `mapstructure:"user_agent"`

	ReportersFile string `mapstructure:"reporters_file"`

	GateType          string        `mapstructure:"gate_type"`
	GatePath          string        `mapstructure:"gate_path"`
	GateWindowSeconds int64         `mapstructure:"gate_window_seconds"`
	GateWindow        time.Duration `mapstructure:"-"`
	GateMaxRequests   int           `mapstructure:"gate_max_requests"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "searchfront")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base", "http://localhost:3000/beta/api/")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("user_agent", "searchfront/1.0")
	v.SetDefault("reporters_file", "./configs/reporters.yaml")
	v.SetDefault("gate_type", "none")
	v.SetDefault("gate_path", "./data/gate.db")
	v.SetDefault("gate_window_seconds", 60)
	v.SetDefault("gate_max_requests", 30)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	cfg.GateType = strings.ToLower(strings.TrimSpace(cfg.GateType))
	switch cfg.GateType {
	case "", "none":
		cfg.GateType = "none"
	case "bbolt":
		if cfg.GateWindowSeconds <= 0 {
			return nil, fmt.Errorf("invalid gate_window_seconds (must be positive seconds)")
		}
		if cfg.GateMaxRequests <= 0 {
			return nil, fmt.Errorf("invalid gate_max_requests (must be positive)")
		}
		if strings.TrimSpace(cfg.GatePath) == "" {
			return nil, fmt.Errorf("gate_path is required for bbolt gate")
		}
	default:
		return nil, fmt.Errorf("unsupported gate_type %q", cfg.GateType)
	}
	cfg.GateWindow = time.Duration(cfg.GateWindowSeconds) * time.Second

	return &cfg, nil
}
