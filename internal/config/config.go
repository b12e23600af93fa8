package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type SupabaseConfig struct {
	URL     string `yaml:"url"`
	AnonKey string `yaml:"anon_key"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type GCSConfig struct {
	Bucket string `yaml:"bucket"`
}

type GatewayConfig struct {
	// Mode selects the backend wiring: "supabase" (REST) or "direct"
	// (Postgres tables + GCS blobs, auth stays on the remote provider).
	Mode     string         `yaml:"mode"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Postgres PostgresConfig `yaml:"postgres"`
	GCS      GCSConfig      `yaml:"gcs"`
}

type StorageConfig struct {
	Bucket string `yaml:"bucket"`
}

type DeviceConfig struct {
	StateDir string `yaml:"state_dir"`
}

type HTTPConfig struct {
	Timeout string `yaml:"timeout"`
}

type ConfigFile struct {
	App     AppConfig     `yaml:"app"`
	Gateway GatewayConfig `yaml:"gateway"`
	Storage StorageConfig `yaml:"storage"`
	Device  DeviceConfig  `yaml:"device"`
	HTTP    HTTPConfig    `yaml:"http"`
}

type Config struct {
	Port            string
	GinMode         string
	GatewayMode     string
	SupabaseURL     string
	SupabaseAnonKey string
	PostgresDSN     string
	GCSBucket       string
	StorageBucket   string
	DeviceStateDir  string
	HTTPTimeout     time.Duration
}

const (
	ModeSupabase = "supabase"
	ModeDirect   = "direct"
)

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	timeout := 30 * time.Second
	if file.HTTP.Timeout != "" {
		timeout, err = time.ParseDuration(file.HTTP.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid http timeout: %w", err)
		}
	}

	cfg := &Config{
		Port:            env("PORT", strconv.Itoa(file.App.Port)),
		GinMode:         env("GIN_MODE", file.App.GinMode),
		GatewayMode:     env("GATEWAY_MODE", file.Gateway.Mode),
		SupabaseURL:     env("SUPABASE_URL", file.Gateway.Supabase.URL),
		SupabaseAnonKey: env("SUPABASE_ANON_KEY", file.Gateway.Supabase.AnonKey),
		PostgresDSN:     env("POSTGRES_DSN", file.Gateway.Postgres.DSN),
		GCSBucket:       env("GCS_BUCKET", file.Gateway.GCS.Bucket),
		StorageBucket:   env("STORAGE_BUCKET", file.Storage.Bucket),
		DeviceStateDir:  env("DEVICE_STATE_DIR", file.Device.StateDir),
		HTTPTimeout:     timeout,
	}

	if cfg.GatewayMode == "" {
		cfg.GatewayMode = ModeSupabase
	}
	if cfg.StorageBucket == "" {
		cfg.StorageBucket = "property-images"
	}
	if cfg.DeviceStateDir == "" {
		cfg.DeviceStateDir = defaultStateDir()
	}

	switch cfg.GatewayMode {
	case ModeSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
			return nil, fmt.Errorf("supabase mode requires url and anon key")
		}
	case ModeDirect:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("direct mode requires a postgres dsn")
		}
		if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
			return nil, fmt.Errorf("direct mode still requires the auth provider url and anon key")
		}
	default:
		return nil, fmt.Errorf("unknown gateway mode %q", cfg.GatewayMode)
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var file ConfigFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &file, nil
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "househunter"
	}
	return ".househunter"
}
