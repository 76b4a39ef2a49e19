package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backend selects how documents are persisted
type Backend string

const (
	BackendJSON Backend = "json"
	BackendBolt Backend = "bolt"
)

// Config holds all application configuration
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	AI      AIConfig      `mapstructure:"ai"`
	Player  PlayerConfig  `mapstructure:"player"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig holds storage locations
type DataConfig struct {
	Dir        string  `mapstructure:"dir"`
	UploadsDir string  `mapstructure:"uploads_dir"`
	Backend    Backend `mapstructure:"backend"` // "json" or "bolt"
}

// AIConfig holds summary provider settings
type AIConfig struct {
	Provider          string        `mapstructure:"provider"` // "gemini" or "groq"
	GoogleAPIKey      string        `mapstructure:"google_api_key"`
	GroqAPIKey        string        `mapstructure:"groq_api_key"`
	GeminiModel       string        `mapstructure:"gemini_model"`
	GroqModel         string        `mapstructure:"groq_model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	MaxRetries        int           `mapstructure:"max_retries"`
}

// PlayerConfig holds media player configuration
type PlayerConfig struct {
	Command   string   `mapstructure:"command"`
	Args      []string `mapstructure:"args"`
	StartFlag string   `mapstructure:"start_flag"` // e.g., "--start=" or "--start-time="
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultSort string `mapstructure:"default_sort"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dataDir := defaultDataPath()
	return &Config{
		Data: DataConfig{
			Dir:        dataDir,
			UploadsDir: filepath.Join(dataDir, "uploads"),
			Backend:    BackendJSON,
		},
		AI: AIConfig{
			Provider:          "gemini",
			GeminiModel:       "gemini-1.5-flash",
			GroqModel:         "llama-3.1-8b-instant",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 1,
			MaxRetries:        2,
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			DefaultSort: "relevance",
		},
		Logging: LoggingConfig{
			File:       filepath.Join(dataDir, "vista.log"),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vista")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "vista")
	}
}

// defaultConfigPath returns the default config file directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vista")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "vista")
	}
}

// LoadConfig loads configuration from .env, the config file and the environment.
// configFile overrides the search path when set.
func LoadConfig(configFile string) (*Config, error) {
	// A missing .env is fine; variables may come from the real environment
	_ = godotenv.Load()

	return load(viper.New(), configFile)
}

func load(v *viper.Viper, configFile string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. VISTA_DATA_DIR
	v.SetEnvPrefix("VISTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names shared with other tools
	_ = v.BindEnv("ai.google_api_key", "VISTA_AI_GOOGLE_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("ai.groq_api_key", "VISTA_AI_GROQ_API_KEY", "GROQ_API_KEY")
	_ = v.BindEnv("ai.provider", "VISTA_AI_PROVIDER", "AI_PROVIDER")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Data.Dir = expandHome(cfg.Data.Dir)
	cfg.Data.UploadsDir = expandHome(cfg.Data.UploadsDir)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data.dir", cfg.Data.Dir)
	v.SetDefault("data.uploads_dir", cfg.Data.UploadsDir)
	v.SetDefault("data.backend", string(cfg.Data.Backend))

	v.SetDefault("ai.provider", cfg.AI.Provider)
	v.SetDefault("ai.google_api_key", "")
	v.SetDefault("ai.groq_api_key", "")
	v.SetDefault("ai.gemini_model", cfg.AI.GeminiModel)
	v.SetDefault("ai.groq_model", cfg.AI.GroqModel)
	v.SetDefault("ai.timeout", cfg.AI.Timeout)
	v.SetDefault("ai.requests_per_second", cfg.AI.RequestsPerSecond)
	v.SetDefault("ai.max_retries", cfg.AI.MaxRetries)

	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("player.start_flag", cfg.Player.StartFlag)

	v.SetDefault("ui.default_sort", cfg.UI.DefaultSort)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
}

// Validate checks values viper can't type-check
func (c *Config) Validate() error {
	switch c.Data.Backend {
	case BackendJSON, BackendBolt:
	default:
		return fmt.Errorf("invalid data.backend %q: want %q or %q", c.Data.Backend, BackendJSON, BackendBolt)
	}
	if c.Data.Dir == "" {
		return errors.New("data.dir must not be empty")
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
