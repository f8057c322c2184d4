package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"
	appName    = "studybuddy"
	envPrefix  = "STUDYBUDDY"
)

// ErrMissingAPIKey is returned by Validate when the selected provider needs a
// credential and none was configured.
var ErrMissingAPIKey = errors.New("provider api key is not set")

// Config holds the application's configuration
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Server   ServerConfig   `mapstructure:"server"`
	Quiz     QuizConfig     `mapstructure:"quiz"`
	History  HistoryConfig  `mapstructure:"history"`
	Log      LogConfig      `mapstructure:"log"`
}

// ProviderConfig selects and configures the AI provider.
type ProviderConfig struct {
	Name      string `mapstructure:"name"`
	Model     string `mapstructure:"model"`
	APIKey    string `mapstructure:"api_key"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	BaseURL   string `mapstructure:"base_url"`
	Proxy     string `mapstructure:"proxy"`
}

type ServerConfig struct {
	Port       int           `mapstructure:"port"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type QuizConfig struct {
	Questions        int  `mapstructure:"questions"`
	StrictValidation bool `mapstructure:"strict_validation"`
}

type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Dir returns the directory holding the config file and the request log.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", appName)
}

// New returns a viper instance with defaults, env bindings and the config
// file location applied. Callers may bind flags on it before calling Load.
func New(configFile string) *viper.Viper {
	v := viper.New()

	v.SetDefault("provider.name", "gemini")
	v.SetDefault("provider.model", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.api_key_env", "API_KEY")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.proxy", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.session_ttl", 30*time.Minute)
	v.SetDefault("quiz.questions", 5)
	v.SetDefault("quiz.strict_validation", true)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(Dir(), "history.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigType(configType)
	if configFile == "" {
		configFile = os.Getenv(envPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName(configName)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file (if any) into a Config and resolves the
// provider credential. It does not validate; see Validate.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Provider.Name = strings.ToLower(strings.TrimSpace(c.Provider.Name))
	c.Provider.APIKey = strings.TrimSpace(c.Provider.APIKey)
	if c.Provider.APIKey == "" {
		c.Provider.APIKey = lookupAPIKey(c.Provider.APIKeyEnv)
	}
	return c, nil
}

func lookupAPIKey(envName string) string {
	if envName != "" {
		if key := strings.TrimSpace(os.Getenv(envName)); key != "" {
			return key
		}
	}
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
}

// Validate reports configuration that must stop the process at startup.
func (c Config) Validate() error {
	switch c.Provider.Name {
	case "gemini":
		if c.Provider.APIKey == "" {
			return fmt.Errorf("%w: set %s or provider.api_key", ErrMissingAPIKey, c.Provider.APIKeyEnv)
		}
	case "ollama":
	default:
		return fmt.Errorf("unsupported AI provider: %q", c.Provider.Name)
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be positive, got %s", c.Server.SessionTTL)
	}
	if c.Quiz.Questions <= 0 {
		return fmt.Errorf("quiz.questions must be positive, got %d", c.Quiz.Questions)
	}
	return nil
}
