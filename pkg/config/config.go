// Package config loads eduquest settings from a yaml file, a .env file and
// EDUQUEST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	ut "github.com/go-playground/universal-translator"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultDBPath   = "eduquest_gui.db"
	DefaultNotesDir = "eduquest_notes"

	envPrefix = "EDUQUEST"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Notes    NotesConfig    `mapstructure:"notes"`
	Log      LogConfig      `mapstructure:"log"`
	Output   string         `mapstructure:"output" validate:"oneof=text json yaml"`
}

type DatabaseConfig struct {
	Path        string `mapstructure:"path" validate:"required"`
	WAL         bool   `mapstructure:"wal"`
	Synchronous string `mapstructure:"synchronous" validate:"omitempty,oneof=OFF NORMAL FULL EXTRA"`
}

type NotesConfig struct {
	Directory string `mapstructure:"directory" validate:"required,dirlike"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

type Loader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
	envFile    string
}

// NewLoader prepares a loader. An empty configFile searches for
// eduquest.yaml in the working directory and $HOME/.config/eduquest.
func NewLoader(configFile string) (*Loader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("eduquest")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/eduquest")
	}

	return &Loader{
		viper:      v,
		validator:  validate,
		translator: trans,
		envFile:    ".env",
	}, nil
}

// WithEnvFile points the loader at a different .env file.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

func (l *Loader) Load() (*Config, error) {
	v := l.viper

	// Values already in the environment win over the .env file.
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file '%s': %w", l.envFile, err)
		}
	}

	v.SetDefault("database.path", DefaultDBPath)
	v.SetDefault("database.wal", false)
	v.SetDefault("database.synchronous", "")
	v.SetDefault("notes.directory", DefaultNotesDir)
	v.SetDefault("log.level", "warn")
	v.SetDefault("output", "text")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Database.Synchronous = strings.ToUpper(cfg.Database.Synchronous)

	if err := l.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(l.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// Set overrides a key after construction, used for command-line flags.
func (l *Loader) Set(key string, value any) {
	l.viper.Set(key, value)
}
