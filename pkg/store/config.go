package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend names a persistence implementation.
type Backend string

const (
	BackendDiskv  Backend = "diskv"
	BackendSQLite Backend = "sqlite"
)

// Config is the resolved planner configuration.
type Config interface {
	BasePath() string
	Backend() Backend
	Language() string
	LogLevel() string
	LogEncoding() string
}

// LoadConfig reads .timebox.yaml from $TIMEBOX_CONFIG_PATH or the working
// directory, layered under TIMEBOX_* environment variables. A .env file in
// the working directory is applied first.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("store: read .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("path", "~/.timebox")
	v.SetDefault("backend", string(BackendDiskv))
	v.SetDefault("language", "en")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.encoding", "console")
	v.SetConfigName(".timebox") // .yaml is implicit
	v.SetEnvPrefix("TIMEBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("TIMEBOX_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}
	return configFrom(v)
}

func configFrom(v *viper.Viper) (Config, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	backend := Backend(strings.ToLower(strings.TrimSpace(v.GetString("backend"))))
	switch backend {
	case BackendDiskv, BackendSQLite:
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
	return &fileConfig{
		Path:     path,
		Store:    backend,
		Lang:     v.GetString("language"),
		Level:    v.GetString("log.level"),
		Encoding: v.GetString("log.encoding"),
	}, nil
}

type fileConfig struct {
	Path     string  `json:"path"`
	Store    Backend `json:"backend"`
	Lang     string  `json:"language"`
	Level    string  `json:"logLevel"`
	Encoding string  `json:"logEncoding"`
}

func (f *fileConfig) BasePath() string    { return f.Path }
func (f *fileConfig) Backend() Backend    { return f.Store }
func (f *fileConfig) Language() string    { return f.Lang }
func (f *fileConfig) LogLevel() string    { return f.Level }
func (f *fileConfig) LogEncoding() string { return f.Encoding }
