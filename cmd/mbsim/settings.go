package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	settingsName = "mbsim"
	settingsType = "yaml"
	envPrefix    = "MBSIM"

	keyDataDir  = "data_dir"
	keyBackend  = "backend"
	keyLogLevel = "log_level"
	keyTheme    = "theme"

	defaultDataDir  = ".mbsim"
	defaultBackend  = "file"
	defaultLogLevel = "warn"
	defaultTheme    = "cyberpunk"
)

type settings struct {
	DataDir  string
	Backend  string
	LogLevel slog.Level
	Theme    string
}

// loadSettings merges, lowest first: defaults, mbsim.yaml in the working
// directory (or --settings), MBSIM_* environment variables, and flags that
// were set explicitly.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	v := viper.New()
	v.SetDefault(keyDataDir, defaultDataDir)
	v.SetDefault(keyBackend, defaultBackend)
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyTheme, defaultTheme)

	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
	} else {
		v.SetConfigName(settingsName)
		v.SetConfigType(settingsType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := cmd.Flags()
	for key, flag := range map[string]string{
		keyDataDir: "data",
		keyBackend: "backend",
		keyTheme:   "theme",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}
	if verbose {
		v.Set(keyLogLevel, "debug")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(keyLogLevel))); err != nil {
		return nil, fmt.Errorf("%s: %w", keyLogLevel, err)
	}

	return &settings{
		DataDir:  v.GetString(keyDataDir),
		Backend:  v.GetString(keyBackend),
		LogLevel: level,
		Theme:    v.GetString(keyTheme),
	}, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
