// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	configPath     = pflag.String("config", ".", "Directory containing config.toml")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		fmt.Println("[WARNING]: No config.toml found, using defaults and environment variables")
	}

	return Validate()
}

// SetDefaults registers the default value of every key
func SetDefaults() {
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors", []string{"http://localhost:5173"})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("body.max_size", 1<<20)
}

// Validate checks the loaded values
func Validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 || v.GetInt("host.port") > 65535 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("db.dsn can't be empty")
	}

	if v.GetInt64("body.max_size") <= 0 {
		return errors.New("body.max_size must be bigger than 0")
	}

	return nil
}
