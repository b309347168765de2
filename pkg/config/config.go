package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const defaultEnvFile = ".env"

var (
	exportMu sync.Mutex
	exported = map[string]bool{}
)

// New fills T from the environment under prefix. An explicit envFile must
// exist; otherwise ./.env is read when present. Each file is exported once
// per process.
func New[T any](prefix, envFile string) (*T, error) {
	if path := strings.TrimSpace(envFile); path != "" {
		if err := exportOnce(path); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else if err := exportIfExists(defaultEnvFile); err != nil {
		return nil, fmt.Errorf("failed to load default env file: %w", err)
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, fmt.Errorf("process %s config: %w", displayPrefix(prefix), err)
	}

	return &conf, nil
}

func displayPrefix(prefix string) string {
	if prefix == "" {
		return "root"
	}
	return strings.ToLower(prefix)
}

func exportIfExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return exportOnce(path)
}

func exportOnce(path string) error {
	exportMu.Lock()
	defer exportMu.Unlock()

	if exported[path] {
		return nil
	}
	if err := exportEnvironment(path); err != nil {
		return err
	}
	exported[path] = true
	return nil
}

// exportEnvironment copies the file's keys into the process environment
// without overriding variables that are already set.
func exportEnvironment(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for k, val := range v.AllSettings() {
		key := strings.ToUpper(k)
		if _, ok := os.LookupEnv(key); ok {
			continue
		}
		if err := os.Setenv(key, fmt.Sprint(val)); err != nil {
			return err
		}
	}

	return nil
}
