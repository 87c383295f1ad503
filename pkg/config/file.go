package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// GetPath returns the default configuration file path. It uses
// $XDG_CONFIG_HOME, then ~/.config, then the temp directory.
func GetPath() string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, "termicon", "config.yaml")
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", "termicon", "config.yaml")
	}

	tmpPath := filepath.Join(os.TempDir(), "termicon", "config.yaml")

	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("err", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpPath
}

// ReadFile reads a regular file.
func ReadFile(path string) ([]byte, error) {
	pathInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if pathInfo.IsDir() {
		return nil, fmt.Errorf("%s: path is a directory", path)
	}
	if !pathInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: unknown file state", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// WriteDefault writes the default configuration to path. An existing file is
// left alone unless force is set, in which case it is renamed to a backup
// first.
func WriteDefault(path string, force bool) error {
	exists := false

	pathInfo, err := os.Stat(path)
	if err == nil {
		switch {
		case pathInfo.Mode().IsRegular():
			exists = true
		case pathInfo.IsDir():
			return fmt.Errorf("%s: path is a directory", path)
		default:
			return fmt.Errorf("%s: unknown file state", path)
		}
	}

	if exists && !force {
		slog.Debug("config file already exists, skipping write", slog.String("path", path))

		return nil
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	if exists {
		backupPath := fmt.Sprintf("%s.%d.old", path, time.Now().UnixNano())
		slog.Info("backing up existing config", slog.String("path", backupPath))

		err = os.Rename(path, backupPath)
		if err != nil {
			return fmt.Errorf("back up existing config: %w", err)
		}
	}

	slog.Info("write default config", slog.String("path", path))

	err = os.WriteFile(path, defaultConfigYAML, 0o600)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
