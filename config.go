package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// TmuxWindow is one entry in the session window plan. A window with an
// empty Command opens a plain shell.
type TmuxWindow struct {
	Name    string `toml:"name"`
	Command string `toml:"command,omitempty"`
}

type Config struct {
	Windows []TmuxWindow `toml:"windows"`
}

const defaultAgentCommand = "claude"

func defaultWindows() []TmuxWindow {
	return []TmuxWindow{
		{Name: "editor"},
		{Name: "agent", Command: defaultAgentCommand},
		{Name: "shell"},
	}
}

func defaultConfig() Config {
	return Config{Windows: defaultWindows()}
}

// LoadConfig reads the window plan, writing the default plan first if no
// config file exists yet.
func LoadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}
	exists, err := ConfigExists()
	if err != nil {
		return Config{}, err
	}
	if !exists {
		cfg := defaultConfig()
		if err := SaveConfig(cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	return LoadConfigFromPath(path)
}

func LoadConfigFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	for i := range cfg.Windows {
		cfg.Windows[i].Name = strings.TrimSpace(cfg.Windows[i].Name)
		cfg.Windows[i].Command = strings.TrimSpace(cfg.Windows[i].Command)
	}
	return cfg, nil
}

func ConfigExists() (bool, error) {
	path, err := configPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func SaveConfig(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return SaveConfigToPath(cfg, path)
}

func SaveConfigToPath(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func configPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "lfg", "config.toml"), nil
}
