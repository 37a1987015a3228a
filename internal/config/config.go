package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Store kinds.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// ErrUnknownStore is returned for a store kind other than file or sqlite.
var ErrUnknownStore = errors.New("unknown program store")

type Config struct {
	Store   StoreConfig  `toml:"store"`
	Program string       `toml:"program"`
	Import  ImportConfig `toml:"import"`
	Export  ExportConfig `toml:"export"`
	Robot   RobotConfig  `toml:"robot"`
}

type StoreConfig struct {
	Kind string `toml:"kind"`
	Path string `toml:"path"`
}

type ImportConfig struct {
	Format     string `toml:"format"`
	Separators string `toml:"separators"`
}

type ExportConfig struct {
	Format    string `toml:"format"`
	Precision int    `toml:"precision"`
}

// RobotConfig names the robot programs are taught for. With Creds set the
// CLI connects to a Viam machine and uses the arm named Arm.
type RobotConfig struct {
	Name       string `toml:"name"`
	JointCount int    `toml:"joint_count"`
	Creds      string `toml:"creds"`
	Arm        string `toml:"arm"`
}

// Load reads ~/.config/pointcsv/config.toml over the built-in defaults.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(home, filepath.Join(home, ".config", "pointcsv", "config.toml"))
}

// LoadFrom is Load with an explicit home directory and config path. A
// missing config file is not an error.
func LoadFrom(home, cfgPath string) (*Config, error) {
	cfg := &Config{
		Store: StoreConfig{
			Kind: StoreFile,
			Path: filepath.Join(home, ".config", "pointcsv", "programs"),
		},
		Program: "default",
		Import: ImportConfig{
			Format:     "coordinates",
			Separators: ",;",
		},
		Export: ExportConfig{
			Format:    "full_pose",
			Precision: 6,
		},
		Robot: RobotConfig{
			Arm: "arm",
		},
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if cfg.Store.Kind != StoreFile && cfg.Store.Kind != StoreSQLite {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Store.Kind)
	}

	// expand ~ in paths
	cfg.Store.Path = expandHome(cfg.Store.Path, home)
	cfg.Robot.Creds = expandHome(cfg.Robot.Creds, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
