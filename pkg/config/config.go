// Package config loads the YAML configuration of bindx.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aurelia/aurelia-sub054/pkg/logutil"
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	"github.com/aurelia/aurelia-sub054/pkg/platform"
	"gopkg.in/yaml.v3"
)

var logger = logutil.GetLogger("[config] ")

// Config is the configuration. Keys missing from a configuration file keep
// their default values.
type Config struct {
	DirtyCheck DirtyCheck `yaml:"dirtyCheck"`
	Evaluation Evaluation `yaml:"evaluation"`
	Platform   Platform   `yaml:"platform"`
	History    History    `yaml:"history"`
}

// DirtyCheck configures dirty checking.
type DirtyCheck struct {
	TimeoutsPerCheck int  `yaml:"timeoutsPerCheck"`
	Disabled         bool `yaml:"disabled"`
	Throw            bool `yaml:"throw"`
}

// Evaluation configures expression evaluation.
type Evaluation struct {
	Strict bool `yaml:"strict"`
}

// Platform configures the real-time task queue.
type Platform struct {
	TickInterval time.Duration `yaml:"tickInterval"`
}

// History configures the history database of the interactive mode.
type History struct {
	Path string `yaml:"path"`
}

// ErrInvalid is wrapped by errors about values out of range.
var ErrInvalid = errors.New("invalid configuration")

// Default returns the default configuration.
func Default() Config {
	return Config{
		DirtyCheck: DirtyCheck{TimeoutsPerCheck: 25},
		Platform:   Platform{TickInterval: platform.DefaultTickInterval},
		History:    History{Path: "~/.local/state/bindx/history.db"},
	}
}

// Load reads the configuration file at path. A missing file is not an error
// and yields the default configuration.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Println("no configuration file at", path)
		return Default(), nil
	} else if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse parses a YAML configuration document.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that all values are in range.
func (c Config) Validate() error {
	if c.DirtyCheck.TimeoutsPerCheck <= 0 {
		return fmt.Errorf("%w: dirtyCheck.timeoutsPerCheck must be positive, got %d",
			ErrInvalid, c.DirtyCheck.TimeoutsPerCheck)
	}
	if c.Platform.TickInterval <= 0 {
		return fmt.Errorf("%w: platform.tickInterval must be positive, got %v",
			ErrInvalid, c.Platform.TickInterval)
	}
	return nil
}

// DirtyCheckSettings converts the dirty checking configuration.
func (c Config) DirtyCheckSettings() observation.DirtyCheckSettings {
	return observation.DirtyCheckSettings{
		TimeoutsPerCheck: c.DirtyCheck.TimeoutsPerCheck,
		Disabled:         c.DirtyCheck.Disabled,
		Throw:            c.DirtyCheck.Throw,
	}
}

// HistoryPath returns the history path with a leading "~/" expanded to the
// home directory.
func (c Config) HistoryPath() (string, error) {
	p := c.History.Path
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, p[1:]), nil
}
