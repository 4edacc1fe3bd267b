package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/aurelia/aurelia-sub054/pkg/config"
	"github.com/aurelia/aurelia-sub054/pkg/must"
	"github.com/aurelia/aurelia-sub054/pkg/observation"
	. "github.com/aurelia/aurelia-sub054/pkg/tt"
)

func withDefault(f func(*Config)) Config {
	cfg := Default()
	f(&cfg)
	return cfg
}

func TestParse(t *testing.T) {
	Test(t, Fn("Parse", func(s string) (Config, error) { return Parse([]byte(s)) }), Table{
		Args("").Rets(Default(), nil),
		Args("evaluation:\n  strict: true\n").Rets(
			withDefault(func(c *Config) { c.Evaluation.Strict = true }), nil),
		Args("dirtyCheck:\n  timeoutsPerCheck: 5\n  throw: true\n").Rets(
			withDefault(func(c *Config) {
				c.DirtyCheck.TimeoutsPerCheck = 5
				c.DirtyCheck.Throw = true
			}), nil),
		Args("platform:\n  tickInterval: 100ms\n").Rets(
			withDefault(func(c *Config) { c.Platform.TickInterval = 100 * time.Millisecond }), nil),
		Args("history:\n  path: /tmp/h.db\n").Rets(
			withDefault(func(c *Config) { c.History.Path = "/tmp/h.db" }), nil),

		Args("dirtyCheck:\n  timeoutsPerCheck: 0\n").Rets(Config{}, ErrorIs(ErrInvalid)),
		Args("platform:\n  tickInterval: -1s\n").Rets(Config{}, ErrorIs(ErrInvalid)),
		Args("evaluation: [").Rets(Config{}, AnyError),
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	if err != nil || cfg != Default() {
		t.Errorf("Load(missing) => (%v, %v), want (default, nil)", cfg, err)
	}

	path := filepath.Join(dir, "bindx.yaml")
	must.WriteFile(path, "dirtyCheck:\n  disabled: true\n")
	cfg, err = Load(path)
	if err != nil || !cfg.DirtyCheck.Disabled || cfg.DirtyCheck.TimeoutsPerCheck != 25 {
		t.Errorf("Load(%q) => (%v, %v)", path, cfg, err)
	}

	must.OK(os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	if _, err := Load(filepath.Join(dir, "sub")); err == nil {
		t.Errorf("Load(directory) => nil error")
	}
}

func TestConfig_DirtyCheckSettings(t *testing.T) {
	cfg := withDefault(func(c *Config) { c.DirtyCheck.Disabled = true })
	want := observation.DirtyCheckSettings{TimeoutsPerCheck: 25, Disabled: true}
	if got := cfg.DirtyCheckSettings(); got != want {
		t.Errorf("DirtyCheckSettings() => %v, want %v", got, want)
	}
}

func TestConfig_HistoryPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	Test(t, Fn("HistoryPath", func(p string) (string, error) {
		return withDefault(func(c *Config) { c.History.Path = p }).HistoryPath()
	}), Table{
		Args("/var/h.db").Rets("/var/h.db", nil),
		Args("~/h.db").Rets(filepath.Join(home, "h.db"), nil),
		Args("~other/h.db").Rets("~other/h.db", nil),
	})
}
