// Package config loads player settings from the YAML config file, an
// optional .env file and PERIODICA_* environment variables, in that order
// of increasing precedence. CLI flags are applied on top by cmd.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/periodica/internal/clues"
	"github.com/abhisek/periodica/internal/game"
)

// EnvPrefix prefixes every override variable.
const EnvPrefix = "PERIODICA_"

// Config is the merged player configuration.
type Config struct {
	// Difficulty preselects a tier on the difficulty screen. Empty means
	// the first tier.
	Difficulty string `yaml:"difficulty"`
	Muted      bool   `yaml:"muted"`

	// ClueDelay is the pause before a room's clues appear.
	ClueDelay time.Duration `yaml:"clue_delay"`

	LogFile string `yaml:"log_file"`

	// Journal is the SQLite path of the event journal. Empty keeps the
	// journal in memory.
	Journal string `yaml:"journal"`

	// MetricsAddr enables the /metrics listener when set.
	MetricsAddr string `yaml:"metrics_addr"`

	// Debrief enables the LLM-written victory report.
	Debrief bool `yaml:"debrief"`

	LLM LLM `yaml:"llm"`
}

// LLM selects the provider used for the debrief.
type LLM struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{ClueDelay: clues.DefaultDelay}
}

// DefaultPath returns $XDG_CONFIG_HOME/periodica/config.yaml, falling back
// to ~/.config.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "periodica", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "periodica.yaml")
	}
	return filepath.Join(home, ".config", "periodica", "config.yaml")
}

// Load reads path (missing is fine), loads .env from the working
// directory if present, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return cfg, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"DIFFICULTY":   &c.Difficulty,
		"LOG_FILE":     &c.LogFile,
		"JOURNAL":      &c.Journal,
		"METRICS_ADDR": &c.MetricsAddr,
		"LLM_PROVIDER": &c.LLM.Provider,
		"LLM_MODEL":    &c.LLM.Model,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	flags := map[string]*bool{
		"MUTED":   &c.Muted,
		"DEBRIEF": &c.Debrief,
	}
	for key, dst := range flags {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
	}

	if v := os.Getenv(EnvPrefix + "CLUE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sCLUE_DELAY: %w", EnvPrefix, err)
		}
		c.ClueDelay = d
	}
	return nil
}

// Validate rejects unknown difficulties and negative delays.
func (c Config) Validate() error {
	if c.Difficulty != "" {
		if _, ok := game.ParseDifficulty(c.Difficulty); !ok {
			return fmt.Errorf("unknown difficulty %q", c.Difficulty)
		}
	}
	if c.ClueDelay < 0 {
		return fmt.Errorf("clue_delay must not be negative, got %s", c.ClueDelay)
	}
	return nil
}

// StartDifficulty returns the preselected tier, Easy when unset.
func (c Config) StartDifficulty() game.Difficulty {
	d, _ := game.ParseDifficulty(c.Difficulty)
	return d
}
