package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads settings from path, layered as defaults, then the file,
// then REDLINE_* environment variables. The format follows the file
// extension: .toml, or .yaml/.yml. A missing file is not an error; the
// defaults and environment still apply. On any error the returned
// Config is usable (defaults plus environment).
func Load(path string) (Config, error) {
	cfg := Default()
	err := loadFile(path, &cfg)
	if err != nil {
		cfg = Default()
	}
	applyEnv(&cfg)
	return cfg, err
}

func loadFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

// envOverrides maps environment variables onto settings. Set variables
// always win, including when set to the empty string.
var envOverrides = map[string]func(*Config, string){
	"REDLINE_LOG_LEVEL":      func(c *Config, v string) { c.Logging.Level = v },
	"REDLINE_ORIGINAL_CLASS": func(c *Config, v string) { c.Review.OriginalClass = v },
	"REDLINE_IMPROVED_CLASS": func(c *Config, v string) { c.Review.ImprovedClass = v },
	"REDLINE_MARK_CLASS":     func(c *Config, v string) { c.Annotate.MarkClass = v },
	"REDLINE_NOTE_CLASS":     func(c *Config, v string) { c.Annotate.NoteClass = v },
	"REDLINE_POLICY":         func(c *Config, v string) { c.Script.Policy = v },
}

func applyEnv(cfg *Config) {
	for env, set := range envOverrides {
		if v, ok := os.LookupEnv(env); ok {
			set(cfg, v)
		}
	}
}
