// Package config holds the host-tunable settings: decoration class
// names, log level, and the optional review policy script. Settings
// load from a TOML or YAML file merged over built-in defaults, with
// REDLINE_* environment variables taking final precedence, and can be
// reloaded live through a Watcher.
package config

// Config is the full setting tree.
type Config struct {
	Review   ReviewConfig   `toml:"review" yaml:"review"`
	Annotate AnnotateConfig `toml:"annotate" yaml:"annotate"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Script   ScriptConfig   `toml:"script" yaml:"script"`
}

// ReviewConfig sets the default classes review decorations carry when a
// request does not name its own.
type ReviewConfig struct {
	OriginalClass string `toml:"original_class" yaml:"original_class"`
	ImprovedClass string `toml:"improved_class" yaml:"improved_class"`
}

// AnnotateConfig sets the default classes for marks and notes.
type AnnotateConfig struct {
	MarkClass string `toml:"mark_class" yaml:"mark_class"`
	NoteClass string `toml:"note_class" yaml:"note_class"`
}

// LoggingConfig controls the session logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
}

// ScriptConfig points at the optional Lua review policy.
type ScriptConfig struct {
	// Policy is the path of a Lua file defining review hooks. Empty
	// disables scripting.
	Policy string `toml:"policy" yaml:"policy"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Review: ReviewConfig{
			OriginalClass: "review-original",
			ImprovedClass: "review-improved",
		},
		Annotate: AnnotateConfig{
			MarkClass: "annotate-mark",
			NoteClass: "annotate-note",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
