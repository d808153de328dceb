package util

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings and flags.
type Config struct {
	// ContentRoot is a directory or an http(s) base URL the document and
	// every manifest are resolved against.
	ContentRoot string `env:"VERSECRAFT_ROOT" envDefault:"web"`
	Document    string `env:"VERSECRAFT_DOCUMENT" envDefault:"index.html"`
	// StoryScreensManifest is the story screens manifest.
	StoryScreensManifest string `env:"VERSECRAFT_SCREENS_MANIFEST" envDefault:"./content/story_screens_manifest.json"`
	LibraryManifest      string `env:"VERSECRAFT_LIBRARY_MANIFEST" envDefault:"./content/library_manifest.json"`
	PackRoot             string `env:"VERSECRAFT_PACK_ROOT" envDefault:"./content/packs"`

	Backend    string `env:"VERSECRAFT_BACKEND" envDefault:"sqlite"` // sqlite|postgres|memory
	SQLitePath string `env:"VERSECRAFT_SQLITE_PATH" envDefault:".versecraft/local.db"`
	DSN        string `env:"DATABASE_URL"`
	Profile    string `env:"VERSECRAFT_PROFILE" envDefault:"default"`

	DefaultScreen string `env:"VERSECRAFT_DEFAULT_SCREEN" envDefault:"splash"`
	// Fragment is the deep link the session starts on, like #launcher.
	Fragment string `env:"VERSECRAFT_SCREEN"`
	Theme    string `env:"VERSECRAFT_THEME" envDefault:"catppuccin"`
	Language string `env:"VERSECRAFT_LANG" envDefault:"en"`
	LogFile  string `env:"VERSECRAFT_LOG"`
	// Debug logs rejected navigation targets.
	Debug bool `env:"VERSECRAFT_DEBUG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// DefaultConfig is the environment-derived configuration.
func DefaultConfig() (Config, error) {
	var cfg Config
	err := ParseEnv(&cfg)
	return cfg, err
}
