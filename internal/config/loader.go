package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/match3"
)

const configFile = "match3.yaml"

// Board limits accepted by Validate.
const (
	MinBoardSize = 3
	MaxBoardSize = 32
	MaxCellSize  = 4
)

// LoadMatch3 loads the match-3 configuration.
// Search order: customPath -> ~/.match3/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
//
// Values missing from a file keep their defaults. A custom path that cannot
// be read, parsed or validated is an error; the other locations are skipped
// when unusable.
func LoadMatch3(customPath string) (Match3Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultMatch3Config(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultMatch3Config(), fmt.Errorf("failed to load config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the defaults and validates the result.
func parse(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".match3", "configs", filename)
}

// Validate clamps out-of-range numbers into their accepted ranges and
// reports symbols or log levels that cannot be used.
func (c *Match3Config) Validate() error {
	c.Board.Width = core.Clamp(c.Board.Width, MinBoardSize, MaxBoardSize)
	c.Board.Height = core.Clamp(c.Board.Height, MinBoardSize, MaxBoardSize)
	c.Board.CellSize = core.Clamp(c.Board.CellSize, 0, MaxCellSize)

	if len(c.Symbols) == 0 {
		c.Symbols = DefaultSymbols()
	}
	var errs []error
	for i, s := range c.Symbols {
		if utf8.RuneCountInString(s.Glyph) != 1 {
			errs = append(errs, fmt.Errorf("symbol %d: glyph %q must be a single character", i, s.Glyph))
		}
		if _, ok := core.ParseColor(s.Color); !ok {
			errs = append(errs, fmt.Errorf("symbol %d: unknown color %q", i, s.Color))
		}
	}
	if len(c.Symbols) < match3.MinTypes {
		errs = append(errs, fmt.Errorf("need at least %d symbols, got %d", match3.MinTypes, len(c.Symbols)))
	} else {
		c.Board.Types = core.Clamp(c.Board.Types, match3.MinTypes, len(c.Symbols))
	}

	c.Animation.Swap = core.Max(c.Animation.Swap, 0)
	c.Animation.Revert = core.Max(c.Animation.Revert, 0)
	c.Animation.Fall = core.Max(c.Animation.Fall, 0)
	c.Animation.Emerge = core.Max(c.Animation.Emerge, 0)
	c.Animation.Shuffle = core.Max(c.Animation.Shuffle, 0)

	c.Rules.MaxShuffles = core.Max(c.Rules.MaxShuffles, 1)

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

// Glyphs returns the rune of every configured symbol.
func (c Match3Config) Glyphs() []rune {
	out := make([]rune, len(c.Symbols))
	for i, s := range c.Symbols {
		out[i], _ = utf8.DecodeRuneInString(s.Glyph)
	}
	return out
}

// Colors returns the color of every configured symbol. Unknown names map to
// the default color.
func (c Match3Config) Colors() []core.Color {
	out := make([]core.Color, len(c.Symbols))
	for i, s := range c.Symbols {
		out[i], _ = core.ParseColor(s.Color)
	}
	return out
}
