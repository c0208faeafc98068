package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultSymbols returns the built-in tile set.
func DefaultSymbols() []SymbolConfig {
	return []SymbolConfig{
		{Glyph: "●", Color: "red"},
		{Glyph: "▲", Color: "green"},
		{Glyph: "■", Color: "blue"},
		{Glyph: "◆", Color: "yellow"},
		{Glyph: "★", Color: "magenta"},
		{Glyph: "♥", Color: "cyan"},
		{Glyph: "✚", Color: "orange"},
		{Glyph: "✿", Color: "bright_white"},
	}
}

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Width:    6,
			Height:   10,
			Types:    6,
			CellSize: 0,
		},
		Symbols: DefaultSymbols(),
		Animation: AnimationConfig{
			Swap:    8,
			Revert:  8,
			Fall:    10,
			Emerge:  8,
			Shuffle: 20,
		},
		Rules: RulesConfig{
			ReshuffleOnDeadlock: false,
			MaxShuffles:         3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
