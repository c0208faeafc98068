// Package config provides YAML-based configuration for the match-3 game:
// board geometry, tile symbols, animation timing, rules and logging.
package config

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board     BoardConfig     `yaml:"board"`
	Symbols   []SymbolConfig  `yaml:"symbols"`
	Animation AnimationConfig `yaml:"animation"`
	Rules     RulesConfig     `yaml:"rules"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// BoardConfig defines the grid size and how many tile kinds are dealt.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Types  int `yaml:"types"` // Distinct symbols in play, at most len(symbols)

	// CellSize scales each tile on screen. 0 picks the largest size that
	// fits the terminal.
	CellSize int `yaml:"cell_size"`
}

// SymbolConfig is the look of one tile type.
type SymbolConfig struct {
	Glyph string `yaml:"glyph"` // Single rune
	Color string `yaml:"color"` // Color name, see core.ParseColor
}

// AnimationConfig holds the length of each animated phase in ticks.
type AnimationConfig struct {
	Swap    int `yaml:"swap"`
	Revert  int `yaml:"revert"`
	Fall    int `yaml:"fall"`
	Emerge  int `yaml:"emerge"`
	Shuffle int `yaml:"shuffle"`
}

// RulesConfig tunes the deadlock behaviour of the zen mode.
type RulesConfig struct {
	ReshuffleOnDeadlock bool `yaml:"reshuffle_on_deadlock"`
	MaxShuffles         int  `yaml:"max_shuffles"`
}

// LoggingConfig controls the game logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty discards logs while the TUI owns the terminal
}
