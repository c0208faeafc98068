// match3 is a terminal match-3 tile puzzle.
//
// Usage:
//
//	match3 list              - List available modes
//	match3 play [mode]       - Play a mode (default: match3)
//	match3 menu              - Start menu to pick a mode interactively
//	match3 serve             - Start SSH server for remote play
//	match3 scores [mode]     - Show high scores for a mode
//	match3 config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.match3/scores.db)
//	--config <path>     - Use a custom match3.yaml
//	--log-level <level> - Override the configured log level
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - A tile-swapping puzzle in your terminal",
	Long: `Match-3 is a terminal tile puzzle: swap two neighbouring tiles to line up
three or more of a kind, clear them and let the board refill.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  match3 play
  match3 play match3_zen --seed 42
  match3 menu
  match3 serve --ssh :2222
  match3 scores match3`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom match3 config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the match3 config, reporting a broken custom file on stderr.
func loadConfig() config.Match3Config {
	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg
}

// setupGame points the game at the config file and wires its logger.
// The terminal belongs to Bubble Tea, so logs only go to the configured file.
// The returned function closes the log file.
func setupGame() func() {
	match3.SetConfigPath(flagConfig)

	cfg := loadConfig()
	logger, closeLog, err := logging.OpenFile(cfg.Logging.File, cfg.Logging.Level, "match3")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger, closeLog = logging.Discard(), func() error { return nil }
	}
	match3.SetLogger(logger)

	return func() {
		if err := closeLog(); err != nil {
			log.Warn("could not close log file", "error", err)
		}
	}
}
