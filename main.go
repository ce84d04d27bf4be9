// gamefeel is a platformer sandbox for tuning player movement, abilities
// and the follow camera while playing.
//
// Usage:
//
//	gamefeel                     - Play the sandbox level
//	gamefeel --config floaty     - Start with a saved config applied
//	gamefeel --watch             - Re-apply prefab YAML edits live
//
// In game: Tab opens the tuning panel, R restarts the level, F3 toggles
// the debug overlay.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/gamefeel/common"
	"github.com/milk9111/gamefeel/storage"
	"github.com/milk9111/gamefeel/tuning"
)

var (
	flagDBPath string
	flagDebug  bool
	flagWatch  bool
	flagConfig string
	flagLevel  string
	flagTPS    int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gamefeel",
	Short: "Platformer game-feel sandbox",
	Long: `gamefeel runs a small platformer level with a live tuning panel.
Every movement, ability, camera and material parameter can be changed
while playing and saved as a named config.`,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.Flags().StringVar(&flagDBPath, "db", "~/.gamefeel/gamefeel.db", "Path to the config database (\":memory:\" to keep nothing)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Start with the debug overlay on")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Watch prefabs/ and re-apply YAML defaults on change")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Saved config to load at start")
	rootCmd.Flags().StringVar(&flagLevel, "level", "", "Level file in levels/ (default sandbox)")
	rootCmd.Flags().IntVar(&flagTPS, "tps", common.TPS, "Ticks per second")
}

func runGame(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gamefeel",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	if flagTPS <= 0 {
		return fmt.Errorf("--tps must be positive, got %d", flagTPS)
	}

	storage.SetLogger(logger)
	kv, err := storage.Connect(flagDBPath)
	if err != nil {
		return err
	}
	defer kv.Close()
	logger.Debug("opened config store", "path", kv.Path())

	game, err := NewGame(GameOptions{
		Level:  flagLevel,
		Config: flagConfig,
		Debug:  flagDebug,
		Watch:  flagWatch,
		TPS:    flagTPS,
		Store:  tuning.NewStore(kv),
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetTPS(flagTPS)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("gamefeel")

	return ebiten.RunGame(game)
}
