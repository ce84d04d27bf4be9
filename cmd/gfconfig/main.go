// gfconfig inspects and moves saved game-feel configs.
//
// Usage:
//
//	gfconfig list                 - List saved configs
//	gfconfig show <name>          - Print a saved config as JSON
//	gfconfig current              - Print the config the game starts with
//	gfconfig delete <name>        - Remove a saved config
//	gfconfig export <name> [file] - Write a config to a file or stdout
//	gfconfig import <file>        - Save a config read from a JSON file
//
// Global flags:
//
//	--db <path>  - Set database path (default: ~/.gamefeel/gamefeel.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/gamefeel/storage"
	"github.com/milk9111/gamefeel/tuning"
)

var (
	flagDBPath  string
	flagVerbose bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "gfconfig"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gfconfig",
	Short: "Manage saved game-feel configs",
	Long: `gfconfig reads and writes the config store the gamefeel sandbox uses.

Examples:
  gfconfig list
  gfconfig show floaty
  gfconfig export floaty floaty.json
  gfconfig import floaty.json`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gamefeel/gamefeel.db", "Path to the config database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(currentCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// withStore opens the database for the length of fn.
func withStore(fn func(*tuning.Store) error) error {
	storage.SetLogger(logger)
	kv, err := storage.Connect(flagDBPath)
	if err != nil {
		return err
	}
	defer kv.Close()
	logger.Debug("opened config store", "path", kv.Path())
	return fn(tuning.NewStore(kv))
}
