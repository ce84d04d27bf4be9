package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/milk9111/gamefeel/tuning"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved configs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved config as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the current config as JSON",
	Args:  cobra.NoArgs,
	RunE:  runCurrent,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a saved config",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var exportCmd = &cobra.Command{
	Use:   "export <name> [file]",
	Short: "Write a saved config to a file, or stdout when no file is given",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Save a config read from a JSON file",
	Long: `Reads a config JSON file, as written by export or the panel's Copy
button, and saves it under the name it carries. --name overrides it.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var flagImportName string

func init() {
	importCmd.Flags().StringVar(&flagImportName, "name", "", "Save under this name instead of the one in the file")
}

func runList(cmd *cobra.Command, args []string) error {
	return withStore(func(s *tuning.Store) error {
		all, err := s.All()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(all) == 0 {
			fmt.Fprintln(out, "No saved configs.")
			return nil
		}
		current, err := s.Current()
		if err != nil {
			return err
		}
		for _, c := range all {
			marker := " "
			if current != nil && current.Name == c.Name {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s\n", marker, c.Name)
		}
		return nil
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	return withStore(func(s *tuning.Store) error {
		cfg, err := findConfig(s, args[0])
		if err != nil {
			return err
		}
		return printConfig(cmd, cfg)
	})
}

func runCurrent(cmd *cobra.Command, args []string) error {
	return withStore(func(s *tuning.Store) error {
		cfg, err := s.Current()
		if err != nil {
			return err
		}
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No current config.")
			return nil
		}
		return printConfig(cmd, *cfg)
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withStore(func(s *tuning.Store) error {
		if _, err := findConfig(s, args[0]); err != nil {
			return err
		}
		if err := s.DeleteNamed(args[0]); err != nil {
			return err
		}
		logger.Info("config deleted", "name", args[0])
		return nil
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	return withStore(func(s *tuning.Store) error {
		cfg, err := findConfig(s, args[0])
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return printConfig(cmd, cfg)
		}
		b, err := tuning.Marshal(cfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[1], append(b, '\n'), 0o644); err != nil {
			return fmt.Errorf("export %q: %w", args[0], err)
		}
		logger.Info("config exported", "name", cfg.Name, "file", args[1])
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	cfg, err := tuning.Unmarshal(data)
	if err != nil {
		return err
	}
	if flagImportName != "" {
		cfg.Name = flagImportName
	}
	return withStore(func(s *tuning.Store) error {
		if err := s.SaveNamed(cfg); err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		logger.Info("config imported", "name", cfg.Name, "file", args[0])
		return nil
	})
}

// findConfig looks a config up without making it current.
func findConfig(s *tuning.Store, name string) (tuning.GameConfig, error) {
	all, err := s.All()
	if err != nil {
		return tuning.GameConfig{}, err
	}
	for _, c := range all {
		if c.Name == name {
			return c, nil
		}
	}
	return tuning.GameConfig{}, fmt.Errorf("%q: %w", name, tuning.ErrConfigNotFound)
}

func printConfig(cmd *cobra.Command, cfg tuning.GameConfig) error {
	b, err := tuning.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
