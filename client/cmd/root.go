package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zshtools/z2f/client/lib"
	"github.com/zshtools/z2f/client/zctx"
)

var (
	outputPath *string
	verbose    *bool
)

var rootCmd = &cobra.Command{
	Use:   "z2f ZSH_HISTORY_FILE",
	Short: "z2f: Convert a zsh history file to the fish history format",
	Long: "z2f reads a zsh history file (e.g. ~/.zsh_history), decodes its records, and prints\n" +
		"them in the fish_history format so that a shell migration keeps your command history.\n" +
		"EXTENDED_HISTORY timestamps and multi-line commands are preserved. For example:\n\n" +
		"  z2f ~/.zsh_history > ~/.local/share/fish/fish_history",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if *verbose {
			zctx.GetLogger().SetLevel(logrus.DebugLevel)
		}
		lib.CheckFatalError(convert(args[0], *outputPath))
	},
}

func convert(historyPath, outputPath string) error {
	logger := zctx.GetLogger()
	startTime := time.Now()
	file, err := os.Open(historyPath)
	if err != nil {
		return fmt.Errorf("failed to open zsh history file: %w", err)
	}
	defer file.Close()
	entries, err := lib.ParseZshHistory(lib.MaybeProgressReader(file))
	if err != nil {
		return err
	}
	logger.Debugf("parsed %d history entries from %s in %s", len(entries), historyPath, time.Since(startTime))

	// Render everything before writing the first byte, so a failure can
	// never leave a truncated fish history behind.
	rendered := lib.RenderFishHistory(entries)
	if outputPath != "" {
		// fish keeps its history file at 0600
		if err := os.WriteFile(outputPath, []byte(rendered), 0o600); err != nil {
			return fmt.Errorf("failed to write fish history file: %w", err)
		}
		return nil
	}
	if _, err := os.Stdout.WriteString(rendered); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = "v0." + lib.Version
	// Registering the version flag ourselves gets the conventional -V shorthand
	rootCmd.Flags().BoolP("version", "V", false, "Print the z2f version and exit")
	outputPath = rootCmd.Flags().StringP("output", "o", "", "Write the converted history to `FILE` instead of stdout")
	verbose = rootCmd.Flags().BoolP("verbose", "v", false, "Log conversion diagnostics to stderr")
}
