package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"manifmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "manifmt",
	Short: "Canonical formatter for Cargo.toml manifests",
	Long: `manifmt rewrites Cargo.toml files into one canonical style:
ordered package keys, sorted dependencies, expanded version
requirements, and elided defaults, while preserving comments and
everything it does not understand.`,
	PersistentPreRunE: setupOutput,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupOutput applies the persistent output flags before any
// subcommand runs.
func setupOutput(cmd *cobra.Command, _ []string) error {
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	charmlog.SetReportTimestamp(false)
	if quiet {
		charmlog.SetLevel(charmlog.ErrorLevel)
	}
	return nil
}

func colorEnabled(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return isTerminal(os.Stderr), nil
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
