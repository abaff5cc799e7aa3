package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"manifmt/internal/diag"
	"manifmt/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path...]",
	Short: "Format Cargo.toml manifests",
	Long: `Format the given Cargo.toml files or package directories.
With no arguments, formats every member of the workspace found in the
current directory or any parent.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that would change without rewriting them")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}

	results, err := driver.FormatPaths(cmd.Context(), afero.NewOsFs(), args, driver.FormatOptions{
		Check:          check,
		MaxDiagnostics: maxDiagnostics,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fmt: %v\n", err)
		return fmt.Errorf("fmt: %w", err)
	}

	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Bag != nil {
			res.Bag.Sort()
			diag.Render(os.Stderr, res.Bag, useColor)
		}
		if res.Err != nil {
			hasErrors = true
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(os.Stdout, res.Path)
		} else {
			charmlog.Info("reformatted", "path", res.Path)
		}
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}
