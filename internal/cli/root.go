package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// Typically called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the depvis CLI and returns an error if any command fails.
//
// The root command wires up the run, export, and cache subcommands and
// configures logging based on the --verbose flag: info level by default,
// debug with -v. The logger is attached to the context and retrieved by
// commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "depvis",
		Short:        "depvis explores the transitive dependency graph of an npm package",
		Long:         `depvis builds the transitive dependency graph of an npm package breadth-first from registry metadata, then renders it as an indented tree with summary statistics or exports it for further processing.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("depvis %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
