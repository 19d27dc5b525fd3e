package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avollmer/depvis/pkg/depgraph"
	"github.com/avollmer/depvis/pkg/export"
)

// exportOpts holds the flags for the export command.
type exportOpts struct {
	buildOpts
	output string // output file path (stdout for text formats if empty)
	format string // json, dot, svg, or png (inferred from output extension if empty)
}

// newExportCmd creates the export command: build the dependency graph and
// serialize it instead of printing a tree.
func newExportCmd() *cobra.Command {
	opts := exportOpts{
		buildOpts: buildOpts{maxDepth: depgraph.DefaultMaxDepth, maxPackages: depgraph.DefaultMaxPackages},
	}

	cmd := &cobra.Command{
		Use:   "export [config-file]",
		Short: "Build a dependency graph and export it as JSON, DOT, SVG, or PNG",
		Long: `Build the transitive dependency graph for the configured package and
write it to a file or stdout.

Formats:
  json   node-link graph with discovery depths (default)
  dot    Graphviz DOT text
  svg    rendered diagram (requires --output)
  png    rendered diagram (requires --output)

The format is inferred from the output file extension when --format is not
given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath(args))
			if err != nil {
				return err
			}

			result, err := buildGraph(c.Context(), cfg, &opts.buildOpts)
			if err != nil {
				return err
			}
			return writeExport(c.Context(), result, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: json, dot, svg, png")
	return cmd
}

func writeExport(ctx context.Context, result *depgraph.Result, opts *exportOpts) error {
	format := opts.format
	if format == "" {
		format = formatFromPath(opts.output)
	}

	switch format {
	case "json":
		if opts.output == "" {
			return export.WriteJSON(result, os.Stdout)
		}
		if err := export.ExportJSON(result, opts.output); err != nil {
			return err
		}
	case "dot":
		dot := export.ToDOT(result)
		if opts.output == "" {
			fmt.Print(dot)
			return nil
		}
		if err := os.WriteFile(opts.output, []byte(dot), 0o644); err != nil {
			return err
		}
	case "svg", "png":
		if opts.output == "" {
			return fmt.Errorf("%s output requires --output", format)
		}
		data, err := renderImage(ctx, result, format)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (supported: json, dot, svg, png)", format)
	}

	printSuccess("Exported %s graph to %s", format, opts.output)
	return nil
}

func renderImage(ctx context.Context, result *depgraph.Result, format string) ([]byte, error) {
	dot := export.ToDOT(result)
	if format == "svg" {
		return export.RenderSVG(ctx, dot)
	}
	return export.RenderPNG(ctx, dot)
}

// formatFromPath infers the export format from the output file extension,
// defaulting to json.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dot", ".gv":
		return "dot"
	case ".svg":
		return "svg"
	case ".png":
		return "png"
	default:
		return "json"
	}
}
