package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/avollmer/depvis/pkg/depgraph"
	"github.com/avollmer/depvis/pkg/errors"
	"github.com/avollmer/depvis/pkg/npm"
)

const (
	defaultConfigFile = "config.json"
	cacheTTL          = 24 * time.Hour
)

// buildOpts holds the flags shared by the run and export commands.
type buildOpts struct {
	maxDepth    int  // maximum dependency tree depth
	maxPackages int  // maximum packages to discover
	refresh     bool // bypass the HTTP response cache
}

func (o *buildOpts) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.maxDepth, "max-depth", o.maxDepth, "maximum dependency depth")
	cmd.Flags().IntVar(&o.maxPackages, "max-packages", o.maxPackages, "maximum packages to discover")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cache")
}

// newRunCmd creates the run command: build the configured package's
// dependency graph and print it as a tree with statistics.
func newRunCmd() *cobra.Command {
	opts := buildOpts{maxDepth: depgraph.DefaultMaxDepth, maxPackages: depgraph.DefaultMaxPackages}

	cmd := &cobra.Command{
		Use:   "run [config-file]",
		Short: "Build and display a package's dependency tree",
		Long: `Build the transitive dependency graph for the package named in the
configuration file and print it as an indented tree followed by graph
statistics (package/dependency/leaf counts, depth distribution, cycles).

The configuration file defaults to config.json in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath(args))
			if err != nil {
				return err
			}
			return runBuild(c.Context(), cfg, &opts)
		},
	}

	opts.register(cmd)
	return cmd
}

func configPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultConfigFile
}

func runBuild(ctx context.Context, cfg *Config, opts *buildOpts) error {
	echoConfig(cfg)

	result, err := buildGraph(ctx, cfg, opts)
	if err != nil {
		return err
	}

	printNewline()
	printTitle("Dependency tree")
	for _, line := range depgraph.RenderTree(result) {
		fmt.Println(line)
	}

	printStats(depgraph.Analyze(result))
	return nil
}

// buildGraph constructs the metadata source from the config and crawls the
// graph. The root package is fetched once up front so an unknown or
// unreachable root fails fast with a clear error instead of producing an
// empty single-node graph; the response is cached, so the crawl does not
// pay for it twice.
func buildGraph(ctx context.Context, cfg *Config, opts *buildOpts) (*depgraph.Result, error) {
	logger := loggerFromContext(ctx)

	src, err := newSource(cfg, opts.refresh)
	if err != nil {
		return nil, err
	}
	if _, err := src.Fetch(ctx, cfg.PackageName); err != nil {
		return nil, errors.Wrap(errors.ErrCodePackageNotFound, err,
			"cannot fetch root package %s", cfg.PackageName)
	}

	logger.Debugf("resolving %s", cfg.PackageName)
	if logger.GetLevel() > charmlog.DebugLevel {
		sp := newSpinner(fmt.Sprintf("Resolving %s...", cfg.PackageName))
		sp.start(ctx)
		defer sp.stop()
	}

	prog := newProgress(logger)
	result, err := depgraph.Build(ctx, src, cfg.PackageName, depgraph.Options{
		MaxDepth:    opts.maxDepth,
		MaxPackages: opts.maxPackages,
		Version:     cfg.Version,
		Filter:      cfg.FilterSubstring,
		Logger:      logger.Debugf,
	})
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Resolved %d packages with %d dependencies",
		result.PackageCount(), result.EdgeCount()))

	return result, nil
}

// newSource selects the metadata source: a local fixture file in test
// repository mode, the HTTP registry otherwise.
func newSource(cfg *Config, refresh bool) (depgraph.Source, error) {
	if cfg.TestRepositoryMode {
		return npm.NewFixture(cfg.RepositoryURL), nil
	}
	return npm.NewRegistry(cfg.RepositoryURL, cacheTTL, refresh)
}

func echoConfig(cfg *Config) {
	printInfo("Configuration")
	printKeyValue("package_name", cfg.PackageName)
	printKeyValue("repository_url", cfg.RepositoryURL)
	printKeyValue("version", cfg.Version)
	printKeyValue("filter_substring", cfg.FilterSubstring)
	printKeyValue("test_repository_mode", strconv.FormatBool(cfg.TestRepositoryMode))
}

func printStats(stats depgraph.Stats) {
	printNewline()
	printTitle("Statistics")
	printKeyValue("packages", strconv.Itoa(stats.Packages))
	printKeyValue("dependencies", strconv.Itoa(stats.Edges))
	printKeyValue("leaf packages", strconv.Itoa(stats.Leaves))

	for _, depth := range slices.Sorted(maps.Keys(stats.DepthCounts)) {
		printDetail("depth %d: %d packages", depth, stats.DepthCounts[depth])
	}

	printKeyValue("cycles", strconv.Itoa(len(stats.Cycles)))
	if len(stats.Cycles) > 0 {
		printWarning("%d dependency cycle(s) detected", len(stats.Cycles))
		for _, cycle := range stats.Cycles {
			printDetail("%s", strings.Join(cycle, " -> "))
		}
	}
}
