// Command structviz drives the structure engines from the terminal, over
// HTTP or as an MCP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/structviz/config"
	"github.com/katalvlaran/structviz/describe"
	"github.com/katalvlaran/structviz/observability"
)

// Set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "structviz",
		Short: "Step through data structure operations",
		Long: `structviz animates operations on arrays, stacks, queues, linked lists,
hash tables, trees, heaps, tries, disjoint sets, segment trees and graphs.

Every operation produces a step-by-step trace and every change can be
undone and redone.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: structviz.yaml in ., ./config or ~/.config/structviz)")

	root.AddCommand(
		newPlayCommand(),
		newStructuresCommand(),
		newServeCommand(),
		newMCPCommand(),
		newComplexityCommand(),
		newDescribeCommand(),
		versionCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "structviz %s (commit: %s)\n", version, commit)
		},
	}
}

// setup loads configuration and builds the logger. Logs always go to
// stderr so stdout stays free for output and the MCP stream.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := observability.NewLogger(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// newDescriber returns a provider backed by Gemini when an API key is
// configured and a fallback-only provider otherwise.
func newDescriber(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *observability.Metrics) *describe.Provider {
	opts := []describe.Option{
		describe.WithTimeout(cfg.Describe.Timeout),
		describe.WithLogger(logger),
	}
	if m != nil {
		opts = append(opts, describe.WithObserver(func(fallback bool) {
			m.Describe.WithLabelValues(strconv.FormatBool(fallback)).Inc()
		}))
	}

	if cfg.Describe.APIKey == "" {
		logger.Debug("describe: no API key, serving fallback")
		return describe.NewProvider(nil, opts...)
	}
	gen, err := describe.NewGeminiGenerator(ctx, cfg.Describe.APIKey, cfg.Describe.Model)
	if err != nil {
		logger.Warn("describe: gemini client unavailable", slog.Any("error", err))
		return describe.NewProvider(nil, opts...)
	}

	return describe.NewProvider(gen, opts...)
}
