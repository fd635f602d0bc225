package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/structviz/config"
	"github.com/katalvlaran/structviz/mcpserver"
	"github.com/katalvlaran/structviz/session"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server on stdio",
		Long: `Start a Model Context Protocol server on stdio transport. Tools:
  - structviz_structures: list structures and operations
  - structviz_apply:      apply an operation and return its trace
  - structviz_view:       current state of a structure
  - structviz_history:    undo or redo
  - structviz_describe:   descriptive info for a structure
  - structviz_complexity: Big-O operation counts`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			// Traces are returned whole; pacing only matters for live playback.
			cfg.Animation = config.AnimationConfig{}

			sess, err := session.New(cfg, session.WithLogger(logger))
			if err != nil {
				return err
			}
			srv := mcpserver.NewServer(mcpserver.Deps{
				Session:   sess,
				Describer: newDescriber(cmd.Context(), cfg, logger, nil),
				Logger:    logger,
				Version:   version,
			})

			return srv.Run(cmd.Context())
		},
	}
}
