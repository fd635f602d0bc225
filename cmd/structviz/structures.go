package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/structviz/session"
)

func newStructuresCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "structures",
		Short: "List structures and their operations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			sess, err := session.New(cfg, session.WithLogger(logger))
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleLight)
			tw.AppendHeader(table.Row{"id", "name", "operations"})
			for _, info := range sess.Structures() {
				ops := make([]string, len(info.Ops))
				for i, op := range info.Ops {
					ops[i] = signature(op)
				}
				tw.AppendRow(table.Row{info.ID, info.Name, strings.Join(ops, "  ")})
			}
			tw.Render()

			return nil
		},
	}
}

func signature(op session.Op) string {
	args := strings.Join(op.Args, ", ")
	if op.Variadic {
		args += "..."
	}

	return fmt.Sprintf("%s(%s)", op.Name, args)
}
