package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/structviz/complexity"
)

func newComplexityCommand() *cobra.Command {
	var (
		n     int
		chart string
		cards bool
	)

	cmd := &cobra.Command{
		Use:   "complexity",
		Short: "Compare Big-O growth classes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			counts, err := complexity.Counts(n)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := table.NewWriter()
			tw.SetOutputMirror(out)
			tw.SetStyle(table.StyleLight)
			tw.SetTitle(fmt.Sprintf("operations at n = %d", n))
			tw.AppendHeader(table.Row{"class", "operations"})
			for _, c := range counts {
				tw.AppendRow(table.Row{c.Class, c.Display})
			}
			tw.Render()

			if cards {
				for _, c := range complexity.Cards() {
					fmt.Fprintf(out, "\n%s  %s\n%s\n\n%s\n", c.Class, c.Name, c.Description, c.Example)
				}
			}

			if chart == "" {
				return nil
			}
			f, err := os.Create(chart)
			if err != nil {
				return err
			}
			if err := complexity.RenderChart(f, n); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(out, "chart written to %s\n", chart)

			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 10, "input size (1-50)")
	cmd.Flags().StringVar(&chart, "chart", "", "write an HTML growth chart to this file")
	cmd.Flags().BoolVar(&cards, "cards", false, "print the explanation card of every class")

	return cmd
}
