package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/structviz/session"
)

func newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe STRUCTURE",
		Short: "Print descriptive info for a structure",
		Long: `Describe asks the configured model for a description and complexity
notes. Set STRUCTVIZ_DESCRIBE_API_KEY (or API_KEY); without a key a
fallback message is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			sess, err := session.New(cfg, session.WithLogger(logger))
			if err != nil {
				return err
			}
			v, err := sess.View(args[0])
			if err != nil {
				return err
			}

			info := newDescriber(cmd.Context(), cfg, logger, nil).Fetch(cmd.Context(), v.Name)
			out := cmd.OutOrStdout()
			head := color.New(color.Bold)
			head.Fprintln(out, v.Name)
			fmt.Fprintln(out, info.Description)
			for _, sec := range []struct{ title, body string }{
				{"Time complexity", info.Theory.TimeComplexity},
				{"Space complexity", info.Theory.SpaceComplexity},
				{"Use cases", info.Theory.UseCases},
				{"Real-world examples", info.Theory.RealWorldExamples},
			} {
				fmt.Fprintln(out)
				head.Fprintln(out, sec.title)
				fmt.Fprintln(out, sec.body)
			}

			return nil
		},
	}
}
