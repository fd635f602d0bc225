package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/structviz/config"
	"github.com/katalvlaran/structviz/render"
	"github.com/katalvlaran/structviz/session"
)

func newPlayCommand() *cobra.Command {
	var (
		noColor bool
		fast    bool
		diff    bool
	)

	cmd := &cobra.Command{
		Use:   "play SCRIPT",
		Short: "Play a YAML script of operations",
		Long: `Play runs each step of a script, showing every trace frame with the
configured animation delays.

  name: heap demo
  steps:
    - {structure: heap, op: insert, args: [1]}
    - {structure: heap, op: extract_min}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if fast {
				cfg.Animation = config.AnimationConfig{}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			script, err := session.LoadScript(f)
			if err != nil {
				return err
			}

			sess, err := session.New(cfg, session.WithLogger(logger))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			term := render.NewTerminal(out, render.WithColor(!noColor && !color.NoColor))
			warn := color.New(color.FgYellow)
			if noColor {
				warn.DisableColor()
			}
			if script.Name != "" {
				fmt.Fprintf(out, "== %s ==\n", script.Name)
			}

			var before session.View
			_, err = sess.Run(cmd.Context(), script, session.RunHooks{
				Before: func(i int, st session.Intent) error {
					v, err := sess.View(st.Structure)
					if err != nil {
						return err
					}
					before = v
					fmt.Fprintf(out, "\n#%d %s %s %v\n", i+1, st.Structure, st.Op, st.Args)

					return nil
				},
				Frame: func(st session.Intent, fr session.Frame) error {
					return term.Show(st.Structure, fr)
				},
				After: func(_ int, st session.Intent, res session.Outcome) error {
					if res.Ignored {
						warn.Fprintf(out, "ignored: %s\n", res.Reason)
						return nil
					}
					if !diff {
						return nil
					}
					after, err := sess.View(st.Structure)
					if err != nil {
						return err
					}
					fmt.Fprint(out, term.Diff(term.Text(before.State), term.Text(after.State)))

					return nil
				},
			})

			return err
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colour output")
	cmd.Flags().BoolVar(&fast, "fast", false, "skip animation delays")
	cmd.Flags().BoolVar(&diff, "diff", false, "print a state diff after each step")

	return cmd
}
