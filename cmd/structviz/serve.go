package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/structviz/httpapi"
	"github.com/katalvlaran/structviz/observability"
	"github.com/katalvlaran/structviz/session"
)

func newServeCommand() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the structures over JSON HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			metrics := observability.NewMetrics()
			sess, err := session.New(cfg, session.WithLogger(logger), session.WithMetrics(metrics))
			if err != nil {
				return err
			}
			srv := httpapi.New(sess,
				httpapi.WithLogger(logger),
				httpapi.WithMetrics(metrics),
				httpapi.WithDescriber(newDescriber(cmd.Context(), cfg, logger, metrics)),
			)

			return srv.ListenAndServe(cmd.Context(), cfg.Server)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides server.host)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")

	return cmd
}
