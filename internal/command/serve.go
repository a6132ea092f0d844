package command

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophtasks/internal/server"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "serve [flags]",
		Short:              "serve the REST and gRPC APIs",
		Long:               "Migrates the database, then serves the REST and gRPC APIs until interrupted.\n\n" + configFlagsHelp,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := server.NewApp(cmd.Context(), config.Load(args))
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
}
