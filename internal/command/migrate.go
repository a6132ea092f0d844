package command

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophtasks/internal/server"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "migrate [flags]",
		Short:              "apply pending database migrations and exit",
		Long:               "Applies pending database migrations and exits.\n\n" + configFlagsHelp,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Migrate(cmd.Context(), config.Load(args))
		},
	}
}
