// Package command contains the server CLI command constructors.
package command

import (
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophtasks/internal/buildinfo"
)

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "gophtasks [command] [flags]",
		Short:        "Multi-tenant task tracker server",
		Version:      buildinfo.Version(),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	cmd.AddCommand(
		serveCommand(),
		migrateCommand(),
	)

	return cmd
}

// configFlagsHelp documents the flags every sub-command hands to the config
// loader. Sub-commands disable cobra's own flag parsing so the loader sees
// the raw arguments.
const configFlagsHelp = `Configuration is layered: defaults, then a JSON file (-c/-config),
then environment variables, then these flags:

  -a string   REST bind address (HTTP_ADDRESS, PORT)
  -g string   gRPC bind address (GRPC_ADDRESS)
  -d string   database DSN, postgres:// or sqlite: (DATABASE_DSN)
  -s string   JWT HMAC secret key (JWT_SECRET)
  -t int      access token validity, minutes (ACCESS_TOKEN_TTL)
  -q int      database call timeout, seconds (DATABASE_TIMEOUT)
  -p int      password hashing concurrency (HASH_CONCURRENCY)
  -o string   allowed CORS origin (CORS_ORIGIN)
  -l string   log level (LOG_LEVEL)`
