// Command seshat provisions the eventhub MongoDB collections: it declares
// the users, events, rsvps and attendees collections with their $jsonSchema
// validators and named indexes and applies them idempotently.
package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stokaro/seshat/cmd/provision"
	"github.com/stokaro/seshat/cmd/render"
	"github.com/stokaro/seshat/cmd/seed"
	"github.com/stokaro/seshat/cmd/status"
)

var rootCmd = &cobra.Command{
	Use:   "seshat",
	Short: "MongoDB collection provisioning for the eventhub platform",
	Long: `Seshat provisions the eventhub MongoDB collections.

It declares four collections (users, events, rsvps, attendees) with
$jsonSchema validators and named secondary indexes and applies them
idempotently: re-running any command against an already provisioned
database is safe.

Connection settings come from flags or the environment:
  SESHAT_DB_URL   MongoDB connection URL (default mongodb://localhost:27017)
  SESHAT_DB_NAME  Target database name (default eventhub)`,
	SilenceUsage: true,
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	viper.SetEnvPrefix("SESHAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(provision.NewProvisionCommand())
	rootCmd.AddCommand(status.NewStatusCommand())
	rootCmd.AddCommand(render.NewRenderCommand())
	rootCmd.AddCommand(seed.NewSeedCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
