package provision

import (
	"fmt"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/stokaro/seshat/catalog"
	"github.com/stokaro/seshat/cmd/dbflags"
	"github.com/stokaro/seshat/config"
	"github.com/stokaro/seshat/dbschema"
	"github.com/stokaro/seshat/provision/reconciler"
)

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Apply the collection catalog to the target database",
	Long: `Apply the collection catalog (users, events, rsvps, attendees) to the target database.

For each collection the command ensures it exists with its declared validator
(moderate validation level, error action) and ensures its named indexes. The
command is idempotent: re-running against an already provisioned database is
a no-op.

Validator updates on existing collections are best-effort: a rejection is
reported per collection and the run continues. Collection creation and index
creation failures abort the run.

Examples:
  seshat provision                                  # Provision eventhub on localhost
  seshat provision --db-url mongodb://db:27017      # Provision a specific deployment
  seshat provision --db-name eventhub_staging       # Target a different database
  seshat provision --dry-run                        # Log planned operations only`,
	RunE: provisionCommand,
}

const (
	dryRunFlag         = "dry-run"
	skipSoftDeleteFlag = "skip-soft-delete-index"
)

var provisionFlags = map[string]cobraflags.Flag{
	dryRunFlag: &cobraflags.BoolFlag{
		Name:  dryRunFlag,
		Value: false,
		Usage: "Log planned operations without touching the database",
	},
	skipSoftDeleteFlag: &cobraflags.BoolFlag{
		Name:  skipSoftDeleteFlag,
		Value: false,
		Usage: "Do not create the supplementary deletedAt indexes",
	},
}

var connFlags = dbflags.New()

func NewProvisionCommand() *cobra.Command {
	cobraflags.RegisterMap(provisionCmd, connFlags)
	cobraflags.RegisterMap(provisionCmd, provisionFlags)
	return provisionCmd
}

func provisionCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	opts := config.DefaultReconcileOptions()
	opts.DryRun = provisionFlags[dryRunFlag].GetBool()
	opts.EnableSoftDeleteIndex = !provisionFlags[skipSoftDeleteFlag].GetBool()

	dbURL := dbflags.ResolveURL(connFlags)
	dbName := dbflags.ResolveName(connFlags)

	conn, err := dbschema.ConnectToDatabase(ctx, dbURL, dbName)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close(ctx)

	fmt.Printf("Provisioning database: %s (%s)\n", conn.Info().Database, conn.Info().URL)
	fmt.Println()

	results, runErr := reconciler.NewFromConnection(conn, opts).Run(ctx, catalog.Database())

	for _, result := range results {
		switch result.Outcome {
		case reconciler.OutcomeFailed:
			fmt.Printf("  %-10s %s (%s)\n", result.Collection, result.Outcome, result.Reason)
		default:
			fmt.Printf("  %-10s %s (%d indexes ensured)\n", result.Collection, result.Outcome, result.IndexesEnsured)
		}
	}
	fmt.Println()

	if runErr != nil {
		return fmt.Errorf("provisioning aborted: %w", runErr)
	}

	if failed := results.Failed(); len(failed) > 0 {
		// Validator-update rejections are reported but do not fail the run.
		fmt.Printf("Completed with %d validator update failure(s); see above.\n", len(failed))
		return nil
	}

	fmt.Println("All collections provisioned successfully.")
	return nil
}
