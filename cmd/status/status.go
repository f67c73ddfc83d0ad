package status

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stokaro/seshat/catalog"
	"github.com/stokaro/seshat/cmd/dbflags"
	"github.com/stokaro/seshat/dbschema"
	"github.com/stokaro/seshat/provision/schemadiff"
	difftypes "github.com/stokaro/seshat/provision/schemadiff/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report drift between the catalog and the live database",
	Long: `Read the live database schema and compare it against the collection catalog.

The command is read-only. It reports collections and indexes missing from the
database, stray ones the catalog does not declare, and validators whose
document, level or action differ from the declared state.

Examples:
  seshat status                       # Human-readable drift report
  seshat status --format json         # Machine-readable, for CI pipelines
  seshat status --format yaml`,
	RunE: statusCommand,
}

const formatFlag = "format"

var statusFlags = map[string]cobraflags.Flag{
	formatFlag: &cobraflags.StringFlag{
		Name:  formatFlag,
		Value: "text",
		Usage: "Output format (text, json, yaml)",
	},
}

var connFlags = dbflags.New()

func NewStatusCommand() *cobra.Command {
	cobraflags.RegisterMap(statusCmd, connFlags)
	cobraflags.RegisterMap(statusCmd, statusFlags)
	return statusCmd
}

func statusCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	format := strings.ToLower(statusFlags[formatFlag].GetString())

	conn, err := dbschema.ConnectToDatabase(ctx, dbflags.ResolveURL(connFlags), dbflags.ResolveName(connFlags))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close(ctx)

	current, err := conn.Reader().ReadSchema(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	diff := schemadiff.Compare(catalog.Database(), current)

	switch format {
	case "text":
		printText(conn.Info().Database, diff)
		return nil
	case "json":
		out, err := json.MarshalIndent(diff, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render diff as JSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	case "yaml":
		out, err := yaml.Marshal(diff)
		if err != nil {
			return fmt.Errorf("failed to render diff as YAML: %w", err)
		}
		fmt.Print(string(out))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func printText(database string, diff *difftypes.SchemaDiff) {
	fmt.Printf("Drift report for database %q\n", database)
	fmt.Println()

	if !diff.HasChanges() {
		fmt.Println("No drift detected: the database matches the catalog.")
		return
	}

	if len(diff.CollectionsAdded) > 0 {
		fmt.Printf("Collections missing from the database: %s\n", strings.Join(diff.CollectionsAdded, ", "))
	}
	if len(diff.CollectionsRemoved) > 0 {
		fmt.Printf("Collections not declared in the catalog: %s\n", strings.Join(diff.CollectionsRemoved, ", "))
	}
	for _, vdiff := range diff.ValidatorsModified {
		var parts []string
		if vdiff.ValidatorChanged {
			parts = append(parts, "validator document")
		}
		if vdiff.LevelChanged != nil {
			parts = append(parts, fmt.Sprintf("level %s -> %s", vdiff.LevelChanged.Old, vdiff.LevelChanged.New))
		}
		if vdiff.ActionChanged != nil {
			parts = append(parts, fmt.Sprintf("action %s -> %s", vdiff.ActionChanged.Old, vdiff.ActionChanged.New))
		}
		fmt.Printf("Validator drift on %q: %s\n", vdiff.CollectionName, strings.Join(parts, ", "))
	}
	if len(diff.IndexesAdded) > 0 {
		fmt.Printf("Indexes missing from the database: %s\n", strings.Join(diff.IndexesAdded, ", "))
	}
	if len(diff.IndexesRemoved) > 0 {
		fmt.Printf("Indexes not declared in the catalog: %s\n", strings.Join(diff.IndexesRemoved, ", "))
	}
	fmt.Println()
	fmt.Println("Run 'seshat provision' to apply the catalog.")
}
