package render

import (
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/stokaro/seshat/catalog"
	"github.com/stokaro/seshat/core/renderer"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the provisioning plan without connecting to a database",
	Long: `Print the validators and index definitions the catalog declares, as JSON or YAML.

Useful for reviewing the exact $jsonSchema documents and index specifications
before a provisioning run, or for committing the rendered plan alongside
infrastructure code.

Examples:
  seshat render                 # JSON plan
  seshat render --format yaml   # YAML plan`,
	RunE: renderCommand,
}

const formatFlag = "format"

var renderFlags = map[string]cobraflags.Flag{
	formatFlag: &cobraflags.StringFlag{
		Name:  formatFlag,
		Value: "json",
		Usage: "Output format (json, yaml)",
	},
}

func NewRenderCommand() *cobra.Command {
	cobraflags.RegisterMap(renderCmd, renderFlags)
	return renderCmd
}

func renderCommand(_ *cobra.Command, _ []string) error {
	db := catalog.Database()
	if err := db.Validate(); err != nil {
		return fmt.Errorf("catalog definition is invalid: %w", err)
	}

	switch format := strings.ToLower(renderFlags[formatFlag].GetString()); format {
	case "json":
		out, err := renderer.RenderJSON(db)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	case "yaml":
		out, err := renderer.RenderYAML(db)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
