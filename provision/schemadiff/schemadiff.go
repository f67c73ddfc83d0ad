// Package schemadiff computes drift between the catalog definition and the
// schema state read from a live database. The diff is purely informational:
// the reconciler applies the catalog directly, and the status command renders
// the diff for operators.
package schemadiff

import (
	"github.com/stokaro/seshat/config"
	"github.com/stokaro/seshat/core/docschema"
	"github.com/stokaro/seshat/dbschema/types"
	"github.com/stokaro/seshat/provision/schemadiff/internal/compare"
	difftypes "github.com/stokaro/seshat/provision/schemadiff/types"
)

// Compare performs schema comparison between the target definition and the
// database state using default options (the best-effort soft-delete indexes
// are excluded from the report). For custom configuration, use
// CompareWithOptions.
func Compare(target *docschema.Database, database *types.DBSchema) *difftypes.SchemaDiff {
	return CompareWithOptions(target, database, nil)
}

// CompareWithOptions performs schema comparison between the target definition
// and the database state with custom configuration options.
//
// Parameters:
//   - target: declared collection definitions (the catalog)
//   - database: current state from database introspection
//   - opts: configuration options for comparison (can be nil for defaults)
//
// Returns a SchemaDiff containing all identified differences.
func CompareWithOptions(target *docschema.Database, database *types.DBSchema, opts *config.CompareOptions) *difftypes.SchemaDiff {
	diff := &difftypes.SchemaDiff{}

	// Compare collection existence
	compare.Collections(target, database, diff)

	// Compare validator documents and validation levels/actions
	compare.Validators(target, database, diff)

	// Compare index sets by stable name, with configured exclusions
	compare.Indexes(target, database, diff, opts)

	return diff
}
