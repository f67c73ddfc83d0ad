package compare

import (
	"reflect"
	"sort"

	"github.com/stokaro/seshat/config"
	"github.com/stokaro/seshat/core/docschema"
	"github.com/stokaro/seshat/core/renderer"
	"github.com/stokaro/seshat/dbschema/types"
	"github.com/stokaro/seshat/provision/schemadiff/internal/normalize"
	difftypes "github.com/stokaro/seshat/provision/schemadiff/types"
)

// Collections identifies collections present on only one side.
//
// Results are sorted alphabetically for consistent output across runs.
func Collections(target *docschema.Database, database *types.DBSchema, diff *difftypes.SchemaDiff) {
	dbCollections := make(map[string]types.DBCollection)
	for _, col := range database.Collections {
		dbCollections[col.Name] = col
	}

	for _, col := range target.Collections {
		if _, exists := dbCollections[col.Name]; !exists {
			diff.CollectionsAdded = append(diff.CollectionsAdded, col.Name)
		}
	}

	for _, col := range database.Collections {
		if !target.HasCollection(col.Name) {
			diff.CollectionsRemoved = append(diff.CollectionsRemoved, col.Name)
		}
	}

	sort.Strings(diff.CollectionsAdded)
	sort.Strings(diff.CollectionsRemoved)
}

// Validators compares validation setup for collections present on both sides.
// Validator documents are normalized before deep comparison, so differences in
// BSON decoding shape or numeric width do not register as drift.
func Validators(target *docschema.Database, database *types.DBSchema, diff *difftypes.SchemaDiff) {
	for _, col := range target.Collections {
		dbCol, exists := database.Collection(col.Name)
		if !exists {
			continue
		}

		vdiff := difftypes.ValidatorDiff{CollectionName: col.Name}

		targetValidator := normalize.Value(renderer.Validator(target.CollectionFields(col.Name)))
		dbValidator := normalize.Value(dbCol.Validator)
		if !reflect.DeepEqual(targetValidator, dbValidator) {
			vdiff.ValidatorChanged = true
		}
		if col.ValidationLevel != "" && col.ValidationLevel != dbCol.ValidationLevel {
			vdiff.LevelChanged = &difftypes.ValueChange{Old: dbCol.ValidationLevel, New: col.ValidationLevel}
		}
		if col.ValidationAction != "" && col.ValidationAction != dbCol.ValidationAction {
			vdiff.ActionChanged = &difftypes.ValueChange{Old: dbCol.ValidationAction, New: col.ValidationAction}
		}

		if vdiff.ValidatorChanged || vdiff.LevelChanged != nil || vdiff.ActionChanged != nil {
			diff.ValidatorsModified = append(diff.ValidatorsModified, vdiff)
		}
	}

	sort.Slice(diff.ValidatorsModified, func(i, j int) bool {
		return diff.ValidatorsModified[i].CollectionName < diff.ValidatorsModified[j].CollectionName
	})
}

// Indexes identifies indexes present on only one side, by stable name.
// Indexes matching an ignored suffix (the best-effort soft-delete indexes by
// default) are excluded entirely.
func Indexes(target *docschema.Database, database *types.DBSchema, diff *difftypes.SchemaDiff, opts *config.CompareOptions) {
	if opts == nil {
		opts = config.DefaultCompareOptions()
	}

	dbIndexes := make(map[string]types.DBIndex)
	for _, col := range database.Collections {
		for _, idx := range col.Indexes {
			dbIndexes[idx.Name] = idx
		}
	}

	targetIndexes := make(map[string]docschema.Index)
	for _, idx := range target.Indexes {
		targetIndexes[idx.Name] = idx
	}

	for name := range targetIndexes {
		if _, exists := dbIndexes[name]; !exists && !opts.IsIndexIgnored(name) {
			diff.IndexesAdded = append(diff.IndexesAdded, name)
		}
	}

	for name := range dbIndexes {
		if _, exists := targetIndexes[name]; !exists && !opts.IsIndexIgnored(name) {
			diff.IndexesRemoved = append(diff.IndexesRemoved, name)
		}
	}

	sort.Strings(diff.IndexesAdded)
	sort.Strings(diff.IndexesRemoved)
}
