package types

import "context"

// DBSchema represents the schema state read from a live MongoDB database.
type DBSchema struct {
	Collections []DBCollection `json:"collections"`
}

// DBCollection represents one collection as the server reports it.
type DBCollection struct {
	Name             string         `json:"name"`
	Validator        map[string]any `json:"validator,omitempty"`         // decoded $jsonSchema document, nil when none is attached
	ValidationLevel  string         `json:"validation_level,omitempty"`  // off, strict, moderate
	ValidationAction string         `json:"validation_action,omitempty"` // error, warn
	Indexes          []DBIndex      `json:"indexes"`
}

// DBIndex represents a secondary index as the server reports it. The implicit
// _id_ index is excluded by readers.
type DBIndex struct {
	Name   string       `json:"name"`
	Keys   []DBIndexKey `json:"keys"`
	Unique bool         `json:"is_unique"`
}

// DBIndexKey is one component of an index key document.
type DBIndexKey struct {
	Field string `json:"field"`
	Order int    `json:"order"` // 1 ascending, -1 descending
}

// Collection returns the named collection and whether it exists in the schema.
func (s *DBSchema) Collection(name string) (DBCollection, bool) {
	for _, col := range s.Collections {
		if col.Name == name {
			return col, true
		}
	}
	return DBCollection{}, false
}

// IndexSpec describes one index a writer should ensure. It mirrors
// docschema.Index but keeps this package free of a dependency on the
// definition model, so writers can be implemented and tested standalone.
type IndexSpec struct {
	Name      string
	Keys      []DBIndexKey
	Unique    bool
	Collation *Collation
}

// Collation narrows index comparison semantics (strength 2 = case-insensitive).
type Collation struct {
	Locale   string `json:"locale" yaml:"locale"`
	Strength int    `json:"strength" yaml:"strength"`
}

// DBInfo contains connection and server metadata.
type DBInfo struct {
	URL      string `json:"url"`      // connection URL with credentials redacted
	Database string `json:"database"` // target database name
	Version  string `json:"version"`  // server version, best-effort
}

// SchemaReader reads the current schema state from a database.
type SchemaReader interface {
	ReadSchema(ctx context.Context) (*DBSchema, error)
}

// SchemaWriter applies schema state to a database. Implementations must be
// idempotent per operation: ensuring an index that already exists under the
// same name and key specification is a no-op, not an error.
type SchemaWriter interface {
	// CreateCollection creates a new collection, attaching the validator with
	// the given level and action when validator is non-nil.
	CreateCollection(ctx context.Context, name string, validator map[string]any, level, action string) error
	// UpdateValidator modifies the validator of an existing collection in place.
	UpdateValidator(ctx context.Context, name string, validator map[string]any, level, action string) error
	// EnsureIndexes creates all listed indexes in one batch.
	EnsureIndexes(ctx context.Context, collection string, specs []IndexSpec) error
	// EnsureSoftDeleteIndex creates the supplementary deletedAt index.
	EnsureSoftDeleteIndex(ctx context.Context, collection string) error
	SetDryRun(dryRun bool)
	IsDryRun() bool
}
