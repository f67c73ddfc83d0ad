// Package docschema defines the core data structures used throughout the Seshat
// collection provisioning system. These types represent the declarative description
// of a MongoDB database — collections, document fields, and secondary indexes —
// that the reconciler applies against a live server.
package docschema

// BSON type aliases accepted in Field.Type, Field.ArrayOf and Property.Type.
// These are the aliases MongoDB's $jsonSchema dialect understands, not Go types.
const (
	TypeString   = "string"
	TypeObjectID = "objectId"
	TypeDate     = "date"
	TypeInt      = "int"
	TypeLong     = "long"
	TypeDouble   = "double"
	TypeBool     = "bool"
	TypeArray    = "array"
	TypeObject   = "object"
)

// knownTypes is the closed set of BSON type aliases a definition may use.
var knownTypes = map[string]bool{
	TypeString:   true,
	TypeObjectID: true,
	TypeDate:     true,
	TypeInt:      true,
	TypeLong:     true,
	TypeDouble:   true,
	TypeBool:     true,
	TypeArray:    true,
	TypeObject:   true,
}

// Database represents the complete target state for one MongoDB database.
//
// Collections, Fields and Indexes are flat lists; fields and indexes reference
// their owning collection by name. This keeps per-collection definition files
// trivially composable: each contributes its slice of every list and the
// catalog concatenates them.
type Database struct {
	Name        string
	Collections []Collection
	Fields      []Field
	Indexes     []Index
}

// Collection declares one collection together with its schema-validation
// behavior. Level and Action use the constants from core/platform; empty
// values fall back to the reconciler's configured defaults.
type Collection struct {
	Name             string
	Comment          string // human-readable purpose, not sent to the server
	ValidationLevel  string // off, strict, moderate
	ValidationAction string // error, warn
}

// Field represents one document property declaration within a collection's
// $jsonSchema validator.
//
//	Field{
//	    CollectionName: "users",
//	    Name:           "status",
//	    Type:           TypeString,
//	    Required:       true,
//	    Enum:           []string{"active", "disabled"},
//	}
type Field struct {
	CollectionName string
	Name           string
	Type           string     // BSON type alias (see Type* constants)
	Required       bool       // listed in the validator's required array
	Enum           []string   // allowed literals, for enum-constrained fields
	Pattern        string     // ECMA 262 regex, for pattern-checked strings
	Minimum        *int       // lower bound, for non-negative integer fields
	ArrayOf        string     // element type when Type == TypeArray
	Properties     []Property // nested members when Type == TypeObject
	Description    string     // embedded in the validator for server-side error messages
}

// Property is a member of a nested object field. One level of nesting is all
// the provisioned collections need (the events location object).
type Property struct {
	Name     string
	Type     string
	Required bool
}

// Index declares one secondary index with a stable name. Stable names are what
// make re-runs idempotent: creating an index whose name and key specification
// already exist is a no-op at the server.
type Index struct {
	CollectionName string
	Name           string
	Keys           []IndexKey
	Unique         bool
	Collation      *Collation
}

// IndexKey is a single component of a compound index key specification.
type IndexKey struct {
	Field string
	Order int // 1 ascending, -1 descending
}

// Collation narrows index comparison semantics. Strength 2 gives
// case-insensitive matching, which the users email index relies on.
type Collation struct {
	Locale   string
	Strength int
}

// CollectionFields returns the fields declared for the named collection,
// preserving declaration order.
func (d *Database) CollectionFields(collection string) []Field {
	var fields []Field
	for _, f := range d.Fields {
		if f.CollectionName == collection {
			fields = append(fields, f)
		}
	}
	return fields
}

// CollectionIndexes returns the indexes declared for the named collection,
// preserving declaration order.
func (d *Database) CollectionIndexes(collection string) []Index {
	var indexes []Index
	for _, idx := range d.Indexes {
		if idx.CollectionName == collection {
			indexes = append(indexes, idx)
		}
	}
	return indexes
}

// HasCollection reports whether the database declares a collection with the
// given name.
func (d *Database) HasCollection(name string) bool {
	for _, col := range d.Collections {
		if col.Name == name {
			return true
		}
	}
	return false
}
