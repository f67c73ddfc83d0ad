// Package catalog holds the fixed collection definitions for the eventhub
// database: users, events, rsvps and attendees. The definitions are the single
// source of truth the reconciler applies; each collection lives in its own
// file since the data tables dominate this package.
package catalog

import (
	"github.com/stokaro/seshat/core/docschema"
)

// DatabaseName is the default target database. The CLI can point a run at a
// different database for testing.
const DatabaseName = "eventhub"

type definition struct {
	collection docschema.Collection
	fields     []docschema.Field
	indexes    []docschema.Index
}

// Database returns the complete target definition. Collections are declared in
// a fixed order (users, events, rsvps, attendees); the order is cosmetic, as
// referential fields between them are documentation-level only and never
// enforced by the server.
func Database() *docschema.Database {
	db := &docschema.Database{Name: DatabaseName}
	for _, def := range []definition{users(), events(), rsvps(), attendees()} {
		db.Collections = append(db.Collections, def.collection)
		db.Fields = append(db.Fields, def.fields...)
		db.Indexes = append(db.Indexes, def.indexes...)
	}
	return db
}

// nonNegative is the lower bound shared by every counting field.
func nonNegative() *int {
	zero := 0
	return &zero
}
