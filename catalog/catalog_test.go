package catalog_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/stokaro/seshat/catalog"
	"github.com/stokaro/seshat/core/docschema"
	"github.com/stokaro/seshat/core/platform"
)

func TestDatabase_WellFormed(t *testing.T) {
	c := qt.New(t)

	db := catalog.Database()
	c.Assert(db.Name, qt.Equals, "eventhub")
	c.Assert(db.Validate(), qt.IsNil)
}

func TestDatabase_CollectionOrder(t *testing.T) {
	c := qt.New(t)

	db := catalog.Database()
	var names []string
	for _, col := range db.Collections {
		names = append(names, col.Name)
	}
	c.Assert(names, qt.DeepEquals, []string{"users", "events", "rsvps", "attendees"})
}

func TestDatabase_ValidationDefaults(t *testing.T) {
	c := qt.New(t)

	for _, col := range catalog.Database().Collections {
		c.Assert(col.ValidationLevel, qt.Equals, platform.ValidationLevelModerate, qt.Commentf("collection %q", col.Name))
		c.Assert(col.ValidationAction, qt.Equals, platform.ValidationActionError, qt.Commentf("collection %q", col.Name))
	}
}

func TestDatabase_StableIndexNames(t *testing.T) {
	c := qt.New(t)

	db := catalog.Database()
	expected := map[string][]string{
		"users":     {"uniq_users_email", "idx_users_status"},
		"events":    {"idx_events_organizer", "idx_events_start_time", "idx_events_status_visibility"},
		"rsvps":     {"uniq_rsvps_event_user", "idx_rsvps_user", "idx_rsvps_event_status"},
		"attendees": {"uniq_attendees_event_user", "idx_attendees_event_status", "idx_attendees_user"},
	}

	for collection, want := range expected {
		var got []string
		for _, idx := range db.CollectionIndexes(collection) {
			got = append(got, idx.Name)
		}
		c.Assert(got, qt.DeepEquals, want, qt.Commentf("collection %q", collection))
	}
}

func TestDatabase_UniqueConstraints(t *testing.T) {
	c := qt.New(t)

	db := catalog.Database()

	byName := make(map[string]docschema.Index)
	for _, idx := range db.Indexes {
		byName[idx.Name] = idx
	}

	email := byName["uniq_users_email"]
	c.Assert(email.Unique, qt.IsTrue)
	c.Assert(email.Keys, qt.DeepEquals, []docschema.IndexKey{{Field: "email", Order: 1}})
	c.Assert(email.Collation, qt.Not(qt.IsNil))
	c.Assert(email.Collation.Strength, qt.Equals, 2)

	for _, name := range []string{"uniq_rsvps_event_user", "uniq_attendees_event_user"} {
		idx := byName[name]
		c.Assert(idx.Unique, qt.IsTrue, qt.Commentf("index %q", name))
		c.Assert(idx.Keys, qt.DeepEquals, []docschema.IndexKey{
			{Field: "eventId", Order: 1},
			{Field: "userId", Order: 1},
		}, qt.Commentf("index %q", name))
	}
}

func TestDatabase_RequiredFields(t *testing.T) {
	c := qt.New(t)

	db := catalog.Database()

	required := func(collection string) []string {
		var names []string
		for _, f := range db.CollectionFields(collection) {
			if f.Required {
				names = append(names, f.Name)
			}
		}
		return names
	}

	c.Assert(required("users"), qt.DeepEquals, []string{
		"email", "name", "passwordHash", "roles", "status", "createdAt", "updatedAt",
	})
	c.Assert(required("events"), qt.DeepEquals, []string{
		"title", "description", "organizerId", "location", "startTime", "endTime",
		"visibility", "capacity", "status", "createdAt", "updatedAt",
	})
	c.Assert(required("rsvps"), qt.DeepEquals, []string{
		"eventId", "userId", "status", "guests", "createdAt", "updatedAt",
	})
	c.Assert(required("attendees"), qt.DeepEquals, []string{
		"eventId", "userId", "attendeeStatus", "userName", "userEmail", "createdAt", "updatedAt",
	})
}

func TestDatabase_EnumFields(t *testing.T) {
	c := qt.New(t)

	db := catalog.Database()

	enums := make(map[string][]string)
	for _, f := range db.Fields {
		if len(f.Enum) > 0 {
			enums[f.CollectionName+"."+f.Name] = f.Enum
		}
	}

	c.Assert(enums, qt.DeepEquals, map[string][]string{
		"users.status":             {"active", "disabled"},
		"events.visibility":        {"public", "private", "unlisted"},
		"events.status":            {"draft", "published", "cancelled"},
		"rsvps.status":             {"yes", "no", "maybe", "waitlist"},
		"attendees.attendeeStatus": {"confirmed", "waitlisted", "checked_in", "cancelled"},
	})
}

func TestDatabase_NoSoftDeleteFieldDeclared(t *testing.T) {
	c := qt.New(t)

	// The supplementary deletedAt index is created by the reconciler outside
	// the catalog; no validator declares the field.
	for _, f := range catalog.Database().Fields {
		c.Assert(f.Name, qt.Not(qt.Equals), "deletedAt")
	}
}
