package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stokaro/seshat/catalog"
	"github.com/stokaro/seshat/dbschema"
	"github.com/stokaro/seshat/provision/reconciler"
	"github.com/stokaro/seshat/provision/schemadiff"
)

const documentValidationFailure = 121

func provisionDatabase(c *qt.C, conn *dbschema.DatabaseConnection) reconciler.Results {
	c.Helper()

	results, err := reconciler.NewFromConnection(conn, nil).Run(context.Background(), catalog.Database())
	c.Assert(err, qt.IsNil)
	return results
}

// validUser returns a document satisfying the users validator.
func validUser(email string) bson.M {
	now := time.Now().UTC()
	return bson.M{
		"email":        email,
		"name":         "Ada Lovelace",
		"passwordHash": "$2a$10$notarealhashbutlookslikeone",
		"roles":        []string{"member"},
		"status":       "active",
		"createdAt":    now,
		"updatedAt":    now,
	}
}

func validEvent(visibility string) bson.M {
	now := time.Now().UTC()
	return bson.M{
		"title":       "Launch party",
		"description": "Doors at seven.",
		"organizerId": primitive.NewObjectID(),
		"location":    bson.M{"name": "Main hall"},
		"startTime":   now.Add(24 * time.Hour),
		"endTime":     now.Add(26 * time.Hour),
		"visibility":  visibility,
		"capacity":    100,
		"status":      "published",
		"createdAt":   now,
		"updatedAt":   now,
	}
}

func isValidationError(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		return we.HasErrorCode(documentValidationFailure)
	}
	return false
}

func TestProvision_FreshDatabase(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	conn := newConn(t, "seshat_it_fresh")
	results := provisionDatabase(c, conn)

	c.Assert(results, qt.HasLen, 4)
	for _, result := range results {
		c.Assert(result.Outcome, qt.Equals, reconciler.OutcomeCreated, qt.Commentf("collection %q", result.Collection))
	}

	schema, err := conn.Reader().ReadSchema(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(schema.Collections, qt.HasLen, 4)

	for _, col := range schema.Collections {
		c.Assert(col.Validator, qt.Not(qt.IsNil), qt.Commentf("collection %q", col.Name))
		c.Assert(col.ValidationLevel, qt.Equals, "moderate", qt.Commentf("collection %q", col.Name))
		c.Assert(col.ValidationAction, qt.Equals, "error", qt.Commentf("collection %q", col.Name))
	}

	// Every declared index exists under its stable name, and no drift remains.
	diff := schemadiff.Compare(catalog.Database(), schema)
	c.Assert(diff.HasChanges(), qt.IsFalse, qt.Commentf("diff: %+v", diff))

	// The best-effort soft-delete indexes exist too.
	users, found := schema.Collection("users")
	c.Assert(found, qt.IsTrue)
	var names []string
	for _, idx := range users.Indexes {
		names = append(names, idx.Name)
	}
	c.Assert(names, qt.Contains, "idx_users_deleted_at")
}

func TestProvision_Idempotent(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	conn := newConn(t, "seshat_it_idempotent")

	provisionDatabase(c, conn)
	first, err := conn.Reader().ReadSchema(ctx)
	c.Assert(err, qt.IsNil)

	// The second run must not raise any error and must not create anything new.
	results := provisionDatabase(c, conn)
	for _, result := range results {
		c.Assert(result.Outcome, qt.Equals, reconciler.OutcomeUpdated, qt.Commentf("collection %q", result.Collection))
	}

	second, err := conn.Reader().ReadSchema(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(second, qt.DeepEquals, first)
}

func TestProvision_ValidatorEnforcement(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	conn := newConn(t, "seshat_it_validator")
	provisionDatabase(c, conn)

	users := conn.Database().Collection("users")

	// Missing email must be rejected.
	doc := validUser("ada@example.com")
	delete(doc, "email")
	_, err := users.InsertOne(ctx, doc)
	c.Assert(isValidationError(err), qt.IsTrue, qt.Commentf("got error: %v", err))

	// A complete document with a syntactically valid email must succeed.
	_, err = users.InsertOne(ctx, validUser("ada@example.com"))
	c.Assert(err, qt.IsNil)

	// A malformed email must be rejected by the pattern check.
	_, err = users.InsertOne(ctx, validUser("not-an-email"))
	c.Assert(isValidationError(err), qt.IsTrue, qt.Commentf("got error: %v", err))
}

func TestProvision_EnumEnforcement(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	conn := newConn(t, "seshat_it_enum")
	provisionDatabase(c, conn)

	events := conn.Database().Collection("events")

	_, err := events.InsertOne(ctx, validEvent("public"))
	c.Assert(err, qt.IsNil)

	_, err = events.InsertOne(ctx, validEvent("secret"))
	c.Assert(isValidationError(err), qt.IsTrue, qt.Commentf("got error: %v", err))
}

func TestProvision_UniqueIndexes(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	conn := newConn(t, "seshat_it_unique")
	provisionDatabase(c, conn)

	now := time.Now().UTC()
	rsvp := bson.M{
		"eventId":   primitive.NewObjectID(),
		"userId":    primitive.NewObjectID(),
		"status":    "yes",
		"guests":    1,
		"createdAt": now,
		"updatedAt": now,
	}

	rsvps := conn.Database().Collection("rsvps")

	_, err := rsvps.InsertOne(ctx, rsvp)
	c.Assert(err, qt.IsNil)

	// Identical (eventId, userId) must fail with a duplicate-key error.
	_, err = rsvps.InsertOne(ctx, rsvp)
	c.Assert(mongo.IsDuplicateKeyError(err), qt.IsTrue, qt.Commentf("got error: %v", err))

	// Case-insensitive email uniqueness on users.
	users := conn.Database().Collection("users")
	_, err = users.InsertOne(ctx, validUser("Grace@Example.com"))
	c.Assert(err, qt.IsNil)
	_, err = users.InsertOne(ctx, validUser("grace@example.com"))
	c.Assert(mongo.IsDuplicateKeyError(err), qt.IsTrue, qt.Commentf("got error: %v", err))
}

func TestProvision_PreExistingCollection(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	conn := newConn(t, "seshat_it_preexisting")

	// A users collection that predates provisioning, holding a document that
	// violates the declared schema.
	_, err := conn.Database().Collection("users").InsertOne(ctx, bson.M{"legacy": true})
	c.Assert(err, qt.IsNil)

	results := provisionDatabase(c, conn)

	// The pre-existing collection gets its validator attached in place.
	c.Assert(results[0].Collection, qt.Equals, "users")
	c.Assert(results[0].Outcome, qt.Equals, reconciler.OutcomeUpdated)
	for _, result := range results[1:] {
		c.Assert(result.Outcome, qt.Equals, reconciler.OutcomeCreated, qt.Commentf("collection %q", result.Collection))
	}

	users := conn.Database().Collection("users")

	// Moderate level: the invalid legacy document stays and can still be
	// touched without triggering validation.
	_, err = users.UpdateOne(ctx, bson.M{"legacy": true}, bson.M{"$set": bson.M{"migrated": false}})
	c.Assert(err, qt.IsNil)

	// New writes are validated.
	_, err = users.InsertOne(ctx, bson.M{"also_legacy": true})
	c.Assert(isValidationError(err), qt.IsTrue, qt.Commentf("got error: %v", err))
	_, err = users.InsertOne(ctx, validUser("fresh@example.com"))
	c.Assert(err, qt.IsNil)
}

func TestProvision_DryRunTouchesNothing(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()

	conn := newConn(t, "seshat_it_dryrun")

	conn.Writer().SetDryRun(true)
	results, err := reconciler.New(conn.Reader(), conn.Writer(), nil).Run(ctx, catalog.Database())
	c.Assert(err, qt.IsNil)
	c.Assert(results, qt.HasLen, 4)

	schema, err := conn.Reader().ReadSchema(ctx)
	c.Assert(err, qt.IsNil)
	c.Assert(schema.Collections, qt.HasLen, 0)
}
