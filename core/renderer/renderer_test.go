package renderer_test

import (
	"encoding/json"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/stokaro/seshat/core/docschema"
	"github.com/stokaro/seshat/core/renderer"
)

func intPtr(n int) *int { return &n }

func testDatabase() *docschema.Database {
	return &docschema.Database{
		Name: "eventhub",
		Collections: []docschema.Collection{
			{Name: "events", ValidationLevel: "moderate", ValidationAction: "error"},
		},
		Fields: []docschema.Field{
			{CollectionName: "events", Name: "title", Type: docschema.TypeString, Required: true},
			{CollectionName: "events", Name: "visibility", Type: docschema.TypeString, Required: true, Enum: []string{"public", "private", "unlisted"}},
			{CollectionName: "events", Name: "capacity", Type: docschema.TypeInt, Required: true, Minimum: intPtr(0)},
			{CollectionName: "events", Name: "tags", Type: docschema.TypeArray, ArrayOf: docschema.TypeString},
			{
				CollectionName: "events",
				Name:           "location",
				Type:           docschema.TypeObject,
				Required:       true,
				Properties: []docschema.Property{
					{Name: "name", Type: docschema.TypeString, Required: true},
					{Name: "lat", Type: docschema.TypeDouble},
					{Name: "lng", Type: docschema.TypeDouble},
				},
			},
		},
		Indexes: []docschema.Index{
			{
				CollectionName: "events",
				Name:           "idx_events_status_visibility",
				Keys:           []docschema.IndexKey{{Field: "visibility", Order: 1}, {Field: "title", Order: -1}},
			},
		},
	}
}

func TestValidator(t *testing.T) {
	c := qt.New(t)

	db := testDatabase()
	validator := renderer.Validator(db.CollectionFields("events"))
	c.Assert(validator, qt.Not(qt.IsNil))

	schema, ok := validator["$jsonSchema"].(map[string]any)
	c.Assert(ok, qt.IsTrue)
	c.Assert(schema["bsonType"], qt.Equals, "object")

	// Required list is sorted for deterministic output.
	c.Assert(schema["required"], qt.DeepEquals, []string{"capacity", "location", "title", "visibility"})

	properties, ok := schema["properties"].(map[string]any)
	c.Assert(ok, qt.IsTrue)
	c.Assert(properties, qt.HasLen, 5)

	visibility := properties["visibility"].(map[string]any)
	c.Assert(visibility["enum"], qt.DeepEquals, []string{"public", "private", "unlisted"})

	capacity := properties["capacity"].(map[string]any)
	c.Assert(capacity["bsonType"], qt.Equals, "int")
	c.Assert(capacity["minimum"], qt.Equals, 0)

	tags := properties["tags"].(map[string]any)
	c.Assert(tags["items"], qt.DeepEquals, map[string]any{"bsonType": "string"})

	location := properties["location"].(map[string]any)
	c.Assert(location["required"], qt.DeepEquals, []string{"name"})
	nested := location["properties"].(map[string]any)
	c.Assert(nested["lat"], qt.DeepEquals, map[string]any{"bsonType": "double"})
}

func TestValidator_NoFields(t *testing.T) {
	c := qt.New(t)

	c.Assert(renderer.Validator(nil), qt.IsNil)
}

func TestPlan(t *testing.T) {
	c := qt.New(t)

	plans := renderer.Plan(testDatabase())
	c.Assert(plans, qt.HasLen, 1)
	c.Assert(plans[0].Name, qt.Equals, "events")
	c.Assert(plans[0].ValidationLevel, qt.Equals, "moderate")
	c.Assert(plans[0].ValidationAction, qt.Equals, "error")
	c.Assert(plans[0].Indexes, qt.HasLen, 1)
	c.Assert(plans[0].Indexes[0].Name, qt.Equals, "idx_events_status_visibility")
	// Key order within a compound index is meaningful and must be preserved.
	c.Assert(plans[0].Indexes[0].Keys, qt.DeepEquals, []renderer.KeyPlan{
		{Field: "visibility", Order: 1},
		{Field: "title", Order: -1},
	})
}

func TestRenderJSON_Deterministic(t *testing.T) {
	c := qt.New(t)

	db := testDatabase()
	first, err := renderer.RenderJSON(db)
	c.Assert(err, qt.IsNil)
	second, err := renderer.RenderJSON(db)
	c.Assert(err, qt.IsNil)
	c.Assert(first, qt.Equals, second)

	var decoded []map[string]any
	c.Assert(json.Unmarshal([]byte(first), &decoded), qt.IsNil)
	c.Assert(decoded, qt.HasLen, 1)
	c.Assert(decoded[0]["name"], qt.Equals, "events")
}

func TestRenderYAML(t *testing.T) {
	c := qt.New(t)

	out, err := renderer.RenderYAML(testDatabase())
	c.Assert(err, qt.IsNil)
	c.Assert(strings.Contains(out, "name: events"), qt.IsTrue)
	c.Assert(strings.Contains(out, "idx_events_status_visibility"), qt.IsTrue)
	c.Assert(strings.Contains(out, "$jsonSchema"), qt.IsTrue)
}
