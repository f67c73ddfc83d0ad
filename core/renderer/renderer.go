// Package renderer converts docschema definitions into the documents MongoDB
// consumes: $jsonSchema validators for collection options and key documents
// for index creation. It also renders the whole provisioning plan as JSON or
// YAML for operator inspection.
package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/stokaro/seshat/core/docschema"
)

// Validator builds the validator document for one collection:
//
//	{"$jsonSchema": {"bsonType": "object", "required": [...], "properties": {...}}}
//
// Plain maps are used throughout; the server does not care about key order and
// both JSON and YAML encoders emit map keys sorted, so rendered output stays
// deterministic. Returns nil when the collection declares no fields.
func Validator(fields []docschema.Field) map[string]any {
	if len(fields) == 0 {
		return nil
	}

	var required []string
	properties := make(map[string]any, len(fields))
	for _, f := range fields {
		if f.Required {
			required = append(required, f.Name)
		}
		properties[f.Name] = property(f)
	}
	sort.Strings(required)

	schema := map[string]any{
		"bsonType":   "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return map[string]any{"$jsonSchema": schema}
}

func property(f docschema.Field) map[string]any {
	p := map[string]any{"bsonType": f.Type}
	if len(f.Enum) > 0 {
		p["enum"] = append([]string(nil), f.Enum...)
	}
	if f.Pattern != "" {
		p["pattern"] = f.Pattern
	}
	if f.Minimum != nil {
		p["minimum"] = *f.Minimum
	}
	if f.Type == docschema.TypeArray && f.ArrayOf != "" {
		p["items"] = map[string]any{"bsonType": f.ArrayOf}
	}
	if f.Type == docschema.TypeObject && len(f.Properties) > 0 {
		nested := make(map[string]any, len(f.Properties))
		var nestedRequired []string
		for _, member := range f.Properties {
			nested[member.Name] = map[string]any{"bsonType": member.Type}
			if member.Required {
				nestedRequired = append(nestedRequired, member.Name)
			}
		}
		sort.Strings(nestedRequired)
		p["properties"] = nested
		if len(nestedRequired) > 0 {
			p["required"] = nestedRequired
		}
	}
	if f.Description != "" {
		p["description"] = f.Description
	}
	return p
}

// CollectionPlan is the renderable provisioning plan for one collection.
type CollectionPlan struct {
	Name             string         `json:"name" yaml:"name"`
	ValidationLevel  string         `json:"validation_level,omitempty" yaml:"validation_level,omitempty"`
	ValidationAction string         `json:"validation_action,omitempty" yaml:"validation_action,omitempty"`
	Validator        map[string]any `json:"validator,omitempty" yaml:"validator,omitempty"`
	Indexes          []IndexPlan    `json:"indexes" yaml:"indexes"`
}

// IndexPlan is the renderable form of one declared index.
type IndexPlan struct {
	Name      string               `json:"name" yaml:"name"`
	Keys      []KeyPlan            `json:"keys" yaml:"keys"`
	Unique    bool                 `json:"unique,omitempty" yaml:"unique,omitempty"`
	Collation *docschema.Collation `json:"collation,omitempty" yaml:"collation,omitempty"`
}

// KeyPlan is a single index key component, order preserved.
type KeyPlan struct {
	Field string `json:"field" yaml:"field"`
	Order int    `json:"order" yaml:"order"`
}

// Plan renders the full database definition into per-collection plans, in
// catalog declaration order.
func Plan(db *docschema.Database) []CollectionPlan {
	plans := make([]CollectionPlan, 0, len(db.Collections))
	for _, col := range db.Collections {
		plan := CollectionPlan{
			Name:             col.Name,
			ValidationLevel:  col.ValidationLevel,
			ValidationAction: col.ValidationAction,
			Validator:        Validator(db.CollectionFields(col.Name)),
		}
		for _, idx := range db.CollectionIndexes(col.Name) {
			ip := IndexPlan{Name: idx.Name, Unique: idx.Unique}
			for _, key := range idx.Keys {
				ip.Keys = append(ip.Keys, KeyPlan{Field: key.Field, Order: key.Order})
			}
			if idx.Collation != nil {
				collation := *idx.Collation
				ip.Collation = &collation
			}
			plan.Indexes = append(plan.Indexes, ip)
		}
		plans = append(plans, plan)
	}
	return plans
}

// RenderJSON renders the provisioning plan as indented JSON.
func RenderJSON(db *docschema.Database) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Plan(db)); err != nil {
		return "", fmt.Errorf("failed to render plan as JSON: %w", err)
	}
	return buf.String(), nil
}

// RenderYAML renders the provisioning plan as YAML.
func RenderYAML(db *docschema.Database) (string, error) {
	out, err := yaml.Marshal(Plan(db))
	if err != nil {
		return "", fmt.Errorf("failed to render plan as YAML: %w", err)
	}
	return string(out), nil
}
