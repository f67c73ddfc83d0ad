package normalize_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/stokaro/seshat/provision/schemadiff/internal/normalize"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{
			name:     "bson.D becomes map",
			input:    bson.D{{Key: "bsonType", Value: "object"}},
			expected: map[string]any{"bsonType": "object"},
		},
		{
			name:     "bson.M nested values are recursed",
			input:    bson.M{"properties": bson.M{"capacity": bson.M{"minimum": int32(0)}}},
			expected: map[string]any{"properties": map[string]any{"capacity": map[string]any{"minimum": int64(0)}}},
		},
		{
			name:     "primitive array",
			input:    bson.A{"active", "disabled"},
			expected: []any{"active", "disabled"},
		},
		{
			name:     "string slice",
			input:    []string{"email", "name"},
			expected: []any{"email", "name"},
		},
		{
			name:     "int widths collapse to int64",
			input:    map[string]any{"a": 1, "b": int32(1), "c": int64(1)},
			expected: map[string]any{"a": int64(1), "b": int64(1), "c": int64(1)},
		},
		{
			name:     "whole double folds to int64",
			input:    float64(0),
			expected: int64(0),
		},
		{
			name:     "fractional double stays double",
			input:    float64(0.5),
			expected: float64(0.5),
		},
		{
			name:     "strings pass through",
			input:    "moderate",
			expected: "moderate",
		},
		{
			name:     "nil passes through",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			c.Assert(normalize.Value(tt.input), qt.DeepEquals, tt.expected)
		})
	}
}

func TestValue_EquivalentDocumentsNormalizeEqually(t *testing.T) {
	c := qt.New(t)

	// The same validator decoded two different ways by the driver.
	asD := bson.D{
		{Key: "$jsonSchema", Value: bson.D{
			{Key: "bsonType", Value: "object"},
			{Key: "required", Value: bson.A{"email"}},
			{Key: "properties", Value: bson.D{
				{Key: "guests", Value: bson.D{{Key: "minimum", Value: float64(0)}}},
			}},
		}},
	}
	asM := map[string]any{
		"$jsonSchema": map[string]any{
			"bsonType": "object",
			"required": []string{"email"},
			"properties": map[string]any{
				"guests": map[string]any{"minimum": int32(0)},
			},
		},
	}

	c.Assert(normalize.Value(asD), qt.DeepEquals, normalize.Value(asM))
}
