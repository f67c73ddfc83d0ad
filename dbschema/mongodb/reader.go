// Package mongodb implements the schema reader and writer against a live
// MongoDB database using the official driver.
package mongodb

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stokaro/seshat/dbschema/types"
)

// Reader reads schema state from a MongoDB database.
type Reader struct {
	db *mongo.Database
}

// NewReader creates a new MongoDB schema reader bound to the given database.
func NewReader(db *mongo.Database) *Reader {
	return &Reader{db: db}
}

// ReadSchema reads every collection together with its validator options and
// secondary indexes. Views are skipped, as is the implicit _id_ index.
// Collections and indexes are sorted by name for consistent output.
func (r *Reader) ReadSchema(ctx context.Context) (*types.DBSchema, error) {
	specs, err := r.db.ListCollectionSpecifications(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	schema := &types.DBSchema{}
	for _, spec := range specs {
		if spec.Type == "view" {
			continue
		}

		col := types.DBCollection{Name: spec.Name}
		if len(spec.Options) > 0 {
			var opts struct {
				Validator        map[string]any `bson:"validator"`
				ValidationLevel  string         `bson:"validationLevel"`
				ValidationAction string         `bson:"validationAction"`
			}
			if err := bson.Unmarshal(spec.Options, &opts); err != nil {
				return nil, fmt.Errorf("failed to decode options of collection %q: %w", spec.Name, err)
			}
			col.Validator = opts.Validator
			col.ValidationLevel = opts.ValidationLevel
			col.ValidationAction = opts.ValidationAction
		}

		indexes, err := r.readIndexes(ctx, spec.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to read indexes of collection %q: %w", spec.Name, err)
		}
		col.Indexes = indexes

		schema.Collections = append(schema.Collections, col)
	}

	sort.Slice(schema.Collections, func(i, j int) bool {
		return schema.Collections[i].Name < schema.Collections[j].Name
	})
	return schema, nil
}

func (r *Reader) readIndexes(ctx context.Context, collection string) ([]types.DBIndex, error) {
	specs, err := r.db.Collection(collection).Indexes().ListSpecifications(ctx)
	if err != nil {
		return nil, err
	}

	var indexes []types.DBIndex
	for _, spec := range specs {
		// The _id_ index exists on every collection and is never declared.
		if spec.Name == "_id_" {
			continue
		}

		keys, err := decodeIndexKeys(spec.KeysDocument)
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", spec.Name, err)
		}

		idx := types.DBIndex{Name: spec.Name, Keys: keys}
		if spec.Unique != nil {
			idx.Unique = *spec.Unique
		}
		indexes = append(indexes, idx)
	}

	sort.Slice(indexes, func(i, j int) bool {
		return indexes[i].Name < indexes[j].Name
	})
	return indexes, nil
}

// decodeIndexKeys converts a key document such as {eventId: 1, userId: 1} into
// ordered key components. The server reports key orders as int32, int64 or
// double depending on how the index was created.
func decodeIndexKeys(doc bson.Raw) ([]types.DBIndexKey, error) {
	elements, err := doc.Elements()
	if err != nil {
		return nil, fmt.Errorf("failed to decode key document: %w", err)
	}

	keys := make([]types.DBIndexKey, 0, len(elements))
	for _, elem := range elements {
		var order int
		switch value := elem.Value(); value.Type {
		case bson.TypeInt32:
			order = int(value.Int32())
		case bson.TypeInt64:
			order = int(value.Int64())
		case bson.TypeDouble:
			order = int(value.Double())
		default:
			return nil, fmt.Errorf("key %q has unsupported order type %s", elem.Key(), value.Type)
		}
		keys = append(keys, types.DBIndexKey{Field: elem.Key(), Order: order})
	}
	return keys, nil
}
