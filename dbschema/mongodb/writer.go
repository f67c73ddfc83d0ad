package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stokaro/seshat/dbschema/types"
)

// Writer applies schema state to a MongoDB database. In dry-run mode every
// operation is logged and skipped, leaving the database untouched.
type Writer struct {
	db     *mongo.Database
	dryRun bool
	logger *slog.Logger
}

// NewWriter creates a new MongoDB schema writer bound to the given database.
func NewWriter(db *mongo.Database) *Writer {
	return &Writer{
		db:     db,
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the writer.
func (w *Writer) WithLogger(l *slog.Logger) *Writer {
	tmp := *w
	tmp.logger = l
	return &tmp
}

// SetDryRun toggles dry-run mode.
func (w *Writer) SetDryRun(dryRun bool) {
	w.dryRun = dryRun
}

// IsDryRun reports whether the writer is in dry-run mode.
func (w *Writer) IsDryRun() bool {
	return w.dryRun
}

// CreateCollection creates the collection, attaching the validator with the
// given level and action when one is supplied.
func (w *Writer) CreateCollection(ctx context.Context, name string, validator map[string]any, level, action string) error {
	if w.dryRun {
		w.logger.Info("Dry run: would create collection", "collection", name, "hasValidator", validator != nil)
		return nil
	}

	opts := options.CreateCollection()
	if validator != nil {
		opts.SetValidator(validator)
		opts.SetValidationLevel(level)
		opts.SetValidationAction(action)
	}
	if err := w.db.CreateCollection(ctx, name, opts); err != nil {
		return fmt.Errorf("failed to create collection %q: %w", name, err)
	}
	return nil
}

// UpdateValidator modifies the validator of an existing collection in place
// via collMod.
func (w *Writer) UpdateValidator(ctx context.Context, name string, validator map[string]any, level, action string) error {
	if w.dryRun {
		w.logger.Info("Dry run: would update validator", "collection", name)
		return nil
	}

	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: level},
		{Key: "validationAction", Value: action},
	}
	if err := w.db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("failed to update validator of collection %q: %w", name, err)
	}
	return nil
}

// EnsureIndexes creates all listed indexes in one batch. The server treats
// creation of an index whose name and keys already match as a no-op, which is
// what makes repeated runs safe.
func (w *Writer) EnsureIndexes(ctx context.Context, collection string, specs []types.IndexSpec) error {
	if len(specs) == 0 {
		return nil
	}
	if w.dryRun {
		w.logger.Info("Dry run: would ensure indexes", "collection", collection, "count", len(specs))
		return nil
	}

	models := make([]mongo.IndexModel, 0, len(specs))
	for _, spec := range specs {
		keys := make(bson.D, 0, len(spec.Keys))
		for _, key := range spec.Keys {
			keys = append(keys, bson.E{Key: key.Field, Value: key.Order})
		}

		opts := options.Index().SetName(spec.Name)
		if spec.Unique {
			opts.SetUnique(true)
		}
		if spec.Collation != nil {
			opts.SetCollation(&options.Collation{
				Locale:   spec.Collation.Locale,
				Strength: spec.Collation.Strength,
			})
		}
		models = append(models, mongo.IndexModel{Keys: keys, Options: opts})
	}

	if _, err := w.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create indexes on collection %q: %w", collection, err)
	}
	return nil
}

// EnsureSoftDeleteIndex creates the supplementary deletedAt index. No field
// declares deletedAt in any validator; the index is speculative and callers
// treat its failure as ignorable.
func (w *Writer) EnsureSoftDeleteIndex(ctx context.Context, collection string) error {
	if w.dryRun {
		w.logger.Info("Dry run: would ensure soft-delete index", "collection", collection)
		return nil
	}

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "deletedAt", Value: 1}},
		Options: options.Index().SetName(fmt.Sprintf("idx_%s_deleted_at", collection)),
	}
	if _, err := w.db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create soft-delete index on collection %q: %w", collection, err)
	}
	return nil
}
