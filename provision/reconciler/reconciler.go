// Package reconciler applies the declared collection definitions against a
// live database: for each collection it ensures existence with the declared
// validator, then ensures the declared indexes under their stable names.
// Re-running against an already provisioned database is a no-op.
package reconciler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stokaro/seshat/config"
	"github.com/stokaro/seshat/core/docschema"
	"github.com/stokaro/seshat/core/renderer"
	"github.com/stokaro/seshat/dbschema"
	"github.com/stokaro/seshat/dbschema/types"
)

// Reconciler drives one reconciliation run. Collections are processed
// sequentially in catalog order; there is no cross-collection dependency to
// respect, no transaction across the run, and no retry on any operation.
type Reconciler struct {
	reader types.SchemaReader
	writer types.SchemaWriter
	opts   *config.ReconcileOptions
	logger *slog.Logger
}

// New creates a reconciler over explicit reader/writer implementations.
// Passing nil options selects the defaults (moderate/error validation,
// soft-delete indexes enabled).
func New(reader types.SchemaReader, writer types.SchemaWriter, opts *config.ReconcileOptions) *Reconciler {
	if opts == nil {
		opts = config.DefaultReconcileOptions()
	}
	return &Reconciler{
		reader: reader,
		writer: writer,
		opts:   opts,
		logger: slog.Default(),
	}
}

// NewFromConnection creates a reconciler bound to a database connection.
func NewFromConnection(conn *dbschema.DatabaseConnection, opts *config.ReconcileOptions) *Reconciler {
	r := New(conn.Reader(), conn.Writer(), opts)
	if r.opts.DryRun {
		r.writer.SetDryRun(true)
	}
	return r
}

// WithLogger sets the logger for the reconciler.
func (r *Reconciler) WithLogger(l *slog.Logger) *Reconciler {
	tmp := *r
	tmp.logger = l
	return &tmp
}

// Run reconciles every collection the target declares and returns the
// per-collection outcomes.
//
// Error tiers follow the provisioning policy:
//   - validator updates on existing collections and soft-delete index creation
//     are best-effort: failures are recorded/logged and the run continues
//   - collection creation and batch index creation failures are fatal: the run
//     stops and the outcomes gathered so far are returned alongside the error,
//     with no rollback of changes already applied
func (r *Reconciler) Run(ctx context.Context, target *docschema.Database) (Results, error) {
	if err := r.opts.Validate(); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("invalid target definition: %w", err)
	}

	current, err := r.reader.ReadSchema(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read current schema: %w", err)
	}

	r.logger.Info("Reconciling database", "database", target.Name, "collections", len(target.Collections), "dryRun", r.writer.IsDryRun())

	var results Results
	for _, col := range target.Collections {
		result, err := r.reconcileCollection(ctx, target, col, current)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}

	r.logger.Info("Reconciliation finished", "summary", results.Summary())
	return results, nil
}

func (r *Reconciler) reconcileCollection(ctx context.Context, target *docschema.Database, col docschema.Collection, current *types.DBSchema) (CollectionResult, error) {
	result := CollectionResult{Collection: col.Name}

	validator := renderer.Validator(target.CollectionFields(col.Name))
	level := r.opts.ResolveLevel(col.ValidationLevel)
	action := r.opts.ResolveAction(col.ValidationAction)

	_, exists := current.Collection(col.Name)
	switch {
	case !exists:
		if err := r.writer.CreateCollection(ctx, col.Name, validator, level, action); err != nil {
			result.Outcome = OutcomeFailed
			result.Reason = err.Error()
			return result, fmt.Errorf("collection %q: %w", col.Name, err)
		}
		result.Outcome = OutcomeCreated
		r.logger.Info("Created collection", "collection", col.Name, "validationLevel", level, "validationAction", action)

	case validator != nil:
		if err := r.writer.UpdateValidator(ctx, col.Name, validator, level, action); err != nil {
			// Best-effort: schema tightening must never block provisioning of
			// the remaining collections.
			result.Outcome = OutcomeFailed
			result.Reason = err.Error()
			r.logger.Warn("Validator update failed, continuing", "collection", col.Name, "error", err)
		} else {
			result.Outcome = OutcomeUpdated
			r.logger.Info("Updated validator", "collection", col.Name, "validationLevel", level, "validationAction", action)
		}

	default:
		result.Outcome = OutcomeSkipped
		r.logger.Info("Collection already exists", "collection", col.Name)
	}

	specs := indexSpecs(target.CollectionIndexes(col.Name))
	if err := r.writer.EnsureIndexes(ctx, col.Name, specs); err != nil {
		result.Outcome = OutcomeFailed
		result.Reason = err.Error()
		return result, fmt.Errorf("collection %q: %w", col.Name, err)
	}
	result.IndexesEnsured = len(specs)
	if len(specs) > 0 {
		r.logger.Info("Ensured indexes", "collection", col.Name, "count", len(specs))
	}

	if r.opts.EnableSoftDeleteIndex {
		if err := r.writer.EnsureSoftDeleteIndex(ctx, col.Name); err != nil {
			// Optional index; its absence must not abort provisioning.
			r.logger.Debug("Soft-delete index creation failed, ignoring", "collection", col.Name, "error", err)
		}
	}

	return result, nil
}

func indexSpecs(indexes []docschema.Index) []types.IndexSpec {
	specs := make([]types.IndexSpec, 0, len(indexes))
	for _, idx := range indexes {
		spec := types.IndexSpec{Name: idx.Name, Unique: idx.Unique}
		for _, key := range idx.Keys {
			spec.Keys = append(spec.Keys, types.DBIndexKey{Field: key.Field, Order: key.Order})
		}
		if idx.Collation != nil {
			spec.Collation = &types.Collation{
				Locale:   idx.Collation.Locale,
				Strength: idx.Collation.Strength,
			}
		}
		specs = append(specs, spec)
	}
	return specs
}
