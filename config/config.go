// Package config provides configuration options for the Seshat collection
// provisioning system.
//
// This package provides a simple, programmatic API for configuring how the
// reconciler applies collection definitions when using Seshat as a library.
// It focuses on providing clean Go APIs rather than external configuration
// file management.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stokaro/seshat/core/platform"
)

// ReconcileOptions contains configuration options for reconciliation runs.
type ReconcileOptions struct {
	// ValidationLevel is applied to collections that do not declare their own
	// level. "moderate" re-checks only documents that were already valid on
	// update; invalid legacy documents are left untouched.
	ValidationLevel string `validate:"oneof=off strict moderate"`

	// ValidationAction is applied to collections that do not declare their own
	// action. "error" rejects non-conforming writes outright.
	ValidationAction string `validate:"oneof=error warn"`

	// EnableSoftDeleteIndex controls creation of the supplementary deletedAt
	// index on every collection. The index is best-effort: failures creating
	// it never abort a run.
	EnableSoftDeleteIndex bool

	// DryRun makes the run log planned operations without touching the
	// database.
	DryRun bool
}

// DefaultReconcileOptions returns the default reconciliation options:
// moderate/error validation, soft-delete indexes enabled, dry-run off.
func DefaultReconcileOptions() *ReconcileOptions {
	return &ReconcileOptions{
		ValidationLevel:       platform.DefaultValidationLevel,
		ValidationAction:      platform.DefaultValidationAction,
		EnableSoftDeleteIndex: true,
	}
}

// WithValidation returns a new ReconcileOptions with the given default
// validation level and action and everything else at defaults.
//
// Example:
//
//	opts := config.WithValidation(platform.ValidationLevelStrict, platform.ValidationActionWarn)
func WithValidation(level, action string) *ReconcileOptions {
	opts := DefaultReconcileOptions()
	opts.ValidationLevel = level
	opts.ValidationAction = action
	return opts
}

// WithDryRun returns a new ReconcileOptions with dry-run enabled and
// everything else at defaults.
func WithDryRun() *ReconcileOptions {
	opts := DefaultReconcileOptions()
	opts.DryRun = true
	return opts
}

// WithoutSoftDeleteIndex returns a new ReconcileOptions that skips the
// supplementary deletedAt indexes.
func WithoutSoftDeleteIndex() *ReconcileOptions {
	opts := DefaultReconcileOptions()
	opts.EnableSoftDeleteIndex = false
	return opts
}

// ResolveLevel returns the given collection-declared level, or the configured
// default when the collection leaves it empty.
func (o *ReconcileOptions) ResolveLevel(declared string) string {
	if normalized := platform.NormalizeValidationLevel(declared); normalized != "" {
		return normalized
	}
	return o.ValidationLevel
}

// ResolveAction returns the given collection-declared action, or the
// configured default when the collection leaves it empty.
func (o *ReconcileOptions) ResolveAction(declared string) string {
	if normalized := platform.NormalizeValidationAction(declared); normalized != "" {
		return normalized
	}
	return o.ValidationAction
}

// Validate checks the options for consistency.
func (o *ReconcileOptions) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("invalid reconcile options: %w", err)
	}
	return nil
}

// CompareOptions contains configuration options for schema comparison.
type CompareOptions struct {
	// IgnoredIndexSuffixes lists index-name suffixes that should be excluded
	// from drift reports. Indexes matching a suffix will:
	// - Never be reported as removed, even if absent from the target schema
	// - Be excluded from schema diff calculations entirely
	//
	// The default covers the supplementary soft-delete indexes
	// (idx_<collection>_deleted_at), which are created best-effort and never
	// declared in the catalog.
	IgnoredIndexSuffixes []string
}

// DefaultCompareOptions returns the default comparison options.
func DefaultCompareOptions() *CompareOptions {
	return &CompareOptions{
		IgnoredIndexSuffixes: []string{
			"_deleted_at", // speculative soft-delete indexes, not part of the catalog
		},
	}
}

// WithIgnoredIndexSuffixes returns a new CompareOptions with the specified
// ignored suffixes. This completely replaces the default list.
func WithIgnoredIndexSuffixes(suffixes ...string) *CompareOptions {
	return &CompareOptions{
		IgnoredIndexSuffixes: suffixes,
	}
}

// IsIndexIgnored checks if the given index name should be excluded from
// schema comparison based on the current configuration.
func (c *CompareOptions) IsIndexIgnored(indexName string) bool {
	for _, suffix := range c.IgnoredIndexSuffixes {
		if strings.HasSuffix(indexName, suffix) {
			return true
		}
	}
	return false
}
