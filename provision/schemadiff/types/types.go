package types

// SchemaDiff represents the differences between the catalog definition and the
// schema state read from a live database.
//
// All fields are JSON-serializable so drift reports can feed CI pipelines or
// be inspected with jq. Collections and indexes are identified by name;
// index identity is the stable name the catalog assigns, which is also what
// makes index creation idempotent at the server.
type SchemaDiff struct {
	// CollectionsAdded contains names of collections declared in the catalog
	// but absent from the database.
	CollectionsAdded []string `json:"collections_added" yaml:"collections_added"`

	// CollectionsRemoved contains names of collections present in the database
	// but not declared in the catalog. Report-only: the reconciler never drops
	// collections.
	CollectionsRemoved []string `json:"collections_removed" yaml:"collections_removed"`

	// ValidatorsModified contains collections present on both sides whose
	// validator document, validation level or validation action differ.
	ValidatorsModified []ValidatorDiff `json:"validators_modified" yaml:"validators_modified"`

	// IndexesAdded contains names of indexes declared in the catalog but
	// absent from the database.
	IndexesAdded []string `json:"indexes_added" yaml:"indexes_added"`

	// IndexesRemoved contains names of indexes present in the database but not
	// declared in the catalog. Report-only.
	IndexesRemoved []string `json:"indexes_removed" yaml:"indexes_removed"`
}

// ValidatorDiff describes how one collection's validation setup drifted.
type ValidatorDiff struct {
	CollectionName   string       `json:"collection_name" yaml:"collection_name"`
	ValidatorChanged bool         `json:"validator_changed" yaml:"validator_changed"`
	LevelChanged     *ValueChange `json:"level_changed,omitempty" yaml:"level_changed,omitempty"`
	ActionChanged    *ValueChange `json:"action_changed,omitempty" yaml:"action_changed,omitempty"`
}

// ValueChange records an old/new pair for a scalar setting.
type ValueChange struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// HasChanges returns true if the diff contains any drift at all.
func (d *SchemaDiff) HasChanges() bool {
	return d.hasCollectionChanges() ||
		d.hasValidatorChanges() ||
		d.hasIndexChanges()
}

func (d *SchemaDiff) hasCollectionChanges() bool {
	return len(d.CollectionsAdded) > 0 || len(d.CollectionsRemoved) > 0
}

func (d *SchemaDiff) hasValidatorChanges() bool {
	return len(d.ValidatorsModified) > 0
}

func (d *SchemaDiff) hasIndexChanges() bool {
	return len(d.IndexesAdded) > 0 || len(d.IndexesRemoved) > 0
}
