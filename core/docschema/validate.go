package docschema

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/stokaro/seshat/core/platform"
)

// Validate checks the definition for internal consistency before anything is
// sent to a server. It catches the mistakes that would otherwise surface as
// confusing server-side errors: duplicate names, unknown BSON type aliases,
// indexes keyed on undeclared fields, empty enums, unparseable collation
// locales.
func (d *Database) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("database name is empty")
	}

	seen := make(map[string]bool)
	for _, col := range d.Collections {
		if col.Name == "" {
			return fmt.Errorf("database %q declares a collection with an empty name", d.Name)
		}
		if seen[col.Name] {
			return fmt.Errorf("collection %q is declared twice", col.Name)
		}
		seen[col.Name] = true

		if col.ValidationLevel != "" && platform.NormalizeValidationLevel(col.ValidationLevel) == "" {
			return fmt.Errorf("collection %q: unknown validation level %q", col.Name, col.ValidationLevel)
		}
		if col.ValidationAction != "" && platform.NormalizeValidationAction(col.ValidationAction) == "" {
			return fmt.Errorf("collection %q: unknown validation action %q", col.Name, col.ValidationAction)
		}
	}

	fieldsByCollection := make(map[string]map[string]bool)
	for _, f := range d.Fields {
		if err := d.validateField(f, seen, fieldsByCollection); err != nil {
			return err
		}
	}

	indexNames := make(map[string]bool)
	for _, idx := range d.Indexes {
		if err := d.validateIndex(idx, seen, fieldsByCollection, indexNames); err != nil {
			return err
		}
	}

	return nil
}

func (d *Database) validateField(f Field, collections map[string]bool, fieldsByCollection map[string]map[string]bool) error {
	if f.Name == "" {
		return fmt.Errorf("collection %q declares a field with an empty name", f.CollectionName)
	}
	if !collections[f.CollectionName] {
		return fmt.Errorf("field %q references undeclared collection %q", f.Name, f.CollectionName)
	}
	if !knownTypes[f.Type] {
		return fmt.Errorf("field %s.%s: unknown BSON type %q", f.CollectionName, f.Name, f.Type)
	}

	names := fieldsByCollection[f.CollectionName]
	if names == nil {
		names = make(map[string]bool)
		fieldsByCollection[f.CollectionName] = names
	}
	if names[f.Name] {
		return fmt.Errorf("field %s.%s is declared twice", f.CollectionName, f.Name)
	}
	names[f.Name] = true

	if f.Type == TypeArray && !knownTypes[f.ArrayOf] {
		return fmt.Errorf("field %s.%s: array element type %q is unknown", f.CollectionName, f.Name, f.ArrayOf)
	}
	if f.Type != TypeArray && f.ArrayOf != "" {
		return fmt.Errorf("field %s.%s: array element type set on non-array field", f.CollectionName, f.Name)
	}
	if f.Type != TypeObject && len(f.Properties) > 0 {
		return fmt.Errorf("field %s.%s: nested properties set on non-object field", f.CollectionName, f.Name)
	}
	for _, p := range f.Properties {
		if p.Name == "" {
			return fmt.Errorf("field %s.%s declares a nested property with an empty name", f.CollectionName, f.Name)
		}
		if !knownTypes[p.Type] {
			return fmt.Errorf("field %s.%s: nested property %q has unknown BSON type %q", f.CollectionName, f.Name, p.Name, p.Type)
		}
	}
	if len(f.Enum) == 0 {
		return nil
	}
	if f.Type != TypeString {
		return fmt.Errorf("field %s.%s: enum values on non-string field", f.CollectionName, f.Name)
	}
	for _, v := range f.Enum {
		if v == "" {
			return fmt.Errorf("field %s.%s: enum contains an empty literal", f.CollectionName, f.Name)
		}
	}
	return nil
}

func (d *Database) validateIndex(idx Index, collections map[string]bool, fieldsByCollection map[string]map[string]bool, indexNames map[string]bool) error {
	if idx.Name == "" {
		return fmt.Errorf("collection %q declares an index with an empty name", idx.CollectionName)
	}
	if !collections[idx.CollectionName] {
		return fmt.Errorf("index %q references undeclared collection %q", idx.Name, idx.CollectionName)
	}
	if indexNames[idx.Name] {
		return fmt.Errorf("index %q is declared twice", idx.Name)
	}
	indexNames[idx.Name] = true

	if len(idx.Keys) == 0 {
		return fmt.Errorf("index %q has no keys", idx.Name)
	}
	for _, key := range idx.Keys {
		if key.Order != 1 && key.Order != -1 {
			return fmt.Errorf("index %q: key %q has order %d, want 1 or -1", idx.Name, key.Field, key.Order)
		}
		if !fieldsByCollection[idx.CollectionName][key.Field] {
			return fmt.Errorf("index %q: key %q is not a declared field of collection %q", idx.Name, key.Field, idx.CollectionName)
		}
	}
	if idx.Collation != nil {
		if _, err := language.Parse(idx.Collation.Locale); err != nil {
			return fmt.Errorf("index %q: invalid collation locale %q: %w", idx.Name, idx.Collation.Locale, err)
		}
	}
	return nil
}
