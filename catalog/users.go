package catalog

import (
	"github.com/stokaro/seshat/core/docschema"
	"github.com/stokaro/seshat/core/platform"
)

// emailPattern is a syntactic sanity check, not full address validation.
const emailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`

func users() definition {
	const name = "users"

	return definition{
		collection: docschema.Collection{
			Name:             name,
			Comment:          "registered accounts; email uniqueness is enforced by index, not application logic",
			ValidationLevel:  platform.ValidationLevelModerate,
			ValidationAction: platform.ValidationActionError,
		},
		fields: []docschema.Field{
			{CollectionName: name, Name: "email", Type: docschema.TypeString, Required: true, Pattern: emailPattern, Description: "must be a syntactically valid email address"},
			{CollectionName: name, Name: "name", Type: docschema.TypeString, Required: true},
			{CollectionName: name, Name: "passwordHash", Type: docschema.TypeString, Required: true},
			{CollectionName: name, Name: "roles", Type: docschema.TypeArray, Required: true, ArrayOf: docschema.TypeString},
			{CollectionName: name, Name: "status", Type: docschema.TypeString, Required: true, Enum: []string{"active", "disabled"}},
			{CollectionName: name, Name: "avatarUrl", Type: docschema.TypeString},
			{CollectionName: name, Name: "lastLoginAt", Type: docschema.TypeDate},
			{CollectionName: name, Name: "createdAt", Type: docschema.TypeDate, Required: true},
			{CollectionName: name, Name: "updatedAt", Type: docschema.TypeDate, Required: true},
		},
		indexes: []docschema.Index{
			{
				CollectionName: name,
				Name:           "uniq_users_email",
				Keys:           []docschema.IndexKey{{Field: "email", Order: 1}},
				Unique:         true,
				// Strength 2 makes the uniqueness check case-insensitive.
				Collation: &docschema.Collation{Locale: "en", Strength: 2},
			},
			{
				CollectionName: name,
				Name:           "idx_users_status",
				Keys:           []docschema.IndexKey{{Field: "status", Order: 1}},
			},
		},
	}
}
