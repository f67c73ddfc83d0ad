package catalog

import (
	"github.com/stokaro/seshat/core/docschema"
	"github.com/stokaro/seshat/core/platform"
)

func rsvps() definition {
	const name = "rsvps"

	return definition{
		collection: docschema.Collection{
			Name:             name,
			Comment:          "one RSVP per (eventId, userId), enforced by unique index",
			ValidationLevel:  platform.ValidationLevelModerate,
			ValidationAction: platform.ValidationActionError,
		},
		fields: []docschema.Field{
			{CollectionName: name, Name: "eventId", Type: docschema.TypeObjectID, Required: true, Description: "reference to the events collection"},
			{CollectionName: name, Name: "userId", Type: docschema.TypeObjectID, Required: true, Description: "reference to the users collection"},
			{CollectionName: name, Name: "status", Type: docschema.TypeString, Required: true, Enum: []string{"yes", "no", "maybe", "waitlist"}},
			{CollectionName: name, Name: "guests", Type: docschema.TypeInt, Required: true, Minimum: nonNegative()},
			{CollectionName: name, Name: "note", Type: docschema.TypeString},
			{CollectionName: name, Name: "createdAt", Type: docschema.TypeDate, Required: true},
			{CollectionName: name, Name: "updatedAt", Type: docschema.TypeDate, Required: true},
		},
		indexes: []docschema.Index{
			{
				CollectionName: name,
				Name:           "uniq_rsvps_event_user",
				Keys:           []docschema.IndexKey{{Field: "eventId", Order: 1}, {Field: "userId", Order: 1}},
				Unique:         true,
			},
			{
				CollectionName: name,
				Name:           "idx_rsvps_user",
				Keys:           []docschema.IndexKey{{Field: "userId", Order: 1}},
			},
			{
				CollectionName: name,
				Name:           "idx_rsvps_event_status",
				Keys:           []docschema.IndexKey{{Field: "eventId", Order: 1}, {Field: "status", Order: 1}},
			},
		},
	}
}
