package catalog

import (
	"github.com/stokaro/seshat/core/docschema"
	"github.com/stokaro/seshat/core/platform"
)

func attendees() definition {
	const name = "attendees"

	return definition{
		collection: docschema.Collection{
			Name:             name,
			Comment:          "materialized view of RSVP acceptance; userName/userEmail are snapshots for fast listing",
			ValidationLevel:  platform.ValidationLevelModerate,
			ValidationAction: platform.ValidationActionError,
		},
		fields: []docschema.Field{
			{CollectionName: name, Name: "eventId", Type: docschema.TypeObjectID, Required: true, Description: "reference to the events collection"},
			{CollectionName: name, Name: "userId", Type: docschema.TypeObjectID, Required: true, Description: "reference to the users collection"},
			{CollectionName: name, Name: "attendeeStatus", Type: docschema.TypeString, Required: true, Enum: []string{"confirmed", "waitlisted", "checked_in", "cancelled"}},
			{CollectionName: name, Name: "checkInAt", Type: docschema.TypeDate},
			{CollectionName: name, Name: "userName", Type: docschema.TypeString, Required: true, Description: "denormalized snapshot of the user's name"},
			{CollectionName: name, Name: "userEmail", Type: docschema.TypeString, Required: true, Description: "denormalized snapshot of the user's email"},
			{CollectionName: name, Name: "createdAt", Type: docschema.TypeDate, Required: true},
			{CollectionName: name, Name: "updatedAt", Type: docschema.TypeDate, Required: true},
		},
		indexes: []docschema.Index{
			{
				CollectionName: name,
				Name:           "uniq_attendees_event_user",
				Keys:           []docschema.IndexKey{{Field: "eventId", Order: 1}, {Field: "userId", Order: 1}},
				Unique:         true,
			},
			{
				CollectionName: name,
				Name:           "idx_attendees_event_status",
				Keys:           []docschema.IndexKey{{Field: "eventId", Order: 1}, {Field: "attendeeStatus", Order: 1}},
			},
			{
				CollectionName: name,
				Name:           "idx_attendees_user",
				Keys:           []docschema.IndexKey{{Field: "userId", Order: 1}},
			},
		},
	}
}
