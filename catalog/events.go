package catalog

import (
	"github.com/stokaro/seshat/core/docschema"
	"github.com/stokaro/seshat/core/platform"
)

func events() definition {
	const name = "events"

	return definition{
		collection: docschema.Collection{
			Name:             name,
			Comment:          "organizerId references users but is not enforced by the server",
			ValidationLevel:  platform.ValidationLevelModerate,
			ValidationAction: platform.ValidationActionError,
		},
		fields: []docschema.Field{
			{CollectionName: name, Name: "title", Type: docschema.TypeString, Required: true},
			{CollectionName: name, Name: "description", Type: docschema.TypeString, Required: true},
			{CollectionName: name, Name: "organizerId", Type: docschema.TypeObjectID, Required: true, Description: "reference to the users collection"},
			{
				CollectionName: name,
				Name:           "location",
				Type:           docschema.TypeObject,
				Required:       true,
				Properties: []docschema.Property{
					{Name: "name", Type: docschema.TypeString, Required: true},
					{Name: "address", Type: docschema.TypeString},
					{Name: "lat", Type: docschema.TypeDouble},
					{Name: "lng", Type: docschema.TypeDouble},
				},
			},
			{CollectionName: name, Name: "startTime", Type: docschema.TypeDate, Required: true},
			{CollectionName: name, Name: "endTime", Type: docschema.TypeDate, Required: true},
			{CollectionName: name, Name: "tags", Type: docschema.TypeArray, ArrayOf: docschema.TypeString},
			{CollectionName: name, Name: "visibility", Type: docschema.TypeString, Required: true, Enum: []string{"public", "private", "unlisted"}},
			{CollectionName: name, Name: "capacity", Type: docschema.TypeInt, Required: true, Minimum: nonNegative()},
			{CollectionName: name, Name: "status", Type: docschema.TypeString, Required: true, Enum: []string{"draft", "published", "cancelled"}},
			{CollectionName: name, Name: "createdAt", Type: docschema.TypeDate, Required: true},
			{CollectionName: name, Name: "updatedAt", Type: docschema.TypeDate, Required: true},
		},
		indexes: []docschema.Index{
			{
				CollectionName: name,
				Name:           "idx_events_organizer",
				Keys:           []docschema.IndexKey{{Field: "organizerId", Order: 1}},
			},
			{
				CollectionName: name,
				Name:           "idx_events_start_time",
				Keys:           []docschema.IndexKey{{Field: "startTime", Order: 1}},
			},
			{
				CollectionName: name,
				Name:           "idx_events_status_visibility",
				Keys:           []docschema.IndexKey{{Field: "status", Order: 1}, {Field: "visibility", Order: 1}},
			},
		},
	}
}
