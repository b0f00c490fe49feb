package schema

import "voxform/internal/domain"

// builtinSchemas is the catalog shipped with the application. Deployments with
// their own checklists point VOXFORM_CATALOG_FILE at a YAML file instead.
func builtinSchemas() []domain.Schema {
	return []domain.Schema{
		{
			ModelID: "excavator-320",
			Sections: []domain.Section{
				{
					Key:   "general",
					Title: "General",
					Fields: []domain.Field{
						{ID: "inspectionDate", Prompt: "Inspection date", Kind: domain.FieldKindAutoDate},
						{ID: "inspectionTime", Prompt: "Inspection time", Kind: domain.FieldKindAutoTime},
						{ID: "location", Prompt: "Inspection location", Kind: domain.FieldKindAutoGeo},
						{ID: "serialNumber", Prompt: "Serial number", Kind: domain.FieldKindAutoFixed, Param: "serial"},
						{ID: "modelNumber", Prompt: "Model number", Kind: domain.FieldKindAutoFixed, Param: "model"},
					},
				},
				{
					Key:   "undercarriage",
					Title: "Undercarriage",
					Fields: []domain.Field{
						{ID: "tire", Prompt: "How is the condition of the tires?", Kind: domain.FieldKindText},
						{ID: "trackTension", Prompt: "How is the track tension?", Kind: domain.FieldKindText},
						{ID: "undercarriagePhoto", Prompt: "Undercarriage photo", Kind: domain.FieldKindPhoto},
					},
				},
				{
					Key:   "engine",
					Title: "Engine",
					Fields: []domain.Field{
						{ID: "engine", Prompt: "How is the condition of the engine?", Kind: domain.FieldKindText},
						{ID: "oilLevel", Prompt: "How is the engine oil level?", Kind: domain.FieldKindText},
						{ID: "coolant", Prompt: "How is the coolant level?", Kind: domain.FieldKindText},
						{ID: "enginePhoto", Prompt: "Engine bay photo", Kind: domain.FieldKindPhoto},
					},
				},
				{
					Key:   "signoff",
					Title: "Sign-off",
					Fields: []domain.Field{
						{ID: "remarks", Prompt: "Any final remarks?", Kind: domain.FieldKindText},
						{ID: "inspectorSignature", Prompt: "Inspector signature", Kind: domain.FieldKindSignature},
					},
				},
			},
		},
		{
			ModelID: "loader-950",
			Sections: []domain.Section{
				{
					Key:   "general",
					Title: "General",
					Fields: []domain.Field{
						{ID: "inspectionDate", Prompt: "Inspection date", Kind: domain.FieldKindAutoDate},
						{ID: "serialNumber", Prompt: "Serial number", Kind: domain.FieldKindAutoFixed, Param: "serial"},
						{ID: "modelNumber", Prompt: "Model number", Kind: domain.FieldKindAutoFixed, Param: "model"},
					},
				},
				{
					Key:   "exterior",
					Title: "Exterior",
					Fields: []domain.Field{
						{ID: "tire", Prompt: "How is the condition of the tires?", Kind: domain.FieldKindText},
						{ID: "bucket", Prompt: "How is the condition of the bucket?", Kind: domain.FieldKindText},
						{ID: "exteriorPhoto", Prompt: "Exterior photo", Kind: domain.FieldKindPhoto},
					},
				},
				{
					Key:   "signoff",
					Title: "Sign-off",
					Fields: []domain.Field{
						{ID: "remarks", Prompt: "Any final remarks?", Kind: domain.FieldKindText},
						{ID: "inspectorSignature", Prompt: "Inspector signature", Kind: domain.FieldKindSignature},
					},
				},
			},
		},
	}
}
