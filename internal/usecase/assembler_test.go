package usecase

import (
	"reflect"
	"testing"

	"voxform/internal/domain"
)

func TestAssembleRecordKeepsSchemaOrder(t *testing.T) {
	t.Parallel()

	sch := domain.Schema{
		ModelID: "excavator-320",
		Sections: []domain.Section{
			{Key: "general", Title: "General", Fields: []domain.Field{
				{ID: "inspectionDate", Prompt: "Inspection date", Kind: domain.FieldKindAutoDate},
				{ID: "tire", Prompt: "How is the condition of the tires?", Kind: domain.FieldKindText},
			}},
			{Key: "engine", Title: "Engine", Fields: []domain.Field{
				{ID: "engine", Prompt: "How is the condition of the engine?", Kind: domain.FieldKindText},
				{ID: "enginePhoto", Prompt: "Engine bay photo", Kind: domain.FieldKindPhoto},
			}},
		},
	}
	responses := map[string]string{
		"inspectionDate": "2024-06-15",
		"tire":           "good condition",
		"engine":         "runs clean",
	}
	photoRefs := map[string]string{"enginePhoto": "ref-9"}
	params := LaunchParams{SerialNumber: "SN-1", ModelID: "excavator-320"}

	record := AssembleRecord(sch, params, responses, photoRefs)

	want := domain.Record{
		SerialNumber: "SN-1",
		ModelID:      "excavator-320",
		Sections: []domain.RecordSection{
			{Key: "general", Title: "General", Items: []domain.RecordItem{
				{FieldID: "inspectionDate", Prompt: "Inspection date", Answer: "2024-06-15"},
				{FieldID: "tire", Prompt: "How is the condition of the tires?", Answer: "good condition"},
			}},
			{Key: "engine", Title: "Engine", Items: []domain.RecordItem{
				{FieldID: "engine", Prompt: "How is the condition of the engine?", Answer: "runs clean"},
				{FieldID: "enginePhoto", Prompt: "Engine bay photo", PhotoRef: "ref-9"},
			}},
		},
	}
	if !reflect.DeepEqual(record, want) {
		t.Fatalf("unexpected record:\n got %+v\nwant %+v", record, want)
	}
}

func TestAssembleRecordIsIdempotent(t *testing.T) {
	t.Parallel()

	sch := domain.Schema{Sections: []domain.Section{
		{Key: "a", Fields: []domain.Field{{ID: "f", Prompt: "p", Kind: domain.FieldKindText}}},
	}}
	responses := map[string]string{"f": "v"}

	first := AssembleRecord(sch, LaunchParams{}, responses, nil)
	second := AssembleRecord(sch, LaunchParams{}, responses, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("assembly not idempotent")
	}

	// Mutating the output must not corrupt later assemblies.
	first.Sections[0].Items[0].Answer = "tampered"
	third := AssembleRecord(sch, LaunchParams{}, responses, nil)
	if third.Sections[0].Items[0].Answer != "v" {
		t.Fatalf("assembly shares state with prior output")
	}
}
