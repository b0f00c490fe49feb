package usecase

import "voxform/internal/domain"

// AssembleRecord projects schema order plus the response and photo maps into
// the section-ordered export structure consumed by reporting. Pure and
// idempotent; safe to call on every persistence change.
func AssembleRecord(
	schema domain.Schema,
	params LaunchParams,
	responses map[string]string,
	photoRefs map[string]string,
) domain.Record {
	record := domain.Record{
		SerialNumber: params.SerialNumber,
		ModelID:      params.ModelID,
		Sections:     make([]domain.RecordSection, 0, len(schema.Sections)),
	}

	for _, section := range schema.Sections {
		out := domain.RecordSection{
			Key:   section.Key,
			Title: section.Title,
			Items: make([]domain.RecordItem, 0, len(section.Fields)),
		}
		for _, field := range section.Fields {
			out.Items = append(out.Items, domain.RecordItem{
				FieldID:  field.ID,
				Prompt:   field.Prompt,
				Answer:   responses[field.ID],
				PhotoRef: photoRefs[field.ID],
			})
		}
		record.Sections = append(record.Sections, out)
	}
	return record
}
