package domain

// FieldKind governs how a field is answered.
type FieldKind string

const (
	FieldKindText      FieldKind = "text"
	FieldKindAutoDate  FieldKind = "auto:date"
	FieldKindAutoTime  FieldKind = "auto:time"
	FieldKindAutoGeo   FieldKind = "auto:geo"
	FieldKindAutoFixed FieldKind = "auto:fixed"
	FieldKindPhoto     FieldKind = "photo"
	FieldKindSignature FieldKind = "signature"
)

// Auto reports whether the field's value is computed rather than spoken.
func (k FieldKind) Auto() bool {
	switch k {
	case FieldKindAutoDate, FieldKindAutoTime, FieldKindAutoGeo, FieldKindAutoFixed:
		return true
	}
	return false
}

// Field is one question or data point within a section.
type Field struct {
	ID     string    `yaml:"id" json:"id"`
	Prompt string    `yaml:"prompt" json:"prompt"`
	Kind   FieldKind `yaml:"kind" json:"kind"`

	// Param names the launch parameter backing an auto:fixed field
	// ("serial" or "model").
	Param string `yaml:"param,omitempty" json:"param,omitempty"`
}

// Section is a named, ordered group of fields.
type Section struct {
	Key    string  `yaml:"key" json:"key"`
	Title  string  `yaml:"title" json:"title"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Schema is the immutable ordered hierarchy of sections loaded at session start.
type Schema struct {
	ModelID  string    `yaml:"model" json:"model"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// Empty reports whether the schema has no sections.
func (s Schema) Empty() bool { return len(s.Sections) == 0 }

// FieldByID returns the field with the given id, searching in section order.
func (s Schema) FieldByID(id string) (Field, bool) {
	for _, section := range s.Sections {
		for _, field := range section.Fields {
			if field.ID == id {
				return field, true
			}
		}
	}
	return Field{}, false
}

// RecordItem is one answered field in the exported record.
type RecordItem struct {
	FieldID  string `json:"id"`
	Prompt   string `json:"question"`
	Answer   string `json:"response"`
	PhotoRef string `json:"photo,omitempty"`
}

// RecordSection pairs a section with its answered fields, in schema order.
type RecordSection struct {
	Key   string       `json:"key"`
	Title string       `json:"title"`
	Items []RecordItem `json:"items"`
}

// Record is the section-ordered export structure handed to reporting.
type Record struct {
	SerialNumber string          `json:"serialNumber"`
	ModelID      string          `json:"modelId"`
	Sections     []RecordSection `json:"sections"`
}
