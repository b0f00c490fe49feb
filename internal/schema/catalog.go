// Package schema resolves inspection model identifiers against a fixed,
// preloaded catalog of checklist schemas.
package schema

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"voxform/internal/domain"
)

// Catalog holds every known inspection schema keyed by model identifier.
type Catalog struct {
	schemas map[string]domain.Schema
}

type catalogFile struct {
	Schemas []domain.Schema `yaml:"schemas"`
}

// Load reads a catalog from a YAML file. An empty path loads the built-in
// catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return newCatalog(builtinSchemas())
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %q: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %q: %w", path, err)
	}

	return newCatalog(file.Schemas)
}

func newCatalog(schemas []domain.Schema) (*Catalog, error) {
	byModel := make(map[string]domain.Schema, len(schemas))
	for _, s := range schemas {
		if s.ModelID == "" {
			return nil, fmt.Errorf("catalog schema without a model identifier")
		}
		if _, dup := byModel[s.ModelID]; dup {
			return nil, fmt.Errorf("duplicate schema for model %q", s.ModelID)
		}
		if err := validateSchema(s); err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.ModelID, err)
		}
		byModel[s.ModelID] = s
	}
	return &Catalog{schemas: byModel}, nil
}

func validateSchema(s domain.Schema) error {
	seen := make(map[string]struct{})
	for _, section := range s.Sections {
		if section.Key == "" {
			return fmt.Errorf("section without a key")
		}
		for _, field := range section.Fields {
			if field.ID == "" {
				return fmt.Errorf("section %q: field without an id", section.Key)
			}
			if _, dup := seen[field.ID]; dup {
				return fmt.Errorf("duplicate field id %q", field.ID)
			}
			seen[field.ID] = struct{}{}
			switch field.Kind {
			case domain.FieldKindText, domain.FieldKindAutoDate, domain.FieldKindAutoTime,
				domain.FieldKindAutoGeo, domain.FieldKindAutoFixed,
				domain.FieldKindPhoto, domain.FieldKindSignature:
			default:
				return fmt.Errorf("field %q: unknown kind %q", field.ID, field.Kind)
			}
			if field.Kind == domain.FieldKindAutoFixed && field.Param == "" {
				return fmt.Errorf("field %q: auto:fixed requires a param", field.ID)
			}
		}
	}
	return nil
}

// Lookup resolves a model identifier by exact key match. An unknown identifier
// returns domain.ErrSchemaNotFound; callers treat that as a user-visible
// notice, not a fatal condition.
func (c *Catalog) Lookup(modelID string) (domain.Schema, error) {
	s, ok := c.schemas[modelID]
	if !ok {
		return domain.Schema{}, domain.ErrSchemaNotFound
	}
	return s, nil
}

// Models lists the known model identifiers.
func (c *Catalog) Models() []string {
	models := make([]string, 0, len(c.schemas))
	for model := range c.schemas {
		models = append(models, model)
	}
	return models
}
