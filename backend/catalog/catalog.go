// Package catalog serves the static training module content. The catalog
// is declarative data loaded once at startup; it is also the single source
// of course structure for initializing a new user's progress record.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"skillforge/backend/models"

	"gopkg.in/yaml.v3"
)

//go:embed modules.yaml
var modulesYAML []byte

var ErrModuleNotFound = errors.New("module not found")

type Catalog struct {
	modules map[string]*models.TrainingModule
	order   []string
}

type catalogFile struct {
	Modules []models.TrainingModule `yaml:"modules"`
}

// Load parses the embedded catalog. Step identifiers must be unique
// within a module.
func Load() (*Catalog, error) {
	return Parse(modulesYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	cat := &Catalog{modules: make(map[string]*models.TrainingModule, len(file.Modules))}
	for i := range file.Modules {
		m := &file.Modules[i]
		if m.ID == "" {
			return nil, fmt.Errorf("catalog module %d: missing id", i)
		}
		if _, exists := cat.modules[m.ID]; exists {
			return nil, fmt.Errorf("catalog module %q: duplicate id", m.ID)
		}
		seen := make(map[int]bool, len(m.Steps))
		for _, step := range m.Steps {
			if seen[step.ID] {
				return nil, fmt.Errorf("catalog module %q: duplicate step id %d", m.ID, step.ID)
			}
			seen[step.ID] = true
		}
		cat.modules[m.ID] = m
		cat.order = append(cat.order, m.ID)
	}
	return cat, nil
}

// Module returns the catalog entry for id, or ErrModuleNotFound.
func (c *Catalog) Module(id string) (*models.TrainingModule, error) {
	m, ok := c.modules[id]
	if !ok {
		return nil, ErrModuleNotFound
	}
	return m, nil
}

// Template builds a fresh ProgressRecord covering every catalog module,
// with all steps incomplete and aggregates at zero.
func (c *Catalog) Template() *models.ProgressRecord {
	record := &models.ProgressRecord{
		CompletedModules: []string{},
		Courses:          make(map[string]*models.Course, len(c.order)),
	}
	for _, id := range c.order {
		m := c.modules[id]
		course := &models.Course{
			Title: m.Title,
			Steps: make([]*models.Step, len(m.Steps)),
		}
		for i, step := range m.Steps {
			course.Steps[i] = &models.Step{ID: step.ID, Title: step.Title}
		}
		record.Courses[id] = course
	}
	return record
}
