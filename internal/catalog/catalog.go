// Package catalog loads the static framework/question document and serves
// name-based lookups. The document is a single JSON array of framework
// records; a .yaml/.yml extension switches the decoder. Lookups are
// case-insensitive, and an absent framework name yields an empty question
// list rather than an error.
package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/esg-merge-cli/internal/model"
)

// frameworkRecord is the catalog wire shape. Question records carry their
// text under "question" and may carry a reference under either "ref" or
// "_id".
type frameworkRecord struct {
	ID          string           `json:"_id" yaml:"_id"`
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description" yaml:"description"`
	Questions   []questionRecord `json:"questions" yaml:"questions"`
}

type questionRecord struct {
	Question string `json:"question" yaml:"question"`
	Category string `json:"category" yaml:"category"`
	Ref      string `json:"ref" yaml:"ref"`
	ID       string `json:"_id" yaml:"_id"`
}

// Catalog is the loaded framework set.
type Catalog struct {
	frameworks []model.Framework
	byName     map[string]int
}

// Load reads and decodes the catalog document at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var records []frameworkRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, eris.Wrapf(err, "catalog: decode yaml %s", path)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, eris.Wrapf(err, "catalog: decode json %s", path)
		}
	}

	return fromRecords(records), nil
}

func fromRecords(records []frameworkRecord) *Catalog {
	c := &Catalog{byName: make(map[string]int, len(records))}
	for _, rec := range records {
		fw := model.Framework{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
		}
		for _, q := range rec.Questions {
			if strings.TrimSpace(q.Question) == "" {
				continue
			}
			ref := q.Ref
			if ref == "" {
				ref = q.ID
			}
			fw.Questions = append(fw.Questions, model.RawQuestion{
				Text:     q.Question,
				Category: q.Category,
				Ref:      ref,
			})
		}
		c.byName[strings.ToLower(strings.TrimSpace(rec.Name))] = len(c.frameworks)
		c.frameworks = append(c.frameworks, fw)
	}

	zap.L().Debug("catalog loaded", zap.Int("frameworks", len(c.frameworks)))
	return c
}

// Frameworks returns all loaded frameworks in document order.
func (c *Catalog) Frameworks() []model.Framework {
	return c.frameworks
}

// Lookup returns the framework by name, case-insensitively.
func (c *Catalog) Lookup(name string) (model.Framework, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return model.Framework{}, false
	}
	return c.frameworks[i], true
}

// QuestionsFor returns the question set for a framework name. Unknown
// names yield an empty list.
func (c *Catalog) QuestionsFor(name string) []model.RawQuestion {
	fw, ok := c.Lookup(name)
	if !ok {
		return nil
	}
	return fw.Questions
}

// Description returns the description for a framework name, or empty for
// unknown names.
func (c *Catalog) Description(name string) string {
	fw, _ := c.Lookup(name)
	return fw.Description
}

// Resolve maps a set of names onto frameworks, preserving input order.
// Unknown names resolve to a framework with an empty question set so the
// pipeline degrades instead of aborting.
func (c *Catalog) Resolve(names []string) []model.Framework {
	out := make([]model.Framework, 0, len(names))
	for _, name := range names {
		if fw, ok := c.Lookup(name); ok {
			out = append(out, fw)
			continue
		}
		zap.L().Warn("unknown framework in request", zap.String("name", name))
		out = append(out, model.Framework{Name: name})
	}
	return out
}
