// internal/catalog/file.go
package catalog

import (
	"fmt"
	"os"

	"volunteer-matching/internal/common/config"
	"volunteer-matching/internal/matching"

	"gopkg.in/yaml.v3"
)

// FileCatalog is a StaticCatalog loaded from a YAML (or JSON) document of the
// form {opportunities: [...]}.
type FileCatalog struct {
	*StaticCatalog
	path string
}

type catalogDocument struct {
	Opportunities []matching.Opportunity `yaml:"opportunities"`
}

func LoadFile(path string) (*FileCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}

	opps, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}

	static := NewStatic(opps)
	static.source = config.CatalogFile
	return &FileCatalog{StaticCatalog: static, path: path}, nil
}

// ParseYAML decodes a catalog document. Entries without an id are rejected
// since matches are keyed by opportunity id.
func ParseYAML(data []byte) ([]matching.Opportunity, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Opportunities))
	for i, o := range doc.Opportunities {
		if o.ID == "" {
			return nil, fmt.Errorf("opportunity #%d has no id", i+1)
		}
		if seen[o.ID] {
			return nil, fmt.Errorf("duplicate opportunity id %q", o.ID)
		}
		seen[o.ID] = true
	}
	return doc.Opportunities, nil
}

// Path returns the file the catalog was loaded from.
func (c *FileCatalog) Path() string { return c.path }
