package pipeline

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/brandkit/brandkit/internal/schema"
	"github.com/brandkit/brandkit/pkg/catalog"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// metadataNames are tried in order within a brand's source directory.
var metadataNames = []string{"metadata.yaml", "metadata.yml", "metadata.json", "metadata.toml"}

// MetadataLoader reads optional per-brand metadata documents from the source
// tree and validates them against the embedded schema. It implements
// catalog.MetadataSource.
type MetadataLoader struct {
	src *Walker
}

// NewMetadataLoader builds a loader over the source tree walker.
func NewMetadataLoader(src *Walker) *MetadataLoader {
	return &MetadataLoader{src: src}
}

// BrandMeta loads the metadata document for one brand. A missing document is
// (nil, nil); a malformed or schema-invalid document is an error the caller
// downgrades to a per-brand warning.
func (l *MetadataLoader) BrandMeta(brandID string) (*catalog.BrandMeta, error) {
	for _, name := range metadataNames {
		file := path.Join(brandID, name)
		if !l.src.Exists(file) {
			continue
		}
		data, err := l.src.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		return decodeMetadata(name, data)
	}
	return nil, nil
}

func decodeMetadata(name string, data []byte) (*catalog.BrandMeta, error) {
	// Decode generically first so yaml, json, and toml all validate
	// through the same schema path.
	var doc map[string]interface{}
	var meta catalog.BrandMeta
	switch path.Ext(name) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if err := yaml.Unmarshal(data, &meta); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if err := json.Unmarshal(data, &meta); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if err := toml.Unmarshal(data, &meta); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("unsupported metadata format %s", name)
	}

	result, err := schema.ValidateMetadata(doc)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("metadata %s fails schema: %v", name, result.Errors)
	}
	return &meta, nil
}
