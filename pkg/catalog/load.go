package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// overrideFile represents the structure of a templates file:
//
//	templates:
//	  end:
//	    markers: ["До встречи"]
//	    data:
//	      message: "До встречи!"
type overrideFile struct {
	Templates map[string]overrideEntry `mapstructure:"templates"`
}

type overrideEntry struct {
	Name        string         `mapstructure:"name"`
	Description string         `mapstructure:"description"`
	Markers     []string       `mapstructure:"markers"`
	Data        map[string]any `mapstructure:"data"`
}

// LoadFile reads a YAML or JSON templates file and returns a new catalog with the
// overrides applied on top of the built-in templates. Template data keeps the
// key order of the file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}

	raw := make(map[string]any)
	var docs map[string][]byte
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err = json.Unmarshal(data, &raw); err == nil {
			docs, err = jsonDocuments(data)
		}
	} else {
		if err = yaml.Unmarshal(data, &raw); err == nil {
			docs, err = yamlDocuments(data)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return override(Default(), raw, docs)
}

// override applies a decoded templates document on top of base. docs holds
// the data of each template encoded in file order; entries missing from it
// are re-encoded from raw with sorted keys.
func override(base *Catalog, raw map[string]any, docs map[string][]byte) (*Catalog, error) {
	var file overrideFile
	if err := mapstructure.Decode(raw, &file); err != nil {
		return nil, fmt.Errorf("invalid templates file: %w", err)
	}

	entries := make([]Entry, 0, len(base.order)+len(file.Templates))
	for _, t := range base.order {
		entries = append(entries, base.entries[t])
	}

	for key, o := range file.Templates {
		t, err := domain.ParseStepType(key)
		if err != nil {
			return nil, err
		}
		if o.Data == nil {
			return nil, fmt.Errorf("template %q has no data", key)
		}
		if err := checkMarkers(o.Data, o.Markers); err != nil {
			return nil, fmt.Errorf("template %q: %w", key, err)
		}

		doc, ok := docs[key]
		if !ok {
			if doc, err = json.Marshal(o.Data); err != nil {
				return nil, fmt.Errorf("template %q: data is not serializable: %w", key, err)
			}
		}

		e := Entry{
			Type:        t,
			Name:        o.Name,
			Description: o.Description,
			Markers:     o.Markers,
			NewData:     rawDocument(doc),
		}
		if prev, ok := base.entries[t]; ok {
			if e.Name == "" {
				e.Name = prev.Name
			}
			if e.Description == "" {
				e.Description = prev.Description
			}
		}
		entries = append(entries, e)
	}
	return New(entries...)
}

// checkMarkers ensures the guard can recognize the template it is seeding.
func checkMarkers(data map[string]any, markers []string) error {
	if len(markers) == 0 {
		return fmt.Errorf("no marker phrase declared")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("data is not serializable: %w", err)
	}
	for _, m := range markers {
		if strings.Contains(string(b), m) {
			return nil
		}
	}
	return fmt.Errorf("none of the markers %q occurs in the template data", markers)
}

func jsonDocuments(data []byte) (map[string][]byte, error) {
	var file struct {
		Templates map[string]struct {
			Data json.RawMessage `json:"data"`
		} `json:"templates"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	docs := make(map[string][]byte, len(file.Templates))
	for key, e := range file.Templates {
		if len(e.Data) > 0 {
			docs[key] = e.Data
		}
	}
	return docs, nil
}

func yamlDocuments(data []byte) (map[string][]byte, error) {
	var file struct {
		Templates map[string]struct {
			Data yaml.Node `yaml:"data"`
		} `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	docs := make(map[string][]byte, len(file.Templates))
	for key, e := range file.Templates {
		if e.Data.Kind == 0 {
			continue
		}
		b, err := nodeJSON(&e.Data)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", key, err)
		}
		docs[key] = b
	}
	return docs, nil
}

// nodeJSON encodes a YAML node as JSON, walking mappings in document order.
func nodeJSON(n *yaml.Node) ([]byte, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return []byte("null"), nil
		}
		return nodeJSON(n.Content[0])
	case yaml.AliasNode:
		return nodeJSON(n.Alias)
	case yaml.MappingNode:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, err
			}
			k, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			v, err := nodeJSON(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(v)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case yaml.SequenceNode:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			v, err := nodeJSON(c)
			if err != nil {
				return nil, err
			}
			buf.Write(v)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return json.Marshal(v)
	}
}
