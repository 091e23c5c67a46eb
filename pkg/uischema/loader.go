package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-signupform/pkg/model"
)

// LoadFS walks fsys and parses every JSON/YAML UI schema file. Icon sets are
// merged across files; operations must be unique. A nil fsys yields an empty
// store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		operations: make(map[string]Operation),
		icons:      make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() && isSchemaFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("uischema: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return nil, err
		}
		if err := store.add(doc, path); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Operation returns the configuration for the supplied operation id.
func (s *Store) Operation(id string) (Operation, bool) {
	if s == nil {
		return Operation{}, false
	}
	op, ok := s.operations[id]
	return op, ok
}

// Icon returns the sanitised markup of a named icon.
func (s *Store) Icon(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	markup, ok := s.icons[strings.TrimSpace(name)]
	return markup, ok
}

// Empty reports whether the store holds any operations.
func (s *Store) Empty() bool {
	return s == nil || len(s.operations) == 0
}

type documentFile struct {
	Icons      map[string]string        `json:"icons" yaml:"icons"`
	Operations map[string]operationFile `json:"operations" yaml:"operations"`
}

type operationFile struct {
	Fields map[string]FieldConfig `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}
	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	return doc, nil
}

func (s *Store) add(doc documentFile, source string) error {
	for name, markup := range doc.Icons {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("uischema: file %s defines an icon with an empty name", source)
		}
		cleaned := sanitizeIconMarkup(markup)
		if cleaned == "" {
			return fmt.Errorf("uischema: file %s icon %q is empty after sanitising", source, name)
		}
		s.icons[name] = cleaned
	}

	for opID, raw := range doc.Operations {
		id := strings.TrimSpace(opID)
		if id == "" {
			return fmt.Errorf("uischema: file %s defines an empty operation id", source)
		}
		if _, exists := s.operations[id]; exists {
			return fmt.Errorf("uischema: duplicate operation %q (file %s)", id, source)
		}

		op := Operation{ID: id, Source: source, Fields: make(map[string]FieldConfig, len(raw.Fields))}
		for key, cfg := range raw.Fields {
			name, err := model.ParseFieldName(key)
			if err != nil {
				return fmt.Errorf("uischema: operation %q (file %s): %w", id, source, err)
			}
			cfg.IconMarkup = sanitizeIconMarkup(cfg.IconMarkup)
			op.Fields[string(name)] = cfg
		}
		s.operations[id] = op
	}
	return nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
