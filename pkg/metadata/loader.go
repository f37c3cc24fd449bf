package metadata

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-parsley/pkg/model"
)

// Store holds the metadata blocks keyed by form name.
type Store struct {
	forms   map[string]*model.Meta
	sources map[string]string
}

type documentFile struct {
	Forms map[string]*model.Meta `json:"forms" yaml:"forms" toml:"forms"`
}

// LoadFS walks fsys and parses every metadata document it finds. A form
// declared twice, in the same or different files, is an error. When fsys is nil
// or holds no documents the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{
		forms:   make(map[string]*model.Meta),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || formatOf(p) == "" {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("metadata: read %s: %w", p, err)
		}
		doc, err := parseDocument(data, p)
		if err != nil {
			return err
		}
		return store.add(doc, p)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Parse reads a single document. format is one of json, yaml, yml or toml.
func Parse(data []byte, format string) (*Store, error) {
	source := "document." + strings.TrimPrefix(strings.ToLower(format), ".")
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	store := &Store{
		forms:   make(map[string]*model.Meta),
		sources: make(map[string]string),
	}
	if err := store.add(doc, source); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(doc documentFile, source string) error {
	for rawName, meta := range doc.Forms {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return fmt.Errorf("metadata: file %s defines an empty form name", source)
		}
		if previous, exists := s.sources[name]; exists {
			return fmt.Errorf("metadata: duplicate form %q (files %s and %s)", name, previous, source)
		}
		if meta == nil {
			meta = &model.Meta{}
		}
		meta.Namespace = strings.TrimSpace(meta.Namespace)
		s.forms[name] = meta
		s.sources[name] = source
	}
	return nil
}

// Meta returns a copy of the metadata declared for form.
func (s *Store) Meta(form string) (*model.Meta, bool) {
	if s == nil {
		return nil, false
	}
	meta, ok := s.forms[form]
	if !ok {
		return nil, false
	}
	return meta.Clone(), true
}

// Source reports the file a form's metadata was read from.
func (s *Store) Source(form string) (string, bool) {
	if s == nil {
		return "", false
	}
	source, ok := s.sources[form]
	return source, ok
}

// Forms lists the declared form names in sorted order.
func (s *Store) Forms() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any form.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func formatOf(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("metadata: file %s is empty", source)
	}

	var err error
	switch formatOf(source) {
	case "json":
		err = json.Unmarshal(data, &doc)
	case "yaml":
		err = yaml.Unmarshal(data, &doc)
	case "toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return documentFile{}, fmt.Errorf("metadata: unsupported file format %s (supported: json, yaml, toml)", source)
	}
	if err != nil {
		return documentFile{}, fmt.Errorf("metadata: parse %s: %w", source, err)
	}
	return doc, nil
}
