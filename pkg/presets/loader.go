package presets

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Presets map[string]Definition `json:"presets" yaml:"presets"`
}

// LoadFS walks fsys and parses every JSON/YAML preset file. A name defined
// twice, in one file or across files, is an error. A nil fsys yields an
// empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isPresetFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("presets: read %s: %w", path, err)
		}
		return addDocument(store, data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single preset file.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("presets: read %s: %w", path, err)
	}
	store := NewStore()
	if err := addDocument(store, data, path); err != nil {
		return nil, err
	}
	return store, nil
}

func addDocument(store *Store, data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for key, def := range doc.Presets {
		name := strings.TrimSpace(key)
		if name == "" {
			return fmt.Errorf("presets: file %s defines a preset with an empty name", source)
		}
		if _, exists := store.Get(name); exists {
			return fmt.Errorf("presets: duplicate preset %q (file %s)", name, source)
		}
		def.Name = name
		def.Source = source
		if err := store.Register(def); err != nil {
			return fmt.Errorf("presets: file %s: %w", source, err)
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("presets: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("presets: parse %s: invalid JSON or YAML", source)
}

func isPresetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
