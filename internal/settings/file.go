package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"finitefield.org/hanko-seo/internal/seo"
)

// File stores settings in one YAML document keyed by site id. The file is
// re-read on every Get so hand edits take effect without a restart.
type File struct {
	path string
	mu   sync.Mutex
}

type fileDocument struct {
	Sites map[string]seo.Settings `yaml:"sites"`
}

// rawDocument defers decoding each site so omitted keys keep their defaults.
type rawDocument struct {
	Sites map[string]yaml.Node `yaml:"sites"`
}

// NewFile returns a store backed by the YAML file at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Get implements Store.
func (f *File) Get(_ context.Context, siteID string) (seo.Settings, error) {
	id, err := normalizeSiteID(siteID)
	if err != nil {
		return seo.Settings{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return seo.Settings{}, err
	}
	if s, ok := doc.Sites[id]; ok {
		s.SiteID = id
		return s, nil
	}
	return seo.DefaultSettings(id), nil
}

// Save implements Store.
func (f *File) Save(_ context.Context, s seo.Settings) error {
	s, err := prepare(s)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	doc.Sites[s.SiteID] = s
	return f.write(doc)
}

// Delete implements Store.
func (f *File) Delete(_ context.Context, siteID string) error {
	id, err := normalizeSiteID(siteID)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := doc.Sites[id]; !ok {
		return ErrNotFound
	}
	delete(doc.Sites, id)
	return f.write(doc)
}

func (f *File) read() (fileDocument, error) {
	doc := fileDocument{Sites: map[string]seo.Settings{}}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("settings: read %s: %w", f.path, err)
	}
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return doc, fmt.Errorf("settings: parse %s: %w", f.path, err)
	}
	for id, node := range raw.Sites {
		s := seo.DefaultSettings(id)
		if err := node.Decode(&s); err != nil {
			return doc, fmt.Errorf("settings: parse %s: site %q: %w", f.path, id, err)
		}
		doc.Sites[id] = s
	}
	return doc, nil
}

// write replaces the file through a temp file in the same directory.
func (f *File) write(doc fileDocument) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".seo-settings-*")
	if err != nil {
		return fmt.Errorf("settings: temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: replace %s: %w", f.path, err)
	}
	return nil
}
