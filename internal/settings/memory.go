package settings

import (
	"context"
	"sync"

	"finitefield.org/hanko-seo/internal/seo"
)

// Memory keeps settings in process memory.
type Memory struct {
	mu    sync.RWMutex
	sites map[string]seo.Settings
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sites: make(map[string]seo.Settings)}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, siteID string) (seo.Settings, error) {
	id, err := normalizeSiteID(siteID)
	if err != nil {
		return seo.Settings{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sites[id]; ok {
		return s, nil
	}
	return seo.DefaultSettings(id), nil
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, s seo.Settings) error {
	s, err := prepare(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.sites[s.SiteID] = s
	m.mu.Unlock()
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, siteID string) error {
	id, err := normalizeSiteID(siteID)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sites[id]; !ok {
		return ErrNotFound
	}
	delete(m.sites, id)
	return nil
}
