package store

import (
	"context"
	"sync"
)

// Memory is the default in-process store. It never evicts on its own; a
// build process transforms a bounded file set, so growth is bounded too.
type Memory struct {
	mu       sync.RWMutex
	modules  map[string]string
	compiled map[string]string
	bySource map[string]map[string]struct{} // source file -> virtual paths
}

func NewMemory() *Memory {
	return &Memory{
		modules:  make(map[string]string),
		compiled: make(map[string]string),
		bySource: make(map[string]map[string]struct{}),
	}
}

func (m *Memory) PutModule(_ context.Context, path, markup, sourceFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modules[path] = markup
	if sourceFile != "" {
		if m.bySource[sourceFile] == nil {
			m.bySource[sourceFile] = make(map[string]struct{})
		}
		m.bySource[sourceFile][path] = struct{}{}
	}
	return nil
}

func (m *Memory) GetModule(_ context.Context, path string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	markup, ok := m.modules[path]
	return markup, ok, nil
}

func (m *Memory) DeleteBySource(_ context.Context, sourceFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for path := range m.bySource[sourceFile] {
		delete(m.modules, path)
		delete(m.compiled, path)
	}
	delete(m.bySource, sourceFile)
	return nil
}

func (m *Memory) PutCompiled(_ context.Context, path, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.compiled[path] = code
	return nil
}

func (m *Memory) GetCompiled(_ context.Context, path string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.compiled[path]
	return code, ok, nil
}

func (m *Memory) Close() error { return nil }
