// Package store caches resolved markup and compiled output keyed by virtual
// module path. The cache is an injected collaborator: the transform phase
// populates it and the load phase, possibly much later, reads it back.
package store

import "context"

// Store is the process-wide module cache. Entries are immutable once
// inserted: a key always maps to the same content by construction, so
// concurrent writes of the same key are safe to race.
type Store interface {
	ModuleStore
	CompiledStore
	Close() error
}

// ModuleStore persists resolved markup per virtual path.
type ModuleStore interface {
	// PutModule records the resolved markup behind a virtual path,
	// remembering which source file produced it.
	PutModule(ctx context.Context, path, markup, sourceFile string) error

	// GetModule retrieves resolved markup by virtual path.
	GetModule(ctx context.Context, path string) (string, bool, error)

	// DeleteBySource drops every entry a source file produced, so a
	// watch-mode host can invalidate stale modules when the file changes.
	DeleteBySource(ctx context.Context, sourceFile string) error
}

// CompiledStore memoizes the compiler's output per virtual path.
type CompiledStore interface {
	PutCompiled(ctx context.Context, path, code string) error
	GetCompiled(ctx context.Context, path string) (string, bool, error)
}
