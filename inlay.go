// Package inlay rewrites source files so tagged inline component blocks
// become imports of content-addressed virtual modules, compiled on demand
// through the host build tool's resolve/load hooks.
package inlay

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"inlay/internal/resolve"
	"inlay/internal/rewrite"
	"inlay/internal/store"
)

// Compiler turns resolved markup into an executable ES module. The rewriter
// treats it as opaque; its errors propagate to the host unwrapped.
type Compiler interface {
	Compile(markup string, opts CompileOptions) (CompiledOutput, error)
}

// CompileOptions parameterize one compiler invocation.
type CompileOptions struct {
	Generate string // code generation target
	CSS      string // stylesheet handling mode
	Filename string // synthetic filename, used in compiler diagnostics
}

// CompiledOutput is the compiler's generated module source.
type CompiledOutput struct {
	Code string
}

// TransformResult is a rewritten file plus its source map. The host applies
// it in place of the original text.
type TransformResult struct {
	Code string
	Map  *rewrite.SourceMap
}

var defaultExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".svelte"}

// Plugin implements the host build tool's transform, resolve and load hooks.
// The module cache is shared across all files the plugin transforms and
// lives for the whole build session.
type Plugin struct {
	cfg        rewrite.Config
	extensions map[string]bool
	store      store.Store
	compiler   Compiler
	generate   string
	css        string
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithTags replaces the default tag names.
func WithTags(tags ...string) Option {
	return func(p *Plugin) { p.cfg.Tags = tags }
}

// WithImportsFence replaces the imports-fence delimiters.
func WithImportsFence(start, end string) Option {
	return func(p *Plugin) { p.cfg.ImportsFence = rewrite.Delims{Start: start, End: end} }
}

// WithSharedFence replaces the definitions-fence delimiters.
func WithSharedFence(start, end string) Option {
	return func(p *Plugin) { p.cfg.SharedFence = rewrite.Delims{Start: start, End: end} }
}

// WithExtensions replaces the eligible file extensions.
func WithExtensions(exts ...string) Option {
	return func(p *Plugin) {
		p.extensions = make(map[string]bool, len(exts))
		for _, e := range exts {
			p.extensions[e] = true
		}
	}
}

// WithStore injects the module cache. The default is a fresh in-memory
// store per Plugin; a durable store survives across build sessions.
func WithStore(s store.Store) Option {
	return func(p *Plugin) { p.store = s }
}

// WithCompiler sets the external component compiler.
func WithCompiler(c Compiler) Option {
	return func(p *Plugin) { p.compiler = c }
}

// WithCompileTarget overrides the compiler's generation target and css mode.
func WithCompileTarget(generate, css string) Option {
	return func(p *Plugin) {
		p.generate = generate
		p.css = css
	}
}

func New(opts ...Option) *Plugin {
	p := &Plugin{
		cfg:      rewrite.DefaultConfig(),
		store:    store.NewMemory(),
		generate: "dom",
		css:      "injected",
	}
	WithExtensions(defaultExtensions...)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Store exposes the injected module cache, e.g. for staleness invalidation.
func (p *Plugin) Store() store.Store { return p.store }

// Eligible reports whether a file id should be considered for transforming:
// a matching extension and no dependency-directory segment. Virtual ids are
// never eligible.
func (p *Plugin) Eligible(id string) bool {
	if strings.HasPrefix(id, resolve.ResolvedMark) || strings.HasPrefix(id, resolve.VirtualPrefix) {
		return false
	}
	path := id
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == "node_modules" {
			return false
		}
	}
	return p.extensions[filepath.Ext(path)]
}

// Transform rewrites one source file and caches every module the pass
// resolved. A nil result means the host must treat the file as untouched.
func (p *Plugin) Transform(ctx context.Context, code, id string) (*TransformResult, error) {
	if !p.Eligible(id) {
		return nil, nil
	}
	res := rewrite.Rewrite(code, id, p.cfg)
	if res == nil {
		return nil, nil
	}
	for _, m := range res.Modules {
		if err := p.store.PutModule(ctx, m.Path, m.Markup, id); err != nil {
			return nil, fmt.Errorf("failed to cache module %s: %w", m.Path, err)
		}
	}
	return &TransformResult{Code: res.Code, Map: res.Map}, nil
}

// ResolveID maps a virtual module path to an internal resolved identifier.
// ok=false declines ids that are not ours.
func (p *Plugin) ResolveID(id string) (resolved string, ok bool) {
	if strings.HasPrefix(id, resolve.VirtualPrefix) {
		return resolve.ResolvedMark + id, true
	}
	return "", false
}

// Load compiles the cached markup behind a resolved identifier, memoizing
// the output. ok=false declines identifiers that are not ours; compiler
// failures are returned as-is and surface as build errors attributed to the
// module's synthetic filename.
func (p *Plugin) Load(ctx context.Context, id string) (code string, ok bool, err error) {
	if !strings.HasPrefix(id, resolve.ResolvedMark+resolve.VirtualPrefix) {
		return "", false, nil
	}
	path := strings.TrimPrefix(id, resolve.ResolvedMark)

	if cached, hit, err := p.store.GetCompiled(ctx, path); err == nil && hit {
		return cached, true, nil
	}

	markup, hit, err := p.store.GetModule(ctx, path)
	if err != nil {
		return "", true, fmt.Errorf("failed to read module %s: %w", path, err)
	}
	if !hit {
		return "", true, fmt.Errorf("no cached markup for %s", path)
	}
	if p.compiler == nil {
		return "", true, fmt.Errorf("no compiler configured for %s", path)
	}

	out, err := p.compiler.Compile(markup, CompileOptions{
		Generate: p.generate,
		CSS:      p.css,
		Filename: resolve.PathToFilename(path),
	})
	if err != nil {
		return "", true, err
	}

	_ = p.store.PutCompiled(ctx, path, out.Code)
	return out.Code, true, nil
}
