// Package rewrite drives the per-file pipeline: fence extraction, shared
// definition resolution, block processing and the final text emission.
package rewrite

import (
	"fmt"
	"strings"

	"inlay/internal/graph"
	"inlay/internal/resolve"
	"inlay/internal/scanner"
)

// Delims configures one fence kind's literal start and end markers.
type Delims struct {
	Start string
	End   string
}

// Config is the rewriter's per-file configuration.
type Config struct {
	Tags         []string
	ImportsFence Delims
	SharedFence  Delims
}

// DefaultConfig returns the stock tag names and fence delimiters.
func DefaultConfig() Config {
	return Config{
		Tags:         []string{"html", "svelte"},
		ImportsFence: Delims{Start: "/* inlay:imports", End: "*/"},
		SharedFence:  Delims{Start: "/* inlay:shared", End: "*/"},
	}
}

// Result is the outcome of rewriting one file. Modules lists every resolved
// module the pass produced, in registration order, for the caller to cache.
type Result struct {
	Code    string
	Map     *SourceMap
	Modules []resolve.Module
}

// Rewrite runs the full pipeline over one source file. A nil result means
// the file contained no fence and no inline block and must pass through
// untouched.
func Rewrite(src, source string, cfg Config) *Result {
	ed := NewEditor(src)

	// scan-fences
	var fences []scanner.Fence
	var sharedImports []string
	var decls []scanner.Decl

	if f, ok := scanner.FindFence(src, cfg.ImportsFence.Start, cfg.ImportsFence.End); ok {
		fences = append(fences, f)
		ed.Delete(f.Start, f.End)
		for _, line := range strings.Split(f.Content, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				sharedImports = append(sharedImports, trimmed)
			}
		}
	}
	if f, ok := scanner.FindFence(src, cfg.SharedFence.Start, cfg.SharedFence.End); ok {
		fences = append(fences, f)
		ed.Delete(f.Start, f.End)
		var imports []string
		decls, imports = scanner.ParseDeclarations(f.Content, cfg.Tags)
		sharedImports = append(sharedImports, imports...)
	}

	// resolve-definitions
	byName := make(map[string]scanner.Decl, len(decls))
	for _, d := range decls {
		byName[d.Name] = d
	}
	g := graph.Build(decls)
	order := g.Sorted()

	modules := make(map[string]resolve.Module)
	var moduleOrder []resolve.Module
	var hoistImports, hoistMerges []string

	register := func(markup string) resolve.Module {
		m := resolve.NewModule(markup)
		if existing, ok := modules[m.Hash]; ok {
			return existing
		}
		modules[m.Hash] = m
		moduleOrder = append(moduleOrder, m)
		hoistImports = append(hoistImports, m.ImportStmt())
		if merge := m.MergeStmt(); merge != "" {
			hoistMerges = append(hoistMerges, merge)
		}
		return m
	}

	// order-components: resolve shared components, dependencies first.
	compModule := make(map[string]resolve.Module)
	for _, name := range order {
		d, ok := byName[name]
		if !ok || d.Kind != scanner.KindComponent {
			continue
		}
		closure := g.TransitiveClosure(name)
		delete(closure, name)
		shared := sharedCode(sharedImports, order, closure, byName, compModule, d.Text)
		compModule[name] = register(resolve.Inject(d.Text, shared))
	}

	// process-blocks, skipping spans already consumed by a fence.
	for _, b := range scanner.FindBlocks(src, cfg.Tags) {
		if insideFence(fences, b.Start) {
			continue
		}
		direct := make(map[string]struct{})
		for _, name := range order {
			if graph.Mentions(b.Markup, name) {
				direct[name] = struct{}{}
			}
		}
		shared := sharedCode(sharedImports, order, direct, byName, compModule, b.Markup)
		m := register(resolve.Inject(b.Markup, shared))
		ed.Replace(b.Start, b.End, m.LocalName)
	}

	// emit
	if !ed.Dirty() {
		return nil
	}

	var prefix []string
	prefix = append(prefix, dedupe(append(sharedImports, hoistImports...))...)
	prefix = append(prefix, hoistMerges...)
	for _, name := range order {
		d := byName[name]
		if d.Kind == scanner.KindPlain {
			prefix = append(prefix, d.Text)
			continue
		}
		if m, ok := compModule[name]; ok {
			prefix = append(prefix, fmt.Sprintf("const %s = %s;", name, m.LocalName))
		}
	}
	if len(prefix) > 0 {
		ed.Prepend(strings.Join(prefix, "\n") + "\n")
	}

	code, srcMap := ed.Render(source)
	return &Result{Code: code, Map: srcMap, Modules: moduleOrder}
}

// sharedCode assembles the injection text for one block or shared component:
// the file's shared imports, then for each needed definition either the
// import statements binding a sibling compiled component or a plain
// definition's text verbatim, all in dependency order. Names the target's
// own instance script already declares are skipped so local shadowing wins.
func sharedCode(
	imports []string,
	order []string,
	needed map[string]struct{},
	byName map[string]scanner.Decl,
	compModule map[string]resolve.Module,
	markup string,
) string {
	parts := append([]string(nil), imports...)
	for _, name := range order {
		if _, ok := needed[name]; !ok {
			continue
		}
		if resolve.DeclaresName(markup, name) {
			continue
		}
		d := byName[name]
		if d.Kind == scanner.KindComponent {
			if m, ok := compModule[name]; ok {
				parts = append(parts, m.BindStmts(name)...)
			}
			continue
		}
		parts = append(parts, d.Text)
	}
	return strings.Join(parts, "\n")
}

func insideFence(fences []scanner.Fence, off int) bool {
	for _, f := range fences {
		if f.Contains(off) {
			return true
		}
	}
	return false
}

func dedupe(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
