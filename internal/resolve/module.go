// Package resolve turns a block's raw markup plus shared code into a
// content-addressed module: injection, hashing and generated naming.
package resolve

import (
	"fmt"
	"strings"
)

const (
	// VirtualPrefix marks module paths that have no filesystem backing.
	VirtualPrefix = "virtual:inlay/"

	// ResolvedMark prefixes a resolved identifier so the host's resolver
	// never mistakes it for a real path.
	ResolvedMark = "\x00"
)

// Module is the final artifact for one inline block or shared component.
// Two modules with identical resolved markup share one hash, one path and
// one local name.
type Module struct {
	Hash            string
	Markup          string // fully resolved markup
	Path            string // synthetic virtual module path
	LocalName       string // generated top-level binding, Inline_<hash>
	HasModuleScript bool
}

// NewModule computes the identity of resolved markup.
func NewModule(resolved string) Module {
	h := Hash(resolved)
	return Module{
		Hash:            h,
		Markup:          resolved,
		Path:            VirtualPrefix + h + ".svelte",
		LocalName:       "Inline_" + h,
		HasModuleScript: hasModuleScript(resolved),
	}
}

// Filename is the synthetic filename handed to the compiler; build errors in
// the markup are attributed to it.
func (m Module) Filename() string {
	return m.LocalName + ".svelte"
}

func (m Module) namespaceName() string {
	return "__InlineNS_" + m.Hash
}

// ImportStmt is the hoisted import for the module. A module-context script
// means the block exports named values, so a namespace import is used and
// MergeStmt folds the names onto the default export; otherwise this is a
// plain default import of LocalName.
func (m Module) ImportStmt() string {
	if m.HasModuleScript {
		return fmt.Sprintf("import * as %s from '%s';", m.namespaceName(), m.Path)
	}
	return fmt.Sprintf("import %s from '%s';", m.LocalName, m.Path)
}

// MergeStmt binds LocalName to the default export with the named exports
// merged on. Empty when the module has no module-context script.
func (m Module) MergeStmt() string {
	if !m.HasModuleScript {
		return ""
	}
	ns := m.namespaceName()
	return fmt.Sprintf("const %s = Object.assign(%s.default, %s);", m.LocalName, ns, ns)
}

// BindStmts returns the statements that bind name to this module inside
// another block's script region.
func (m Module) BindStmts(name string) []string {
	if m.HasModuleScript {
		ns := m.namespaceName()
		return []string{
			fmt.Sprintf("import * as %s from '%s';", ns, m.Path),
			fmt.Sprintf("const %s = Object.assign(%s.default, %s);", name, ns, ns),
		}
	}
	return []string{fmt.Sprintf("import %s from '%s';", name, m.Path)}
}

// PathToFilename reverses a virtual path to its synthetic filename, e.g.
// "virtual:inlay/ab12cd34.svelte" -> "Inline_ab12cd34.svelte".
func PathToFilename(path string) string {
	rest := strings.TrimPrefix(path, VirtualPrefix)
	return "Inline_" + rest
}
