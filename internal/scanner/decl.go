package scanner

import (
	"regexp"
	"sort"
)

// DeclKind distinguishes shared component declarations from plain values.
type DeclKind string

const (
	KindComponent DeclKind = "component"
	KindPlain     DeclKind = "plain"
)

// Decl is one top-level declaration extracted from a definitions fence.
type Decl struct {
	Name  string
	Kind  DeclKind
	Text  string // raw markup for a component, full declaration text for a plain value
	Order int    // declaration order within the fence
}

var (
	importLineRe = regexp.MustCompile(`(?m)^[ \t]*import\s[^\n]*`)
	plainDeclRe  = regexp.MustCompile(`(?m)^[ \t]*((?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*))`)
)

func componentDeclRegexp(tags []string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*const\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*(?:` +
		tagAlternation(tags) + ")`([^`]*)`")
}

// ParseDeclarations enumerates the top-level statements of a definitions
// fence: named component declarations, plain value declarations, and bare
// import statements. Every name maps to exactly one Decl; a later
// declaration of the same name wins. Names claimed by a component are
// excluded from the plain pass.
func ParseDeclarations(content string, tags []string) ([]Decl, []string) {
	byName := map[string]int{}
	var decls []Decl
	var covered [][2]int

	add := func(d Decl) {
		if i, ok := byName[d.Name]; ok {
			// Last declaration wins; keep the original slot's order index.
			d.Order = decls[i].Order
			decls[i] = d
			return
		}
		d.Order = len(decls)
		byName[d.Name] = len(decls)
		decls = append(decls, d)
	}

	if len(tags) > 0 {
		re := componentDeclRegexp(tags)
		for _, m := range re.FindAllStringSubmatchIndex(content, -1) {
			covered = append(covered, [2]int{m[0], m[1]})
			add(Decl{
				Name: content[m[2]:m[3]],
				Kind: KindComponent,
				Text: content[m[4]:m[5]],
			})
		}
	}

	inCovered := func(off int) bool {
		for _, span := range covered {
			if off >= span[0] && off < span[1] {
				return true
			}
		}
		return false
	}

	for _, m := range plainDeclRe.FindAllStringSubmatchIndex(content, -1) {
		start := m[2] // keyword position, indentation stripped
		if inCovered(start) {
			continue
		}
		name := content[m[4]:m[5]]
		if i, ok := byName[name]; ok && decls[i].Kind == KindComponent {
			continue
		}
		end := declExtent(content, start)
		covered = append(covered, [2]int{m[0], end})
		add(Decl{
			Name: name,
			Kind: KindPlain,
			Text: content[start:end],
		})
	}

	var imports []string
	for _, m := range importLineRe.FindAllStringIndex(content, -1) {
		if inCovered(m[0]) {
			continue
		}
		imports = append(imports, content[m[0]:m[1]])
	}

	sort.SliceStable(decls, func(i, j int) bool { return decls[i].Order < decls[j].Order })
	return decls, imports
}

// declExtent scans forward from the declaration keyword, tracking nested
// brace, bracket and paren depth, and stops just past the first top-level
// semicolon. When no top-level semicolon exists before end-of-text the
// declaration degrades to newline-terminated extraction.
func declExtent(content string, start int) int {
	depth := 0
	for i := start; i < len(content); i++ {
		switch content[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case ';':
			if depth <= 0 {
				return i + 1
			}
		}
	}
	for i := start; i < len(content); i++ {
		if content[i] == '\n' {
			return i
		}
	}
	return len(content)
}
