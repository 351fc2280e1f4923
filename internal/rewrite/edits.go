package rewrite

import (
	"sort"
	"strings"
)

type edit struct {
	start, end int
	repl       string
}

// Editor accumulates non-overlapping span edits plus prepended text against
// an original source, then renders the result together with a source map.
// The original text is never mutated.
type Editor struct {
	src    string
	prefix []string
	edits  []edit
}

func NewEditor(src string) *Editor {
	return &Editor{src: src}
}

// Replace substitutes the span [start, end) with repl.
func (e *Editor) Replace(start, end int, repl string) {
	e.edits = append(e.edits, edit{start: start, end: end, repl: repl})
}

// Delete removes the span [start, end).
func (e *Editor) Delete(start, end int) {
	e.Replace(start, end, "")
}

// Prepend adds text ahead of the file's output.
func (e *Editor) Prepend(text string) {
	e.prefix = append(e.prefix, text)
}

// Dirty reports whether any edit was recorded.
func (e *Editor) Dirty() bool {
	return len(e.edits) > 0 || len(e.prefix) > 0
}

// Render produces the rewritten text and a source map attributing retained
// spans to their original positions. Overlapping edits keep the first one.
func (e *Editor) Render(source string) (string, *SourceMap) {
	edits := append([]edit(nil), e.edits...)
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var out strings.Builder
	mb := newMappingBuilder(e.src)

	for _, p := range e.prefix {
		mb.advance(p)
		out.WriteString(p)
	}

	pos := 0
	for _, ed := range edits {
		if ed.start < pos {
			continue
		}
		mb.emitOriginal(pos, ed.start)
		out.WriteString(e.src[pos:ed.start])
		mb.advance(ed.repl)
		out.WriteString(ed.repl)
		pos = ed.end
	}
	mb.emitOriginal(pos, len(e.src))
	out.WriteString(e.src[pos:])

	return out.String(), mb.sourceMap(source)
}
