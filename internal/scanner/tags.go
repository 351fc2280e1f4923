// Package scanner locates inline component blocks, shared-code fences and
// fence declarations in a source file using pattern scanning. It never builds
// a syntax tree of the host language.
package scanner

import (
	"regexp"
	"strings"
)

// Block is one tagged-template occurrence in a source file.
type Block struct {
	Start  int    // byte offset of the tag's first character
	End    int    // byte offset just past the closing backtick
	Tag    string
	Markup string // raw text between the backticks
}

// tagAlternation joins the configured tag names into a single regex
// alternation. Names are escaped so they are always matched literally.
func tagAlternation(tags []string) string {
	escaped := make([]string, len(tags))
	for i, t := range tags {
		escaped[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(escaped, "|")
}

func blockRegexp(tags []string) *regexp.Regexp {
	return regexp.MustCompile(`\b(` + tagAlternation(tags) + ")`([^`]*)`")
}

// FindBlocks returns every inline block in src, in source order. Matching is
// lazy: the first backtick after the opening one closes the block, so a block
// body cannot contain a literal backtick.
func FindBlocks(src string, tags []string) []Block {
	if len(tags) == 0 {
		return nil
	}
	re := blockRegexp(tags)

	var blocks []Block
	for _, m := range re.FindAllStringSubmatchIndex(src, -1) {
		blocks = append(blocks, Block{
			Start:  m[0],
			End:    m[1],
			Tag:    src[m[2]:m[3]],
			Markup: src[m[4]:m[5]],
		})
	}
	return blocks
}
