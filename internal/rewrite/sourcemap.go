package rewrite

import (
	"encoding/json"
	"strings"
)

// SourceMap is a v3 source map for one rewritten file.
type SourceMap struct {
	Version        int      `json:"version"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// JSON serializes the map for embedding or sidecar emission.
func (m *SourceMap) JSON() ([]byte, error) {
	return json.Marshal(m)
}

type segment struct {
	genLine, genCol int
	srcLine, srcCol int
}

// mappingBuilder tracks the generated cursor while Render walks the edit
// script, recording one segment per retained line start.
type mappingBuilder struct {
	src             string
	genLine, genCol int
	segs            []segment
}

func newMappingBuilder(src string) *mappingBuilder {
	return &mappingBuilder{src: src}
}

// advance moves the generated cursor past inserted text without mapping it.
func (mb *mappingBuilder) advance(text string) {
	for _, r := range text {
		if r == '\n' {
			mb.genLine++
			mb.genCol = 0
		} else {
			mb.genCol++
		}
	}
}

// emitOriginal maps the retained original span [start, end) at the current
// generated position, adding a segment at the span start and after every
// newline inside it.
func (mb *mappingBuilder) emitOriginal(start, end int) {
	if start >= end {
		return
	}
	srcLine, srcCol := mb.lineCol(start)
	mb.segs = append(mb.segs, segment{mb.genLine, mb.genCol, srcLine, srcCol})
	for _, r := range mb.src[start:end] {
		if r == '\n' {
			mb.genLine++
			mb.genCol = 0
			srcLine++
			srcCol = 0
			mb.segs = append(mb.segs, segment{mb.genLine, 0, srcLine, 0})
		} else {
			mb.genCol++
			srcCol++
		}
	}
}

func (mb *mappingBuilder) lineCol(off int) (line, col int) {
	for _, r := range mb.src[:off] {
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

func (mb *mappingBuilder) sourceMap(source string) *SourceMap {
	var sb strings.Builder
	var buf []byte
	prevGenLine, prevGenCol, prevSrcLine, prevSrcCol := 0, 0, 0, 0
	lineHasSeg := false

	for _, s := range mb.segs {
		for prevGenLine < s.genLine {
			sb.WriteByte(';')
			prevGenLine++
			prevGenCol = 0
			lineHasSeg = false
		}
		if lineHasSeg {
			sb.WriteByte(',')
		}
		buf = buf[:0]
		buf = appendVLQ(buf, s.genCol-prevGenCol)
		buf = appendVLQ(buf, 0) // single source
		buf = appendVLQ(buf, s.srcLine-prevSrcLine)
		buf = appendVLQ(buf, s.srcCol-prevSrcCol)
		sb.Write(buf)
		prevGenCol = s.genCol
		prevSrcLine = s.srcLine
		prevSrcCol = s.srcCol
		lineHasSeg = true
	}

	return &SourceMap{
		Version:        3,
		Sources:        []string{source},
		SourcesContent: []string{mb.src},
		Names:          []string{},
		Mappings:       sb.String(),
	}
}

const vlqChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// appendVLQ encodes n as a base64 VLQ: sign bit in the lowest position,
// five payload bits per character, bit 0x20 marking continuation.
func appendVLQ(dst []byte, n int) []byte {
	u := n << 1
	if n < 0 {
		u = (-n << 1) | 1
	}
	for {
		digit := u & 0x1f
		u >>= 5
		if u != 0 {
			digit |= 0x20
		}
		dst = append(dst, vlqChars[digit])
		if u == 0 {
			return dst
		}
	}
}
