package scanner

import "strings"

// Fence is a delimited region of a source file carrying code shared across
// the file's inline blocks.
type Fence struct {
	Start   int    // offset of the start delimiter
	End     int    // offset just past the end delimiter
	Content string // interior text, delimiters excluded
}

// Contains reports whether the byte offset falls inside the fence span.
func (f Fence) Contains(off int) bool {
	return off >= f.Start && off < f.End
}

// FindFence locates the first region delimited by the literal start and end
// strings. The first end-delimiter occurrence after the start closes the
// fence. A missing start or end delimiter means no fence: a half-open fence
// is treated as absent, not as an error.
func FindFence(src, start, end string) (Fence, bool) {
	if start == "" || end == "" {
		return Fence{}, false
	}
	s := strings.Index(src, start)
	if s < 0 {
		return Fence{}, false
	}
	inner := s + len(start)
	e := strings.Index(src[inner:], end)
	if e < 0 {
		return Fence{}, false
	}
	return Fence{
		Start:   s,
		End:     inner + e + len(end),
		Content: src[inner : inner+e],
	}, true
}
