package viz

import (
	"errors"
	"fmt"
)

// ErrViewportTooSmall reports a viewport with no room inside the margin.
var ErrViewportTooSmall = errors.New("viz: viewport too small for margin")

// RenderError reports an index that does not address the coordinate
// sequence it refers to.
type RenderError struct {
	Field    string // "path", "all_edges.source" or "all_edges.target"
	Position int    // offset within Field
	Index    int    // offending index
	Len      int    // length of the coordinate sequence
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("viz: %s[%d] = %d out of range [0, %d)", e.Field, e.Position, e.Index, e.Len)
}
