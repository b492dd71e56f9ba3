package recording

import (
	"io"

	"github.com/gogpu/gg"
)

// Backend is the interface that all output backends implement. Backends
// receive recorded commands in order and translate them to their format.
//
// Backends are created via the registry using NewBackend(name) and
// registered via Register() in their init() functions.
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using recording.Register()
//  2. Handle every Backend method, even if some are no-ops
//  3. Reset its output in Begin so that an instance can be reused
type Backend interface {
	// Begin prepares a canvas of the given dimensions.
	Begin(width, height int) error

	// End finalizes the output. Output methods are valid afterwards.
	End() error

	// BeginGroup opens a named group.
	BeginGroup(name string)

	// EndGroup closes the innermost group.
	EndGroup()

	// Clear fills the whole canvas with c.
	Clear(c gg.RGBA)

	// FillCircle fills a circle.
	FillCircle(center gg.Point, radius float64, c gg.RGBA)

	// StrokeLine strokes one segment.
	StrokeLine(from, to gg.Point, s Stroke)

	// StrokePolyline strokes pts as one open polyline.
	StrokePolyline(pts []gg.Point, s Stroke)

	// DrawText draws s with its baseline origin at at.
	DrawText(s string, at gg.Point, size float64, c gg.RGBA)
}

// WriterBackend extends Backend with streaming output.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content. It must be called after End.
	WriteTo(w io.Writer) (int64, error)

	// MediaType returns the MIME type of the output, e.g. "image/svg+xml".
	MediaType() string
}

// FileBackend extends Backend with direct file output.
type FileBackend interface {
	Backend

	// SaveToFile writes the rendered content to path. It must be called
	// after End.
	SaveToFile(path string) error
}
