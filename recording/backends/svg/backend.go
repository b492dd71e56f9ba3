// Package svg renders recordings to SVG documents with the float API of
// github.com/ajstarks/svgo.
//
// Importing the package registers the "svg" backend:
//
//	import _ "github.com/gogpu/algoviz/recording/backends/svg"
//
// Groups become <g id="..."> elements, which keeps the layers of a drawing
// (edges, markers, path) addressable from CSS and tests.
package svg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	svgo "github.com/ajstarks/svgo/float"
	"github.com/gogpu/gg"

	"github.com/gogpu/algoviz/recording"
)

// Name is the registry name of the backend.
const Name = "svg"

func init() {
	recording.Register(Name, func() recording.Backend {
		return NewBackend()
	})
}

var errNotFinished = errors.New("svg: document not finished")

// Backend renders recordings to an in-memory SVG document.
type Backend struct {
	buf        bytes.Buffer
	canvas     *svgo.SVG
	width      int
	height     int
	openGroups int
	done       bool
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates an SVG backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin starts a new document, discarding any previous output.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("svg: invalid canvas size %dx%d", width, height)
	}
	b.buf.Reset()
	b.width, b.height = width, height
	b.openGroups = 0
	b.done = false
	b.canvas = svgo.New(&b.buf)
	b.canvas.Decimals = 2
	b.canvas.Start(float64(width), float64(height))
	return nil
}

// End closes open groups and the document.
func (b *Backend) End() error {
	for ; b.openGroups > 0; b.openGroups-- {
		b.canvas.Gend()
	}
	b.canvas.End()
	b.done = true
	return nil
}

// BeginGroup opens <g id="name">.
func (b *Backend) BeginGroup(name string) {
	b.openGroups++
	b.canvas.Gid(name)
}

// EndGroup closes the innermost group.
func (b *Backend) EndGroup() {
	if b.openGroups == 0 {
		return
	}
	b.openGroups--
	b.canvas.Gend()
}

// Clear paints a full-canvas rectangle over everything drawn so far.
func (b *Backend) Clear(c gg.RGBA) {
	b.canvas.Rect(0, 0, float64(b.width), float64(b.height), fillStyle(c))
}

// FillCircle emits a <circle>.
func (b *Backend) FillCircle(center gg.Point, radius float64, c gg.RGBA) {
	b.canvas.Circle(center.X, center.Y, radius, fillStyle(c))
}

// StrokeLine emits a <line>.
func (b *Backend) StrokeLine(from, to gg.Point, s recording.Stroke) {
	b.canvas.Line(from.X, from.Y, to.X, to.Y, strokeStyle(s))
}

// StrokePolyline emits one <polyline> with no fill.
func (b *Backend) StrokePolyline(pts []gg.Point, s recording.Stroke) {
	if len(pts) == 0 {
		return
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	b.canvas.Polyline(xs, ys, "fill:none;"+strokeStyle(s))
}

// DrawText emits a <text> element.
func (b *Backend) DrawText(s string, at gg.Point, size float64, c gg.RGBA) {
	b.canvas.Text(at.X, at.Y, s,
		fmt.Sprintf("font-family:sans-serif;font-size:%gpx;%s", size, fillStyle(c)))
}

// WriteTo writes the finished document.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.done {
		return 0, errNotFinished
	}
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// MediaType implements recording.WriterBackend.
func (b *Backend) MediaType() string {
	return "image/svg+xml"
}

// SaveToFile writes the finished document to path.
func (b *Backend) SaveToFile(path string) error {
	if !b.done {
		return errNotFinished
	}
	return os.WriteFile(path, b.buf.Bytes(), 0o644)
}

// Bytes returns the document. The slice is valid until the next Begin.
func (b *Backend) Bytes() []byte {
	return b.buf.Bytes()
}

func fillStyle(c gg.RGBA) string {
	hex, opacity := cssColor(c)
	if opacity < 1 {
		return fmt.Sprintf("fill:%s;fill-opacity:%.3g", hex, opacity)
	}
	return "fill:" + hex
}

func strokeStyle(s recording.Stroke) string {
	hex, opacity := cssColor(s.Color)
	style := fmt.Sprintf("stroke:%s;stroke-width:%g;stroke-linecap:round;stroke-linejoin:round", hex, s.Width)
	if opacity < 1 {
		style += fmt.Sprintf(";stroke-opacity:%.3g", opacity)
	}
	return style
}

// cssColor converts a straight-alpha color to #rrggbb and an opacity.
func cssColor(c gg.RGBA) (string, float64) {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B)), clamp01(c.A)
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
