// Package raster renders recordings to PNG images using gg.Context.
//
// Importing the package registers the "raster" backend:
//
//	import _ "github.com/gogpu/algoviz/recording/backends/raster"
//
//	backend, _ := recording.NewBackend("raster")
//	_ = rec.Playback(backend)
//	_ = backend.(recording.FileBackend).SaveToFile("tour.png")
//
// Groups are ignored. Text is set in Go Regular (golang.org/x/image gofont),
// so captions render identically on every host without system fonts.
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/algoviz/internal/logging"
	"github.com/gogpu/algoviz/recording"
)

// Name is the registry name of the backend.
const Name = "raster"

func init() {
	recording.Register(Name, func() recording.Backend {
		return NewBackend()
	})
}

// errNotStarted is returned by output methods before Begin.
var errNotStarted = errors.New("raster: backend not started")

// goRegular parses the embedded font once per process.
var goRegular = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Backend renders recordings to a pixel image.
type Backend struct {
	ctx    *gg.Context
	width  int
	height int
	faces  map[float64]text.Face
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
)

// NewBackend creates a raster backend. Begin must be called before drawing.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin allocates a fresh canvas, releasing the previous one.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster: invalid canvas size %dx%d", width, height)
	}
	if b.ctx != nil {
		_ = b.ctx.Close()
	}
	b.width = width
	b.height = height
	b.ctx = gg.NewContext(width, height)
	return nil
}

// End finalizes the rendering.
func (b *Backend) End() error {
	return nil
}

// BeginGroup is a no-op.
func (b *Backend) BeginGroup(string) {}

// EndGroup is a no-op.
func (b *Backend) EndGroup() {}

// Clear fills the canvas with c.
func (b *Backend) Clear(c gg.RGBA) {
	b.ctx.ClearWithColor(c)
}

// FillCircle fills a circle.
func (b *Backend) FillCircle(center gg.Point, radius float64, c gg.RGBA) {
	b.ctx.ClearPath()
	b.setColor(c)
	b.ctx.DrawCircle(center.X, center.Y, radius)
	b.report("fill circle", b.ctx.Fill())
}

// StrokeLine strokes one segment.
func (b *Backend) StrokeLine(from, to gg.Point, s recording.Stroke) {
	b.ctx.ClearPath()
	b.applyStroke(s)
	b.ctx.MoveTo(from.X, from.Y)
	b.ctx.LineTo(to.X, to.Y)
	b.report("stroke line", b.ctx.Stroke())
}

// StrokePolyline strokes pts as one open polyline.
func (b *Backend) StrokePolyline(pts []gg.Point, s recording.Stroke) {
	if len(pts) == 0 {
		return
	}
	b.ctx.ClearPath()
	b.applyStroke(s)
	b.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		b.ctx.LineTo(p.X, p.Y)
	}
	b.report("stroke polyline", b.ctx.Stroke())
}

// DrawText draws s with its baseline origin at at.
func (b *Backend) DrawText(s string, at gg.Point, size float64, c gg.RGBA) {
	face, err := b.face(size)
	if err != nil {
		logging.Logger().Warn("raster: text skipped", "err", err)
		return
	}
	b.ctx.SetFont(face)
	b.setColor(c)
	b.ctx.DrawString(s, at.X, at.Y)
}

// WriteTo writes the canvas as PNG.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.ctx == nil {
		return 0, errNotStarted
	}
	cw := &countingWriter{w: w}
	err := b.ctx.EncodePNG(cw)
	return cw.n, err
}

// MediaType implements recording.WriterBackend.
func (b *Backend) MediaType() string {
	return "image/png"
}

// SaveToFile writes the canvas as a PNG file.
func (b *Backend) SaveToFile(path string) error {
	if b.ctx == nil {
		return errNotStarted
	}
	return b.ctx.SavePNG(path)
}

// Image returns the rendered image, or nil before Begin.
func (b *Backend) Image() image.Image {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Image()
}

// Width returns the canvas width.
func (b *Backend) Width() int {
	return b.width
}

// Height returns the canvas height.
func (b *Backend) Height() int {
	return b.height
}

func (b *Backend) setColor(c gg.RGBA) {
	b.ctx.SetRGBA(c.R, c.G, c.B, c.A)
}

func (b *Backend) applyStroke(s recording.Stroke) {
	b.setColor(s.Color)
	b.ctx.SetLineWidth(s.Width)
	b.ctx.SetLineCap(gg.LineCapRound)
	b.ctx.SetLineJoin(gg.LineJoinRound)
}

func (b *Backend) face(size float64) (text.Face, error) {
	if f, ok := b.faces[size]; ok {
		return f, nil
	}
	src, err := goRegular()
	if err != nil {
		return nil, fmt.Errorf("raster: load font: %w", err)
	}
	if b.faces == nil {
		b.faces = make(map[float64]text.Face)
	}
	f := src.Face(size)
	b.faces[size] = f
	return f, nil
}

// report logs rasterizer failures; the Backend interface has no error path
// for individual draw calls.
func (b *Backend) report(op string, err error) {
	if err != nil {
		logging.Logger().Warn("raster: draw failed", "op", op, "err", err)
	}
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
