package viz

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/gogpu/algoviz/recording"
	"github.com/gogpu/algoviz/result"
)

// Group names used in recordings.
const (
	GroupEdges   = "edges"
	GroupNodes   = "nodes"
	GroupPath    = "path"
	GroupCaption = "caption"
)

// Viewport is the size of the drawing surface in pixels.
type Viewport struct {
	Width  int
	Height int
}

// DefaultViewport is the canvas size used when none is configured.
var DefaultViewport = Viewport{Width: 800, Height: 600}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool { return v.Width > 0 && v.Height > 0 }

// Default drawing parameters.
const (
	DefaultMargin       = 20
	DefaultMarkerRadius = 5
	DefaultCaptionSize  = 12
)

var (
	defaultBackground = gg.White
	defaultMarker     = gg.Hex("#4682b4")
	defaultPath       = recording.Stroke{Color: gg.Red, Width: 1.5}
	defaultEdge       = recording.Stroke{Color: gg.Hex("#cccccc"), Width: 1}
	defaultCaption    = gg.Hex("#333333")
)

// Renderer draws results onto recordings. A Renderer is immutable and safe
// for concurrent use.
type Renderer struct {
	viewport     Viewport
	margin       float64
	markerRadius float64
	background   gg.RGBA
	marker       gg.RGBA
	path         recording.Stroke
	edge         recording.Stroke
	caption      bool
	captionColor gg.RGBA
	captionSize  float64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMargin sets the inset between the viewport edge and the drawing range.
func WithMargin(m float64) Option {
	return func(r *Renderer) {
		if m >= 0 {
			r.margin = m
		}
	}
}

// WithMarkerRadius sets the radius of point and node markers.
func WithMarkerRadius(radius float64) Option {
	return func(r *Renderer) {
		if radius > 0 {
			r.markerRadius = radius
		}
	}
}

// WithBackground sets the clear color.
func WithBackground(c gg.RGBA) Option {
	return func(r *Renderer) { r.background = c }
}

// WithMarkerColor sets the fill color of markers.
func WithMarkerColor(c gg.RGBA) Option {
	return func(r *Renderer) { r.marker = c }
}

// WithPathStroke sets the stroke of the highlighted path.
func WithPathStroke(s recording.Stroke) Option {
	return func(r *Renderer) { r.path = s }
}

// WithEdgeStroke sets the stroke of background graph edges.
func WithEdgeStroke(s recording.Stroke) Option {
	return func(r *Renderer) { r.edge = s }
}

// WithCaption enables a top-left caption with the algorithm name and cost.
func WithCaption(on bool) Option {
	return func(r *Renderer) { r.caption = on }
}

// NewRenderer creates a renderer for vp. An invalid viewport falls back to
// DefaultViewport.
func NewRenderer(vp Viewport, opts ...Option) *Renderer {
	if !vp.Valid() {
		vp = DefaultViewport
	}
	r := &Renderer{
		viewport:     vp,
		margin:       DefaultMargin,
		markerRadius: DefaultMarkerRadius,
		background:   defaultBackground,
		marker:       defaultMarker,
		path:         defaultPath,
		edge:         defaultEdge,
		captionColor: defaultCaption,
		captionSize:  DefaultCaptionSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Viewport returns the drawing size.
func (r *Renderer) Viewport() Viewport { return r.viewport }

// Margin returns the inset of the drawing range.
func (r *Renderer) Margin() float64 { return r.margin }

// Fits reports whether vp leaves a non-empty drawing range inside the
// margin on both axes.
func (r *Renderer) Fits(vp Viewport) bool {
	return vp.Valid() && 2*r.margin < float64(min(vp.Width, vp.Height))
}

// Resize returns a copy of r drawing onto vp. A viewport that does not fit
// leaves the size unchanged.
func (r *Renderer) Resize(vp Viewport) *Renderer {
	c := *r
	if r.Fits(vp) {
		c.viewport = vp
	}
	return &c
}

// Scales returns the x and y scales for points under the current viewport.
func (r *Renderer) Scales(points []result.Point) (x, y Scale) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	w, h := float64(r.viewport.Width), float64(r.viewport.Height)
	return NewScale(xs, r.margin, w-r.margin), NewScale(ys, h-r.margin, r.margin)
}

// Render draws res, produced by algorithm, onto a new recording. It returns
// a *RenderError, and no recording, when an index is out of range.
func (r *Renderer) Render(algorithm string, res result.Result) (*recording.Recording, error) {
	if res == nil {
		return nil, fmt.Errorf("viz: render %s: nil result", algorithm)
	}
	d := &drawer{r: r, algorithm: algorithm}
	if err := res.Accept(d); err != nil {
		return nil, err
	}
	return d.rec.FinishRecording(), nil
}

// drawer records one result.
type drawer struct {
	r         *Renderer
	algorithm string
	rec       *recording.Recorder
}

var _ result.Visitor = (*drawer)(nil)

func (d *drawer) VisitTour(t *result.Tour) error {
	if err := checkIndices("path", t.Path, len(t.Points)); err != nil {
		return err
	}
	pts := d.project(t.Points)
	d.begin()
	d.markers(pts)
	d.polyline(pts, t.Path)
	d.drawCaption(t.Cost)
	return nil
}

func (d *drawer) VisitShortestPath(p *result.ShortestPath) error {
	if err := checkEdges(p.AllEdges, len(p.Nodes)); err != nil {
		return err
	}
	if err := checkIndices("path", p.Path, len(p.Nodes)); err != nil {
		return err
	}
	pts := d.project(p.Nodes)
	d.begin()
	if len(p.AllEdges) > 0 {
		d.rec.BeginGroup(GroupEdges)
		for _, e := range p.AllEdges {
			from, to := pts[e.Source], pts[e.Target]
			d.rec.StrokeLine(from.X, from.Y, to.X, to.Y, d.r.edge)
		}
		d.rec.EndGroup()
	}
	d.markers(pts)
	d.polyline(pts, p.Path)
	d.drawCaption(p.Cost)
	return nil
}

// VisitRaw records only the clear.
func (d *drawer) VisitRaw(*result.Raw) error {
	d.begin()
	return nil
}

func (d *drawer) begin() {
	d.rec = recording.NewRecorder(d.r.viewport.Width, d.r.viewport.Height)
	d.rec.Clear(d.r.background)
}

func (d *drawer) project(points []result.Point) []gg.Point {
	sx, sy := d.r.Scales(points)
	pts := make([]gg.Point, len(points))
	for i, p := range points {
		pts[i] = gg.Pt(sx.Map(p.X), sy.Map(p.Y))
	}
	return pts
}

func (d *drawer) markers(pts []gg.Point) {
	if len(pts) == 0 {
		return
	}
	d.rec.BeginGroup(GroupNodes)
	for _, p := range pts {
		d.rec.FillCircle(p.X, p.Y, d.r.markerRadius, d.r.marker)
	}
	d.rec.EndGroup()
}

func (d *drawer) polyline(pts []gg.Point, path []int) {
	if len(path) == 0 {
		return
	}
	line := make([]gg.Point, len(path))
	for i, idx := range path {
		line[i] = pts[idx]
	}
	d.rec.BeginGroup(GroupPath)
	d.rec.StrokePolyline(line, d.r.path)
	d.rec.EndGroup()
}

func (d *drawer) drawCaption(cost *float64) {
	if !d.r.caption {
		return
	}
	text := d.algorithm
	if cost != nil {
		text = fmt.Sprintf("%s  cost %.2f", d.algorithm, *cost)
	}
	d.rec.BeginGroup(GroupCaption)
	d.rec.DrawText(text, 4, 4+d.r.captionSize, d.r.captionSize, d.r.captionColor)
	d.rec.EndGroup()
}

func checkIndices(field string, idx []int, n int) error {
	for pos, i := range idx {
		if i < 0 || i >= n {
			return &RenderError{Field: field, Position: pos, Index: i, Len: n}
		}
	}
	return nil
}

func checkEdges(edges []result.Edge, n int) error {
	for pos, e := range edges {
		if e.Source < 0 || e.Source >= n {
			return &RenderError{Field: "all_edges.source", Position: pos, Index: e.Source, Len: n}
		}
		if e.Target < 0 || e.Target >= n {
			return &RenderError{Field: "all_edges.target", Position: pos, Index: e.Target, Len: n}
		}
	}
	return nil
}
