package viz

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/algoviz/recording"
	"github.com/gogpu/algoviz/result"
)

func pts(xy ...float64) []result.Point {
	out := make([]result.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, result.Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func circles(r *recording.Recording) []gg.Point {
	var out []gg.Point
	for _, c := range r.Commands() {
		if fc, ok := c.(recording.FillCircleCommand); ok {
			out = append(out, fc.Center)
		}
	}
	return out
}

func polylines(r *recording.Recording) [][]gg.Point {
	var out [][]gg.Point
	for _, c := range r.Commands() {
		if pl, ok := c.(recording.StrokePolylineCommand); ok {
			out = append(out, pl.Points)
		}
	}
	return out
}

func groups(r *recording.Recording) []string {
	var out []string
	for _, c := range r.Commands() {
		if g, ok := c.(recording.BeginGroupCommand); ok {
			out = append(out, g.Name)
		}
	}
	return out
}

func TestRenderTourScaleCorners(t *testing.T) {
	r := NewRenderer(Viewport{Width: 800, Height: 600})
	rec, err := r.Render("tsp", &result.Tour{Points: pts(0, 0, 10, 10), Path: []int{0, 1}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	got := circles(rec)
	want := []gg.Point{{X: 20, Y: 580}, {X: 780, Y: 20}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("markers = %v, want %v", got, want)
	}
	for _, p := range got {
		if p.X < 20 || p.X > 780 || p.Y < 20 || p.Y > 580 {
			t.Errorf("marker %v outside inset range", p)
		}
	}
}

func TestRenderMarkersStayInsideInset(t *testing.T) {
	r := NewRenderer(Viewport{Width: 300, Height: 200}, WithMargin(10))
	tour := &result.Tour{Points: pts(-5, 3, 17, -40, 2.5, 9, 100, 100, 0, 0)}
	rec, err := r.Render("tsp", tour)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, p := range circles(rec) {
		if p.X < 10 || p.X > 290 || p.Y < 10 || p.Y > 190 {
			t.Errorf("marker %v outside [10,290]x[10,190]", p)
		}
	}
}

func TestRenderPathOrder(t *testing.T) {
	r := NewRenderer(Viewport{Width: 120, Height: 120}, WithMargin(10))
	tour := &result.Tour{Points: pts(0, 0, 5, 5, 10, 10), Path: []int{2, 0, 1}}
	rec, err := r.Render("tsp", tour)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := polylines(rec)
	if len(lines) != 1 {
		t.Fatalf("got %d polylines, want 1", len(lines))
	}
	want := []gg.Point{{X: 110, Y: 10}, {X: 10, Y: 110}, {X: 60, Y: 60}}
	if !reflect.DeepEqual(lines[0], want) {
		t.Errorf("path = %v, want %v", lines[0], want)
	}
}

func TestRenderClosedTourKeepsRepeatedStart(t *testing.T) {
	r := NewRenderer(DefaultViewport)
	tour := &result.Tour{Points: pts(0, 0, 1, 0, 1, 1), Path: []int{0, 1, 2, 0}}
	rec, err := r.Render("tsp", tour)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	line := polylines(rec)[0]
	if len(line) != 4 || line[0] != line[3] {
		t.Errorf("closed tour polyline = %v", line)
	}
}

func TestRenderIdempotent(t *testing.T) {
	cost := 42.0
	r := NewRenderer(DefaultViewport, WithCaption(true))
	sp := &result.ShortestPath{
		Nodes:    pts(0, 0, 3, 4, 6, 1, 2, 8),
		AllEdges: []result.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}, {Source: 2, Target: 3}},
		Path:     []int{0, 1, 2},
		Cost:     &cost,
	}
	a, err := r.Render("dijkstra", sp)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, err := r.Render("dijkstra", sp)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two renders of the same input differ")
	}
}

func TestRenderShortestPathLayers(t *testing.T) {
	r := NewRenderer(DefaultViewport)
	sp := &result.ShortestPath{
		Nodes:    pts(0, 0, 1, 1, 2, 0),
		AllEdges: []result.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}},
		Path:     []int{0, 2},
	}
	rec, err := r.Render("dijkstra", sp)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got, want := groups(rec), []string{GroupEdges, GroupNodes, GroupPath}; !reflect.DeepEqual(got, want) {
		t.Errorf("groups = %v, want %v", got, want)
	}
	if _, ok := rec.Commands()[0].(recording.ClearCommand); !ok {
		t.Errorf("first command = %T, want ClearCommand", rec.Commands()[0])
	}
	if n := rec.Count(recording.CmdStrokeLine); n != 2 {
		t.Errorf("edge lines = %d, want 2", n)
	}
	if n := rec.Count(recording.CmdFillCircle); n != 3 {
		t.Errorf("markers = %d, want 3", n)
	}
	for _, c := range rec.Commands() {
		if l, ok := c.(recording.StrokeLineCommand); ok && l.Stroke != defaultEdge {
			t.Errorf("edge stroke = %+v, want %+v", l.Stroke, defaultEdge)
		}
	}
}

func TestRenderOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		res  result.Result
		want RenderError
	}{
		{
			name: "tour path",
			res:  &result.Tour{Points: pts(0, 0, 1, 1), Path: []int{0, 1, 2}},
			want: RenderError{Field: "path", Position: 2, Index: 2, Len: 2},
		},
		{
			name: "negative index",
			res:  &result.Tour{Points: pts(0, 0, 1, 1), Path: []int{-1}},
			want: RenderError{Field: "path", Position: 0, Index: -1, Len: 2},
		},
		{
			name: "edge target",
			res: &result.ShortestPath{
				Nodes:    pts(0, 0, 1, 1),
				AllEdges: []result.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 5}},
			},
			want: RenderError{Field: "all_edges.target", Position: 1, Index: 5, Len: 2},
		},
		{
			name: "shortest path",
			res:  &result.ShortestPath{Nodes: pts(0, 0), Path: []int{0, 3}},
			want: RenderError{Field: "path", Position: 1, Index: 3, Len: 1},
		},
	}
	r := NewRenderer(DefaultViewport)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := r.Render("x", tt.res)
			if rec != nil {
				t.Errorf("Render() returned a recording with %d commands", len(rec.Commands()))
			}
			var re *RenderError
			if !errors.As(err, &re) {
				t.Fatalf("Render() error = %v, want *RenderError", err)
			}
			if *re != tt.want {
				t.Errorf("error = %+v, want %+v", *re, tt.want)
			}
		})
	}
}

func TestRenderRawOnlyClears(t *testing.T) {
	rec, err := NewRenderer(DefaultViewport, WithCaption(true)).Render("bfs", &result.Raw{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	cmds := rec.Commands()
	if len(cmds) != 1 || cmds[0].Type() != recording.CmdClear {
		t.Errorf("commands = %v, want a single clear", cmds)
	}
}

func TestRenderEmptyPathDrawsNoPolyline(t *testing.T) {
	rec, err := NewRenderer(DefaultViewport).Render("tsp", &result.Tour{Points: pts(1, 1, 2, 2)})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if n := rec.Count(recording.CmdStrokePolyline); n != 0 {
		t.Errorf("polylines = %d, want 0", n)
	}
}

func TestRenderSinglePointIsCentered(t *testing.T) {
	rec, err := NewRenderer(Viewport{Width: 200, Height: 100}).Render("tsp", &result.Tour{Points: pts(7, 7), Path: []int{0}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := circles(rec); len(got) != 1 || got[0] != (gg.Point{X: 100, Y: 50}) {
		t.Errorf("markers = %v, want [{100 50}]", got)
	}
}

func TestRenderCaption(t *testing.T) {
	cost := 12.5
	rec, err := NewRenderer(DefaultViewport, WithCaption(true)).Render("tsp", &result.Tour{Points: pts(0, 0), Cost: &cost})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	var text string
	for _, c := range rec.Commands() {
		if dt, ok := c.(recording.DrawTextCommand); ok {
			text = dt.Text
		}
	}
	if !strings.HasPrefix(text, "tsp") || !strings.Contains(text, "12.50") {
		t.Errorf("caption = %q", text)
	}
}

func TestRendererOptionsAndResize(t *testing.T) {
	stroke := recording.Stroke{Color: gg.Black, Width: 3}
	r := NewRenderer(Viewport{}, WithMarkerRadius(2), WithMarkerColor(gg.Black), WithPathStroke(stroke))
	if r.Viewport() != DefaultViewport {
		t.Errorf("Viewport() = %+v, want default", r.Viewport())
	}
	small := r.Resize(Viewport{Width: 60, Height: 50})
	if small.Viewport() != (Viewport{Width: 60, Height: 50}) || r.Viewport() != DefaultViewport {
		t.Errorf("Resize changed the original or ignored the size")
	}

	rec, err := small.Render("tsp", &result.Tour{Points: pts(0, 0, 1, 1), Path: []int{0, 1}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if rec.Width() != 60 || rec.Height() != 50 {
		t.Errorf("recording size = %dx%d, want 60x50", rec.Width(), rec.Height())
	}
	for _, c := range rec.Commands() {
		switch c := c.(type) {
		case recording.FillCircleCommand:
			if c.Radius != 2 || c.Color != gg.Black {
				t.Errorf("marker = %+v", c)
			}
		case recording.StrokePolylineCommand:
			if c.Stroke != stroke {
				t.Errorf("path stroke = %+v, want %+v", c.Stroke, stroke)
			}
		}
	}
}

func TestRenderNilResult(t *testing.T) {
	if _, err := NewRenderer(DefaultViewport).Render("tsp", nil); err == nil {
		t.Error("Render(nil) should fail")
	}
}

func TestRendererFits(t *testing.T) {
	r := NewRenderer(DefaultViewport)
	tests := []struct {
		vp   Viewport
		want bool
	}{
		{Viewport{Width: 800, Height: 600}, true},
		{Viewport{Width: 41, Height: 41}, true},
		{Viewport{Width: 40, Height: 600}, false},
		{Viewport{Width: 600, Height: 40}, false},
		{Viewport{Width: 10, Height: 10}, false},
		{Viewport{}, false},
	}
	for _, tt := range tests {
		if got := r.Fits(tt.vp); got != tt.want {
			t.Errorf("Fits(%+v) = %v, want %v", tt.vp, got, tt.want)
		}
	}
}

func TestResizeRejectsViewportInsideMargin(t *testing.T) {
	r := NewRenderer(DefaultViewport).Resize(Viewport{Width: 10, Height: 10})
	if r.Viewport() != DefaultViewport {
		t.Fatalf("Viewport() = %+v, want default", r.Viewport())
	}
	rec, err := r.Render("tsp", &result.Tour{Points: pts(0, 0, 1, 1), Path: []int{0, 1}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, c := range rec.Commands() {
		m, ok := c.(recording.FillCircleCommand)
		if !ok {
			continue
		}
		if p := m.Center; p.X < 20 || p.X > 780 || p.Y < 20 || p.Y > 580 {
			t.Errorf("marker at (%v, %v) outside the inset range", p.X, p.Y)
		}
	}
}
