package recording

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/gogpu/gg"
)

// traceBackend records every call as a line of text.
type traceBackend struct {
	calls    []string
	beginErr error
}

func (b *traceBackend) Begin(width, height int) error {
	b.calls = append(b.calls, fmt.Sprintf("Begin %dx%d", width, height))
	return b.beginErr
}

func (b *traceBackend) End() error {
	b.calls = append(b.calls, "End")
	return nil
}

func (b *traceBackend) BeginGroup(name string) { b.calls = append(b.calls, "BeginGroup "+name) }
func (b *traceBackend) EndGroup()              { b.calls = append(b.calls, "EndGroup") }
func (b *traceBackend) Clear(gg.RGBA)          { b.calls = append(b.calls, "Clear") }

func (b *traceBackend) FillCircle(c gg.Point, r float64, _ gg.RGBA) {
	b.calls = append(b.calls, fmt.Sprintf("FillCircle %g,%g r%g", c.X, c.Y, r))
}

func (b *traceBackend) StrokeLine(from, to gg.Point, _ Stroke) {
	b.calls = append(b.calls, fmt.Sprintf("StrokeLine %g,%g-%g,%g", from.X, from.Y, to.X, to.Y))
}

func (b *traceBackend) StrokePolyline(pts []gg.Point, _ Stroke) {
	b.calls = append(b.calls, fmt.Sprintf("StrokePolyline %v", pts))
}

func (b *traceBackend) DrawText(s string, _ gg.Point, _ float64, _ gg.RGBA) {
	b.calls = append(b.calls, "DrawText "+s)
}

func TestRecorderPlaybackOrder(t *testing.T) {
	rec := NewRecorder(100, 50)
	rec.Clear(gg.White)
	rec.BeginGroup("edges")
	rec.StrokeLine(0, 0, 10, 10, Stroke{Color: gg.Black, Width: 1})
	rec.EndGroup()
	rec.FillCircle(5, 5, 2, gg.Blue)
	rec.StrokePolyline([]gg.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, Stroke{Color: gg.Red, Width: 1})
	rec.DrawText("tsp", 4, 12, 12, gg.Black)
	r := rec.FinishRecording()

	var b traceBackend
	if err := r.Playback(&b); err != nil {
		t.Fatalf("Playback() error = %v", err)
	}
	want := []string{
		"Begin 100x50",
		"Clear",
		"BeginGroup edges",
		"StrokeLine 0,0-10,10",
		"EndGroup",
		"FillCircle 5,5 r2",
		"StrokePolyline [{1 2} {3 4}]",
		"DrawText tsp",
		"End",
	}
	if !reflect.DeepEqual(b.calls, want) {
		t.Errorf("calls = %q\nwant %q", b.calls, want)
	}
}

func TestRecorderClosesOpenGroups(t *testing.T) {
	rec := NewRecorder(10, 10)
	rec.BeginGroup("outer")
	rec.BeginGroup("inner")
	r := rec.FinishRecording()

	if got := r.Count(CmdEndGroup); got != 2 {
		t.Errorf("Count(EndGroup) = %d, want 2", got)
	}
}

func TestRecorderEndGroupWithoutBegin(t *testing.T) {
	rec := NewRecorder(10, 10)
	rec.EndGroup()
	if n := len(rec.FinishRecording().Commands()); n != 0 {
		t.Errorf("unbalanced EndGroup recorded %d commands, want 0", n)
	}
}

func TestStrokePolylineCopiesPoints(t *testing.T) {
	pts := []gg.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}
	rec := NewRecorder(10, 10)
	rec.StrokePolyline(pts, Stroke{})
	pts[0].X = 99

	cmd := rec.FinishRecording().Commands()[0].(StrokePolylineCommand)
	if cmd.Points[0].X != 1 {
		t.Errorf("recorded point mutated through caller slice: %v", cmd.Points)
	}
}

func TestStrokePolylineEmpty(t *testing.T) {
	rec := NewRecorder(10, 10)
	rec.StrokePolyline(nil, Stroke{})
	if got := rec.FinishRecording().Count(CmdStrokePolyline); got != 0 {
		t.Errorf("Count(StrokePolyline) = %d, want 0", got)
	}
}

func TestRecordingDimensions(t *testing.T) {
	r := NewRecorder(640, 480).FinishRecording()
	if r.Width() != 640 || r.Height() != 480 {
		t.Errorf("dimensions = %dx%d, want 640x480", r.Width(), r.Height())
	}
}

func TestPlaybackBeginError(t *testing.T) {
	boom := errors.New("no canvas")
	b := &traceBackend{beginErr: boom}
	rec := NewRecorder(1, 1)
	rec.Clear(gg.White)
	err := rec.FinishRecording().Playback(b)
	if !errors.Is(err, boom) {
		t.Fatalf("Playback() error = %v, want %v", err, boom)
	}
	if len(b.calls) != 1 {
		t.Errorf("backend received %q after failed Begin", b.calls[1:])
	}
}
