package recording

import (
	"fmt"
	"slices"

	"github.com/gogpu/gg"
)

// Recorder captures drawing operations as commands. Use FinishRecording to
// obtain an immutable Recording.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command
	openGroups    int
}

// NewRecorder creates a Recorder for a canvas of the given dimensions.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:    width,
		height:   height,
		commands: make([]Command, 0, 64),
	}
}

// Width returns the canvas width.
func (r *Recorder) Width() int { return r.width }

// Height returns the canvas height.
func (r *Recorder) Height() int { return r.height }

// Clear fills the canvas with c.
func (r *Recorder) Clear(c gg.RGBA) {
	r.commands = append(r.commands, ClearCommand{Color: c})
}

// BeginGroup opens a named group. Every BeginGroup needs a matching
// EndGroup; FinishRecording closes groups left open.
func (r *Recorder) BeginGroup(name string) {
	r.openGroups++
	r.commands = append(r.commands, BeginGroupCommand{Name: name})
}

// EndGroup closes the innermost group. It is a no-op with no group open.
func (r *Recorder) EndGroup() {
	if r.openGroups == 0 {
		return
	}
	r.openGroups--
	r.commands = append(r.commands, EndGroupCommand{})
}

// FillCircle records a filled circle centered at (x, y).
func (r *Recorder) FillCircle(x, y, radius float64, c gg.RGBA) {
	r.commands = append(r.commands, FillCircleCommand{
		Center: gg.Pt(x, y),
		Radius: radius,
		Color:  c,
	})
}

// StrokeLine records the segment (x1, y1)-(x2, y2).
func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, s Stroke) {
	r.commands = append(r.commands, StrokeLineCommand{
		From:   gg.Pt(x1, y1),
		To:     gg.Pt(x2, y2),
		Stroke: s,
	})
}

// StrokePolyline records pts as one open polyline. The slice is copied.
// An empty slice records nothing.
func (r *Recorder) StrokePolyline(pts []gg.Point, s Stroke) {
	if len(pts) == 0 {
		return
	}
	r.commands = append(r.commands, StrokePolylineCommand{
		Points: slices.Clone(pts),
		Stroke: s,
	})
}

// DrawText records a text label with its baseline origin at (x, y).
func (r *Recorder) DrawText(s string, x, y, size float64, c gg.RGBA) {
	r.commands = append(r.commands, DrawTextCommand{
		Text:  s,
		At:    gg.Pt(x, y),
		Size:  size,
		Color: c,
	})
}

// FinishRecording closes any open group and returns the Recording.
// The Recorder must not be used afterwards.
func (r *Recorder) FinishRecording() *Recording {
	for r.openGroups > 0 {
		r.EndGroup()
	}
	return &Recording{
		width:    r.width,
		height:   r.height,
		commands: r.commands,
	}
}

// Recording is an immutable list of drawing commands.
type Recording struct {
	width, height int
	commands      []Command
}

// Width returns the width of the recording canvas.
func (r *Recording) Width() int { return r.width }

// Height returns the height of the recording canvas.
func (r *Recording) Height() int { return r.height }

// Commands returns the recorded commands. The slice must not be modified.
func (r *Recording) Commands() []Command { return r.commands }

// Count returns how many commands of type t were recorded.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, cmd := range r.commands {
		if cmd.Type() == t {
			n++
		}
	}
	return n
}

// Playback replays every command onto backend, bracketed by Begin and End.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r.width, r.height); err != nil {
		return fmt.Errorf("recording: begin playback: %w", err)
	}

	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case BeginGroupCommand:
			backend.BeginGroup(c.Name)
		case EndGroupCommand:
			backend.EndGroup()
		case ClearCommand:
			backend.Clear(c.Color)
		case FillCircleCommand:
			backend.FillCircle(c.Center, c.Radius, c.Color)
		case StrokeLineCommand:
			backend.StrokeLine(c.From, c.To, c.Stroke)
		case StrokePolylineCommand:
			backend.StrokePolyline(c.Points, c.Stroke)
		case DrawTextCommand:
			backend.DrawText(c.Text, c.At, c.Size, c.Color)
		default:
			return fmt.Errorf("recording: unsupported command %s", cmd.Type())
		}
	}

	if err := backend.End(); err != nil {
		return fmt.Errorf("recording: end playback: %w", err)
	}
	return nil
}
