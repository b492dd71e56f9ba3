package recording

import "github.com/gogpu/gg"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Structure commands
	CmdBeginGroup CommandType = iota // Open a named group
	CmdEndGroup                      // Close the innermost group

	// Drawing commands
	CmdClear          // Fill the whole canvas
	CmdFillCircle     // Fill a circle marker
	CmdStrokeLine     // Stroke one segment
	CmdStrokePolyline // Stroke a connected sequence of segments
	CmdDrawText       // Draw a text label
)

var commandTypeNames = [...]string{
	CmdBeginGroup:     "BeginGroup",
	CmdEndGroup:       "EndGroup",
	CmdClear:          "Clear",
	CmdFillCircle:     "FillCircle",
	CmdStrokeLine:     "StrokeLine",
	CmdStrokePolyline: "StrokePolyline",
	CmdDrawText:       "DrawText",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// Stroke describes how lines are stroked.
type Stroke struct {
	Color gg.RGBA
	Width float64
}

// BeginGroupCommand opens a named group. Vector backends map groups to
// their own grouping element; raster backends ignore them.
type BeginGroupCommand struct {
	Name string
}

// Type implements Command.
func (BeginGroupCommand) Type() CommandType { return CmdBeginGroup }

// EndGroupCommand closes the innermost open group.
type EndGroupCommand struct{}

// Type implements Command.
func (EndGroupCommand) Type() CommandType { return CmdEndGroup }

// ClearCommand fills the whole canvas with Color, discarding earlier output.
type ClearCommand struct {
	Color gg.RGBA
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// FillCircleCommand fills a circle.
type FillCircleCommand struct {
	Center gg.Point
	Radius float64
	Color  gg.RGBA
}

// Type implements Command.
func (FillCircleCommand) Type() CommandType { return CmdFillCircle }

// StrokeLineCommand strokes the segment From-To.
type StrokeLineCommand struct {
	From, To gg.Point
	Stroke   Stroke
}

// Type implements Command.
func (StrokeLineCommand) Type() CommandType { return CmdStrokeLine }

// StrokePolylineCommand strokes Points as one open polyline, in order.
// The polyline is never closed implicitly.
type StrokePolylineCommand struct {
	Points []gg.Point
	Stroke Stroke
}

// Type implements Command.
func (StrokePolylineCommand) Type() CommandType { return CmdStrokePolyline }

// DrawTextCommand draws Text with its baseline origin at At.
type DrawTextCommand struct {
	Text  string
	At    gg.Point
	Size  float64
	Color gg.RGBA
}

// Type implements Command.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }
