// Package recording is the drawing surface of algoviz.
//
// Renderers never draw pixels directly. They record typed commands through a
// Recorder, obtain an immutable Recording, and play it back onto a Backend
// that produces the actual output (SVG markup, PNG pixels, ...).
//
// # Architecture
//
//   - Recorder: captures drawing operations as commands
//   - Recording: immutable command list with canvas dimensions
//   - Backend: renders commands to a specific output format
//
// Because a Recording is plain data, two renders of the same input can be
// compared with reflect.DeepEqual, and one Recording can be played back to
// several backends.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(800, 600)
//	rec.Clear(gg.White)
//	rec.FillCircle(100, 100, 5, gg.Hex("#4682b4"))
//	rec.StrokePolyline([]gg.Point{{X: 100, Y: 100}, {X: 200, Y: 50}},
//	    recording.Stroke{Color: gg.Red, Width: 1.5})
//	r := rec.FinishRecording()
//
//	backend, _ := recording.NewBackend("svg")
//	if err := r.Playback(backend); err != nil {
//	    // handle error
//	}
//	backend.(recording.WriterBackend).WriteTo(os.Stdout)
//
// # Backend Registration
//
// Backends register themselves in init, following the database/sql driver
// pattern. Import a backend package for its side effect:
//
//	import (
//	    _ "github.com/gogpu/algoviz/recording/backends/raster" // "raster"
//	    _ "github.com/gogpu/algoviz/recording/backends/svg"    // "svg"
//	)
//
// # Thread Safety
//
// Recorder is not safe for concurrent use. A Recording is immutable once
// finished and may be played back from several goroutines, each with its own
// Backend.
package recording
