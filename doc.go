// Package algoviz is a client for an algorithm-execution service: it loads
// a dataset, runs or benchmarks algorithms on the service, draws the
// returned tour or shortest path, and exports the path as CSV.
//
// # Quick Start
//
//	import "github.com/gogpu/algoviz"
//
//	s := algoviz.NewSession()
//	if _, err := s.LoadFile("cities.json"); err != nil {
//		return err
//	}
//	if _, err := s.Run(ctx, "tsp"); err != nil {
//		return err
//	}
//	f, _ := os.Create("tour.svg")
//	defer f.Close()
//	s.RenderTo(f, "svg")
//
// # Pipeline
//
// A Session holds one dataset and one run result. Data flows one way:
//
//	LoadDataset -> dataset.Store -> Run / Benchmark -> result.Store -> Render, ExportCSV
//
// Loading replaces the dataset only when the new content parses; a
// malformed file leaves the previous dataset active. Run and Benchmark
// require a dataset and fail with a *PreconditionError, without any network
// traffic, when none is loaded.
//
// # Concurrent runs
//
// Each Run takes a sequence number before its request is sent. The result
// store accepts a response only if its sequence number is higher than the
// last committed one, so a slow response to an older request can never
// replace the result of a newer one. The late run returns ErrSuperseded.
//
// # Result variants
//
// The algorithm name selects how a response is decoded (see
// result.Variants): tsp decodes to a *result.Tour, dijkstra to a
// *result.ShortestPath, anything else to a *result.Raw that is kept for
// display but not drawn. Consumers switch over variants with
// result.Visitor, so a new variant fails to compile until every consumer
// handles it.
//
// # Rendering
//
// Rendering produces a recording.Recording that can be played back on any
// registered backend. This package registers "svg" and "raster" (PNG).
//
// # Logging
//
// algoviz is silent by default. Call SetLogger to enable log/slog output.
package algoviz
