// Package viz turns run results into drawings.
//
// A Renderer maps a result.Result onto a recording.Recording sized to its
// Viewport. Coordinates go through two independent linear scales, one per
// axis, from the observed data extent to the viewport inset by a margin, so
// the aspect ratio of the data is not preserved. The y range is inverted to
// put larger values at the top.
//
// Drawings are layered in groups:
//
//	edges    all_edges of a shortest-path result, light lines
//	nodes    one marker per point or node
//	path     the path as one polyline, in the exact order received
//	caption  optional algorithm name and cost
//
// Rendering is a pure function of the result, the viewport and the renderer
// options. Every index is checked before anything is recorded, so an invalid
// result produces a *RenderError and no drawing at all.
//
// Play the recording back onto any registered backend:
//
//	rec, err := viz.NewRenderer(viz.DefaultViewport).Render("tsp", res)
//	if err != nil {
//		return err
//	}
//	b, _ := recording.NewBackend("svg")
//	err = rec.Playback(b)
package viz
