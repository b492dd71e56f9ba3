// Package result models the values returned by the compute service.
//
// A single run produces a Result, a closed union over three variants:
//
//   - *Tour: a traveling-salesman tour over Points
//   - *ShortestPath: a graph (Nodes, AllEdges) with one highlighted path
//   - *Raw: any algorithm without a specialized visualization
//
// The variant is chosen by algorithm name through a Variants table, not by
// sniffing the payload. Consumers dispatch with a Visitor; adding a variant
// adds a Visitor method, so every consumer stops compiling until it handles
// the new shape.
//
// Store keeps the most recent Result together with the response body it was
// decoded from. Commits are ordered by a per-request sequence number so that
// a slow, older response never replaces a newer one.
package result
