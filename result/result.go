package result

import (
	"encoding/json"
	"fmt"
)

// Kind identifies a Result variant.
type Kind uint8

const (
	KindRaw          Kind = iota // no specialized visualization
	KindTour                     // traveling-salesman tour
	KindShortestPath             // shortest path over a graph
)

var kindNames = [...]string{
	KindRaw:          "raw",
	KindTour:         "tour",
	KindShortestPath: "shortest_path",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a configuration name back to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return KindRaw, fmt.Errorf("result: unknown kind %q", s)
}

// Point is a 2D coordinate in data space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge connects two indices of a coordinate sequence.
type Edge struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Result is one decoded run result.
type Result interface {
	// Kind reports the variant.
	Kind() Kind
	// PathIndices returns the visit order as indices into the variant's
	// coordinate sequence, exactly as received.
	PathIndices() []int
	// Accept calls the Visitor method matching the variant.
	Accept(v Visitor) error

	sealed()
}

// Visitor handles each Result variant.
type Visitor interface {
	VisitTour(t *Tour) error
	VisitShortestPath(p *ShortestPath) error
	VisitRaw(r *Raw) error
}

// Tour is a traveling-salesman result. A closed tour repeats its start index
// at the end of Path.
type Tour struct {
	Points  []Point  `json:"points"`
	Path    []int    `json:"path"`
	Edges   []Edge   `json:"edges,omitempty"`
	Cost    *float64 `json:"cost,omitempty"`
	Elapsed *float64 `json:"elapsed,omitempty"`
}

func (*Tour) Kind() Kind               { return KindTour }
func (t *Tour) PathIndices() []int     { return t.Path }
func (t *Tour) Accept(v Visitor) error { return v.VisitTour(t) }
func (*Tour) sealed()                  {}

// ShortestPath is a shortest-path result: the full graph for context plus
// the path from source to destination.
type ShortestPath struct {
	Nodes    []Point  `json:"nodes"`
	AllEdges []Edge   `json:"all_edges"`
	Path     []int    `json:"path"`
	Edges    []Edge   `json:"edges,omitempty"`
	Cost     *float64 `json:"cost,omitempty"`
	Elapsed  *float64 `json:"elapsed,omitempty"`
}

func (*ShortestPath) Kind() Kind               { return KindShortestPath }
func (p *ShortestPath) PathIndices() []int     { return p.Path }
func (p *ShortestPath) Accept(v Visitor) error { return v.VisitShortestPath(p) }
func (*ShortestPath) sealed()                  {}

// Raw is the result of an algorithm without a dedicated variant.
type Raw struct {
	Body json.RawMessage
	path []int
}

func (*Raw) Kind() Kind               { return KindRaw }
func (r *Raw) PathIndices() []int     { return r.path }
func (r *Raw) Accept(v Visitor) error { return v.VisitRaw(r) }
func (*Raw) sealed()                  {}

// Cost returns the cost carried by a result, if any.
func Cost(r Result) (float64, bool) {
	var c *float64
	switch v := r.(type) {
	case *Tour:
		c = v.Cost
	case *ShortestPath:
		c = v.Cost
	}
	if c == nil {
		return 0, false
	}
	return *c, true
}
