package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// Variants maps algorithm names to the Result variant their responses
// decode into. Algorithms missing from the table decode as *Raw.
type Variants map[string]Kind

// DefaultVariants returns the table for the algorithms shipped by the
// reference compute service.
func DefaultVariants() Variants {
	return Variants{
		"tsp":      KindTour,
		"dijkstra": KindShortestPath,
	}
}

// ParseVariants builds a table from configuration values such as
// {"tsp": "tour", "astar": "shortest_path"}.
func ParseVariants(m map[string]string) (Variants, error) {
	v := make(Variants, len(m))
	for alg, name := range m {
		k, err := ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("variant for %q: %w", alg, err)
		}
		v[alg] = k
	}
	return v, nil
}

// KindOf returns the variant used for algorithm.
func (v Variants) KindOf(algorithm string) Kind {
	if k, ok := v[algorithm]; ok {
		return k
	}
	return KindRaw
}

// Clone returns an independent copy of the table.
func (v Variants) Clone() Variants {
	return maps.Clone(v)
}

// Decode parses a run response body for algorithm.
func (v Variants) Decode(algorithm string, body []byte) (Result, error) {
	switch v.KindOf(algorithm) {
	case KindTour:
		var t Tour
		if err := json.Unmarshal(body, &t); err != nil {
			return nil, fmt.Errorf("result: decode %s tour: %w", algorithm, err)
		}
		return &t, nil
	case KindShortestPath:
		var p ShortestPath
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("result: decode %s shortest path: %w", algorithm, err)
		}
		return &p, nil
	default:
		return decodeRaw(algorithm, body)
	}
}

func decodeRaw(algorithm string, body []byte) (*Raw, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("result: decode %s: invalid JSON body", algorithm)
	}
	r := &Raw{Body: bytes.Clone(body)}

	// The path is optional here; a non-object body or a non-integer path
	// simply leaves it empty.
	var probe struct {
		Path []int `json:"path"`
	}
	if err := json.Unmarshal(body, &probe); err == nil {
		r.path = probe.Path
	}
	return r, nil
}
