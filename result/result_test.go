package result

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"golang.org/x/text/language"
)

const tourBody = `{"path":[0,2,1,0],"edges":[{"source":0,"target":2}],"cost":12.5,` +
	`"points":[{"x":0,"y":0},{"x":10,"y":10},{"x":5,"y":0}],"elapsed":0.0012}`

const dijkstraBody = `{"path":[0,1],"edges":[{"source":0,"target":1}],"cost":1,` +
	`"nodes":[{"x":0,"y":0},{"x":1,"y":1}],"all_edges":[{"source":0,"target":1,"weight":1}]}`

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindRaw, "raw"},
		{KindTour, "tour"},
		{KindShortestPath, "shortest_path"},
		{Kind(42), "Kind(42)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindRaw, KindTour, KindShortestPath} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), got, err, k)
		}
	}
	if _, err := ParseKind("heatmap"); err == nil {
		t.Error("ParseKind(heatmap) should fail")
	}
}

func TestDecodeTour(t *testing.T) {
	r, err := DefaultVariants().Decode("tsp", []byte(tourBody))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	tour, ok := r.(*Tour)
	if !ok {
		t.Fatalf("Decode() = %T, want *Tour", r)
	}
	if want := []int{0, 2, 1, 0}; !reflect.DeepEqual(tour.PathIndices(), want) {
		t.Errorf("PathIndices() = %v, want %v", tour.PathIndices(), want)
	}
	if len(tour.Points) != 3 || tour.Points[1] != (Point{X: 10, Y: 10}) {
		t.Errorf("Points = %v", tour.Points)
	}
	if c, ok := Cost(r); !ok || c != 12.5 {
		t.Errorf("Cost() = %v, %v; want 12.5, true", c, ok)
	}
}

func TestDecodeShortestPath(t *testing.T) {
	r, err := DefaultVariants().Decode("dijkstra", []byte(dijkstraBody))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	sp, ok := r.(*ShortestPath)
	if !ok {
		t.Fatalf("Decode() = %T, want *ShortestPath", r)
	}
	if len(sp.AllEdges) != 1 || sp.AllEdges[0] != (Edge{Source: 0, Target: 1}) {
		t.Errorf("AllEdges = %v", sp.AllEdges)
	}
	if sp.Kind() != KindShortestPath {
		t.Errorf("Kind() = %v", sp.Kind())
	}
}

func TestDecodeUnknownAlgorithmIsRaw(t *testing.T) {
	body := []byte(`{"path":[3,1],"score":7}`)
	r, err := DefaultVariants().Decode("genetic", body)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	raw, ok := r.(*Raw)
	if !ok {
		t.Fatalf("Decode() = %T, want *Raw", r)
	}
	if string(raw.Body) != string(body) {
		t.Errorf("Body = %s, want %s", raw.Body, body)
	}
	if !reflect.DeepEqual(raw.PathIndices(), []int{3, 1}) {
		t.Errorf("PathIndices() = %v", raw.PathIndices())
	}
	if _, ok := Cost(r); ok {
		t.Error("Cost() on raw result should report false")
	}
}

func TestDecodeRawWithoutPath(t *testing.T) {
	r, err := DefaultVariants().Decode("other", []byte(`[1,2,3]`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if r.PathIndices() != nil {
		t.Errorf("PathIndices() = %v, want nil", r.PathIndices())
	}
}

func TestDecodeErrors(t *testing.T) {
	v := DefaultVariants()
	for _, tc := range []struct{ alg, body string }{
		{"tsp", `{"points": "nope"}`},
		{"dijkstra", `{"path":[0.5]}`},
		{"other", `not json`},
	} {
		if _, err := v.Decode(tc.alg, []byte(tc.body)); err == nil {
			t.Errorf("Decode(%s, %s) should fail", tc.alg, tc.body)
		}
	}
}

func TestParseVariants(t *testing.T) {
	v, err := ParseVariants(map[string]string{"tsp": "tour", "astar": "shortest_path"})
	if err != nil {
		t.Fatalf("ParseVariants() error = %v", err)
	}
	if v.KindOf("astar") != KindShortestPath || v.KindOf("bfs") != KindRaw {
		t.Errorf("ParseVariants() = %v", v)
	}
	if _, err := ParseVariants(map[string]string{"x": "pie"}); err == nil {
		t.Error("ParseVariants with unknown kind should fail")
	}
}

type kindRecorder struct{ got []Kind }

func (k *kindRecorder) VisitTour(*Tour) error {
	k.got = append(k.got, KindTour)
	return nil
}

func (k *kindRecorder) VisitShortestPath(*ShortestPath) error {
	k.got = append(k.got, KindShortestPath)
	return nil
}

func (k *kindRecorder) VisitRaw(*Raw) error {
	k.got = append(k.got, KindRaw)
	return nil
}

func TestAcceptDispatch(t *testing.T) {
	var v kindRecorder
	for _, r := range []Result{&Tour{}, &ShortestPath{}, &Raw{}} {
		if err := r.Accept(&v); err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
	}
	want := []Kind{KindTour, KindShortestPath, KindRaw}
	if !reflect.DeepEqual(v.got, want) {
		t.Errorf("visited %v, want %v", v.got, want)
	}
}

func TestStoreCommitOrdering(t *testing.T) {
	var s Store
	if s.Load() != nil {
		t.Fatal("zero Store should be empty")
	}

	first, second := s.Next(), s.Next()
	if second <= first {
		t.Fatalf("Next() not increasing: %d then %d", first, second)
	}

	// The newer request answers first.
	if !s.Commit(&Entry{Seq: second, Algorithm: "dijkstra"}) {
		t.Fatal("Commit(second) = false, want true")
	}
	// The stale answer must not replace it.
	if s.Commit(&Entry{Seq: first, Algorithm: "tsp"}) {
		t.Error("Commit(first) after second = true, want false")
	}
	if got := s.Load().Algorithm; got != "dijkstra" {
		t.Errorf("Load().Algorithm = %q, want dijkstra", got)
	}

	third := s.Next()
	if !s.Commit(&Entry{Seq: third, Algorithm: "tsp"}) {
		t.Error("Commit(third) = false, want true")
	}
	if s.Commit(nil) {
		t.Error("Commit(nil) = true, want false")
	}
}

func TestStoreConcurrentNext(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	seen := make(chan uint64, 100)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := s.Next()
			s.Commit(&Entry{Seq: seq})
			seen <- seq
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[uint64]bool{}
	for seq := range seen {
		unique[seq] = true
	}
	if len(unique) != 100 {
		t.Errorf("got %d distinct sequence numbers, want 100", len(unique))
	}
	if got := s.Load().Seq; got != 100 {
		t.Errorf("committed Seq = %d, want 100", got)
	}
}

func TestBenchmarkWriteText(t *testing.T) {
	body := `{"results":{"tsp":{"cost":1234.5,"elapsed":0.5},"dijkstra":{"error":"No points"},"odd":[1]}}`
	b, err := DecodeBenchmark([]byte(body))
	if err != nil {
		t.Fatalf("DecodeBenchmark() error = %v", err)
	}
	b.Machine = "linux / Test CPU / 8 GB"

	if got := b.Algorithms(); !reflect.DeepEqual(got, []string{"dijkstra", "odd", "tsp"}) {
		t.Errorf("Algorithms() = %v", got)
	}

	var sb strings.Builder
	if err := b.WriteText(&sb, language.Und); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	out := sb.String()
	for _, want := range []string{"machine: linux / Test CPU / 8 GB", "1,234.50", "500.000", "No points", "\"elapsed\": 0.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("WriteText() output missing %q:\n%s", want, out)
		}
	}
}

func TestDecodeBenchmarkEmpty(t *testing.T) {
	b, err := DecodeBenchmark([]byte(`{}`))
	if err != nil {
		t.Fatalf("DecodeBenchmark() error = %v", err)
	}
	if b.Results == nil || len(b.Rows()) != 0 {
		t.Errorf("DecodeBenchmark({}) = %+v, want empty non-nil results", b)
	}
}
