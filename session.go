package algoviz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gogpu/algoviz/compute"
	"github.com/gogpu/algoviz/dataset"
	"github.com/gogpu/algoviz/export"
	"github.com/gogpu/algoviz/recording"
	"github.com/gogpu/algoviz/result"
	"github.com/gogpu/algoviz/viz"

	// Backends available to RenderTo and RenderFile.
	_ "github.com/gogpu/algoviz/recording/backends/raster"
	_ "github.com/gogpu/algoviz/recording/backends/svg"
)

// Session owns the state of one user: the loaded dataset, the latest run
// result and the latest benchmark. Every surface (library, CLI, dashboard)
// drives the same Session. A Session is safe for concurrent use.
type Session struct {
	client   *compute.Client
	variants result.Variants
	maxBytes int64
	machine  MachineFunc
	renderer atomic.Pointer[viz.Renderer]

	datasets dataset.Store
	results  result.Store

	mu         sync.Mutex
	algorithms []string
	bench      *result.BenchmarkSet
}

// NewSession creates a session with no dataset and no result.
func NewSession(opts ...SessionOption) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil {
		o.client = compute.NewClient(compute.DefaultBaseURL)
	}
	s := &Session{
		client:   o.client,
		variants: o.variants,
		maxBytes: o.maxBytes,
		machine:  o.machineFunc,
	}
	s.renderer.Store(viz.NewRenderer(o.viewport, o.renderOpts...))
	return s
}

// Client returns the compute service client.
func (s *Session) Client() *compute.Client { return s.client }

// LoadDataset parses r as the new dataset. On failure the previous dataset
// stays active and the error is a *dataset.ParseError.
func (s *Session) LoadDataset(name string, r io.Reader) (*dataset.Dataset, error) {
	d, err := dataset.Parse(name, r, s.maxBytes)
	if err != nil {
		Logger().Warn("algoviz: dataset rejected", "source", name, "err", err)
		return nil, err
	}
	s.datasets.Replace(d)
	Logger().Info("algoviz: dataset loaded", "source", name, "bytes", d.Size())
	return d, nil
}

// LoadFile loads the dataset stored at path.
func (s *Session) LoadFile(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("algoviz: load dataset: %w", err)
	}
	defer f.Close()
	return s.LoadDataset(filepath.Base(path), f)
}

// Dataset returns the active dataset, or nil.
func (s *Session) Dataset() *dataset.Dataset { return s.datasets.Load() }

// Algorithms fetches the algorithm names advertised by the service and
// caches them for Benchmark.
func (s *Session) Algorithms(ctx context.Context) ([]string, error) {
	names, err := s.client.Algorithms(ctx)
	if err != nil {
		return nil, fmt.Errorf("algoviz: algorithms: %w", err)
	}
	s.mu.Lock()
	s.algorithms = slices.Clone(names)
	s.mu.Unlock()
	return names, nil
}

func (s *Session) cachedAlgorithms(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	names := slices.Clone(s.algorithms)
	s.mu.Unlock()
	if len(names) > 0 {
		return names, nil
	}
	return s.Algorithms(ctx)
}

// Run executes algorithm over the active dataset and commits the result.
//
// The result is committed only when no newer run has been committed in the
// meantime; otherwise Run returns an error wrapping ErrSuperseded and the
// stored result is left alone. Service failures leave it alone as well.
func (s *Session) Run(ctx context.Context, algorithm string) (*result.Entry, error) {
	ds := s.datasets.Load()
	if ds == nil {
		return nil, &PreconditionError{Op: "run " + algorithm, Err: ErrNoDataset}
	}
	seq := s.results.Next()

	resp, err := s.client.Run(ctx, algorithm, ds.Bytes())
	if err != nil {
		return nil, fmt.Errorf("algoviz: run %s: %w", algorithm, err)
	}
	res, err := s.variants.Decode(algorithm, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("algoviz: run %s: %w", algorithm, err)
	}

	e := &result.Entry{
		Seq:       seq,
		RequestID: resp.RequestID,
		Algorithm: algorithm,
		Raw:       resp.Body,
		Result:    res,
	}
	if !s.results.Commit(e) {
		Logger().Warn("algoviz: run superseded", "algorithm", algorithm, "seq", seq, "request_id", resp.RequestID)
		return nil, fmt.Errorf("algoviz: run %s: %w", algorithm, ErrSuperseded)
	}
	Logger().Info("algoviz: run committed",
		"algorithm", algorithm,
		"seq", seq,
		"request_id", resp.RequestID,
		"variant", res.Kind())
	return e, nil
}

// Result returns the committed run, or nil.
func (s *Session) Result() *result.Entry { return s.results.Load() }

// Benchmark runs algorithms over the active dataset. With no algorithms it
// uses every advertised one. The stored run result is not touched.
func (s *Session) Benchmark(ctx context.Context, algorithms []string) (*result.BenchmarkSet, error) {
	ds := s.datasets.Load()
	if ds == nil {
		return nil, &PreconditionError{Op: "benchmark", Err: ErrNoDataset}
	}
	if len(algorithms) == 0 {
		names, err := s.cachedAlgorithms(ctx)
		if err != nil {
			return nil, fmt.Errorf("algoviz: benchmark: %w", err)
		}
		algorithms = names
	}

	resp, err := s.client.Benchmark(ctx, algorithms, ds.Bytes())
	if err != nil {
		return nil, fmt.Errorf("algoviz: benchmark: %w", err)
	}
	set, err := result.DecodeBenchmark(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("algoviz: benchmark: %w", err)
	}
	set.Machine = s.machine(ctx)

	s.mu.Lock()
	s.bench = set
	s.mu.Unlock()
	Logger().Info("algoviz: benchmark done", "algorithms", len(set.Results), "request_id", resp.RequestID)
	return set, nil
}

// LastBenchmark returns the most recent benchmark, or nil.
func (s *Session) LastBenchmark() *result.BenchmarkSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bench
}

// Viewport returns the canvas size.
func (s *Session) Viewport() viz.Viewport { return s.renderer.Load().Viewport() }

// SetViewport resizes the canvas for subsequent renders. A size with no
// room inside the margin is rejected with an error wrapping
// viz.ErrViewportTooSmall and the current size stays.
func (s *Session) SetViewport(vp viz.Viewport) error {
	for {
		cur := s.renderer.Load()
		if !cur.Fits(vp) {
			return fmt.Errorf("algoviz: viewport %dx%d with margin %g: %w",
				vp.Width, vp.Height, cur.Margin(), viz.ErrViewportTooSmall)
		}
		if s.renderer.CompareAndSwap(cur, cur.Resize(vp)) {
			return nil
		}
	}
}

// Render draws the committed result.
func (s *Session) Render() (*recording.Recording, error) {
	e := s.results.Load()
	if e == nil {
		return nil, &PreconditionError{Op: "render", Err: ErrNoResult}
	}
	rec, err := s.renderer.Load().Render(e.Algorithm, e.Result)
	if err != nil {
		return nil, fmt.Errorf("algoviz: render %s: %w", e.Algorithm, err)
	}
	return rec, nil
}

// RenderTo draws the committed result with the named backend and writes
// the encoded drawing to w. It returns the media type of the output.
func (s *Session) RenderTo(w io.Writer, backend string) (string, error) {
	rec, b, err := s.play(backend)
	if err != nil {
		return "", err
	}
	wb, ok := b.(recording.WriterBackend)
	if !ok {
		return "", fmt.Errorf("algoviz: backend %q cannot write to a stream", backend)
	}
	if _, err := wb.WriteTo(w); err != nil {
		return "", fmt.Errorf("algoviz: write %s drawing: %w", backend, err)
	}
	Logger().Debug("algoviz: rendered", "backend", backend, "commands", len(rec.Commands()))
	return wb.MediaType(), nil
}

// RenderFile draws the committed result with the named backend into path.
func (s *Session) RenderFile(path, backend string) error {
	_, b, err := s.play(backend)
	if err != nil {
		return err
	}
	fb, ok := b.(recording.FileBackend)
	if !ok {
		return fmt.Errorf("algoviz: backend %q cannot write files", backend)
	}
	if err := fb.SaveToFile(path); err != nil {
		return fmt.Errorf("algoviz: save %s: %w", path, err)
	}
	return nil
}

func (s *Session) play(backend string) (*recording.Recording, recording.Backend, error) {
	if !recording.IsRegistered(backend) {
		return nil, nil, fmt.Errorf("algoviz: %w %q, have %v", recording.ErrUnknownBackend, backend, recording.Backends())
	}
	rec, err := s.Render()
	if err != nil {
		return nil, nil, err
	}
	b, err := recording.NewBackend(backend)
	if err != nil {
		return nil, nil, fmt.Errorf("algoviz: %w", err)
	}
	if err := rec.Playback(b); err != nil {
		return nil, nil, fmt.Errorf("algoviz: playback: %w", err)
	}
	return rec, b, nil
}

// ExportCSV writes the committed path as CSV. With no committed result it
// writes nothing and reports false.
func (s *Session) ExportCSV(w io.Writer) (bool, error) {
	e := s.results.Load()
	if e == nil {
		return false, nil
	}
	if err := export.Write(w, e.Result.PathIndices()); err != nil {
		return false, fmt.Errorf("algoviz: export: %w", err)
	}
	return true, nil
}

// ExportFile writes the committed path to export.FileName in dir and
// returns the file path. With no committed result it returns "".
func (s *Session) ExportFile(dir string) (string, error) {
	e := s.results.Load()
	if e == nil {
		return "", nil
	}
	return export.WriteFile(dir, e.Result.PathIndices())
}

// Search forwards q to the service search index. A blank query returns
// nothing without a request.
func (s *Session) Search(ctx context.Context, q string, k int) (json.RawMessage, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	res, err := s.client.Search(ctx, q, k)
	if err != nil {
		return nil, fmt.Errorf("algoviz: search: %w", err)
	}
	return res, nil
}

// StreamLogs passes every service log line to fn until ctx is done.
func (s *Session) StreamLogs(ctx context.Context, fn func(line []byte)) error {
	return s.client.StreamLogs(ctx, fn)
}

// History lists the runs recorded by the service.
func (s *Session) History(ctx context.Context) (json.RawMessage, error) {
	res, err := s.client.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("algoviz: history: %w", err)
	}
	return res, nil
}

// HistoryEntry returns one run recorded by the service.
func (s *Session) HistoryEntry(ctx context.Context, id int64) (json.RawMessage, error) {
	res, err := s.client.HistoryEntry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("algoviz: history %d: %w", id, err)
	}
	return res, nil
}
