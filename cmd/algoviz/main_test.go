package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/algorithms", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"algorithms":["dijkstra","tsp"]}`)
	})
	mux.HandleFunc("POST /api/run", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"points":[{"x":0,"y":0},{"x":10,"y":10},{"x":5,"y":0}],"path":[2,0,1],"cost":28.1}`)
	})
	mux.HandleFunc("POST /api/benchmark", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"results":{"tsp":{"cost":1234.5,"elapsed":0.5}}}`)
	})
	mux.HandleFunc("GET /api/results/{id}", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":`+r.PathValue("id")+`}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cities.json")
	if err := os.WriteFile(path, []byte(`{"points":[[0,0],[10,10],[5,0]]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(context.Background(), &stdout, &stderr).Run(append([]string{"algoviz"}, args...))
	return stdout.String(), err
}

func TestAlgorithmsCommand(t *testing.T) {
	svc := newService(t)
	out, err := runApp(t, "--base-url", svc.URL, "algorithms")
	if err != nil {
		t.Fatalf("algorithms: %v", err)
	}
	if out != "dijkstra\ntsp\n" {
		t.Errorf("output = %q, want %q", out, "dijkstra\ntsp\n")
	}
}

func TestRunCommandWritesOutputs(t *testing.T) {
	svc := newService(t)
	ds := writeDataset(t)
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "tour.svg")
	pngPath := filepath.Join(dir, "tour.png")

	out, err := runApp(t, "--base-url", svc.URL, "run",
		"--algorithm", "tsp", "--dataset", ds,
		"--svg", svgPath, "--png", pngPath, "--csv-dir", dir)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"tsp: tour result", "cost: 28.10", "path: 3 nodes"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	csv, err := os.ReadFile(filepath.Join(dir, "result.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(csv) != "2,0,1" {
		t.Errorf("result.csv = %q, want %q", csv, "2,0,1")
	}
	svg, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg output has no <svg> element")
	}
	png, err := os.ReadFile(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png output has no PNG signature")
	}
}

func TestRunCommandRequiresFlags(t *testing.T) {
	svc := newService(t)
	if _, err := runApp(t, "--base-url", svc.URL, "run", "--algorithm", "tsp"); err == nil {
		t.Error("run without --dataset succeeded")
	}
}

func TestBenchCommand(t *testing.T) {
	svc := newService(t)
	ds := writeDataset(t)
	out, err := runApp(t, "--base-url", svc.URL, "bench", "--dataset", ds, "--algorithm", "tsp", "--lang", "de")
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	if !strings.Contains(out, "1.234,50") {
		t.Errorf("output %q missing German formatted cost", out)
	}
}

func TestHistoryCommand(t *testing.T) {
	svc := newService(t)
	out, err := runApp(t, "--base-url", svc.URL, "history", "7")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if strings.TrimSpace(out) != `{
  "id": 7
}` {
		t.Errorf("output = %q", out)
	}

	if _, err := runApp(t, "--base-url", svc.URL, "history", "seven"); err == nil {
		t.Error("history with a bad id succeeded")
	}
}

func TestSearchBlankQuery(t *testing.T) {
	svc := newService(t)
	out, err := runApp(t, "--base-url", svc.URL, "search", "  ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if out != "" {
		t.Errorf("blank search printed %q", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algoviz.yaml")
	if err := os.WriteFile(path, []byte("canvas:\n  width: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runApp(t, "--config", path, "algorithms"); err == nil {
		t.Error("invalid config accepted")
	}
	if _, err := runApp(t, "--base-url", "not a url", "algorithms"); err == nil {
		t.Error("relative base URL accepted")
	}
}
