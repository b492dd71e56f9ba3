package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/gogpu/algoviz"
	"github.com/gogpu/algoviz/export"
	"github.com/gogpu/algoviz/internal/hostinfo"
	"github.com/gogpu/algoviz/internal/logging"
	"github.com/gogpu/algoviz/recording"
	"github.com/gogpu/algoviz/result"
	"github.com/gogpu/algoviz/viz"
)

// uploadName names datasets posted as a raw request body.
const uploadName = "upload"

type handlers struct {
	s *algoviz.Session
}

func (h *handlers) health(c *gin.Context) {
	ResponseSuccess(c, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "algoviz",
		"dataset":   h.s.Dataset() != nil,
		"result":    h.s.Result() != nil,
	})
}

func (h *handlers) system(c *gin.Context) {
	info, err := hostinfo.Collect(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
	}
	ResponseSuccess(c, gin.H{
		"host":     info,
		"summary":  info.String(),
		"backends": recording.Backends(),
	})
}

func (h *handlers) algorithms(c *gin.Context) {
	names, err := h.s.Algorithms(c.Request.Context())
	if err != nil {
		ResponseError(c, err)
		return
	}
	ResponseSuccess(c, gin.H{"algorithms": names})
}

type datasetResponse struct {
	Name  string `json:"name"`
	Bytes int    `json:"bytes"`
}

// uploadDataset accepts a multipart form with a "file" field (file picker)
// or the JSON document as the raw body (drag-and-drop).
func (h *handlers) uploadDataset(c *gin.Context) {
	name, body, err := datasetSource(c)
	if err != nil {
		ResponseErrorWithMsg(c, http.StatusBadRequest, CodeInvalidParam, err.Error())
		return
	}
	defer body.Close()

	d, err := h.s.LoadDataset(name, body)
	if err != nil {
		ResponseError(c, err)
		return
	}
	ResponseSuccess(c, datasetResponse{Name: d.Name(), Bytes: d.Size()})
}

func datasetSource(c *gin.Context) (string, io.ReadCloser, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return uploadName, c.Request.Body, nil
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, f, nil
}

func (h *handlers) datasetInfo(c *gin.Context) {
	d := h.s.Dataset()
	if d == nil {
		ResponseError(c, &algoviz.PreconditionError{Op: "dataset", Err: algoviz.ErrNoDataset})
		return
	}
	ResponseSuccess(c, datasetResponse{Name: d.Name(), Bytes: d.Size()})
}

type runRequest struct {
	Algorithm string `json:"algorithm" binding:"required"`
}

type runResponse struct {
	Seq       uint64          `json:"seq"`
	RequestID string          `json:"request_id"`
	Algorithm string          `json:"algorithm"`
	Kind      string          `json:"kind"`
	Result    json.RawMessage `json:"result"`
}

func newRunResponse(e *result.Entry) runResponse {
	return runResponse{
		Seq:       e.Seq,
		RequestID: e.RequestID,
		Algorithm: e.Algorithm,
		Kind:      e.Result.Kind().String(),
		Result:    e.Raw,
	}
}

func (h *handlers) run(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ResponseErrorWithMsg(c, http.StatusBadRequest, CodeInvalidParam, err.Error())
		return
	}
	e, err := h.s.Run(c.Request.Context(), req.Algorithm)
	if err != nil {
		ResponseError(c, err)
		return
	}
	ResponseSuccess(c, newRunResponse(e))
}

func (h *handlers) result(c *gin.Context) {
	e := h.s.Result()
	if e == nil {
		ResponseError(c, &algoviz.PreconditionError{Op: "result", Err: algoviz.ErrNoResult})
		return
	}
	ResponseSuccess(c, newRunResponse(e))
}

type benchmarkRequest struct {
	Algorithms []string `json:"algorithms"`
}

type benchmarkResponse struct {
	Machine string                     `json:"machine"`
	Results map[string]json.RawMessage `json:"results"`
	Summary []result.BenchmarkRow      `json:"summary"`
}

func (h *handlers) benchmark(c *gin.Context) {
	var req benchmarkRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			ResponseErrorWithMsg(c, http.StatusBadRequest, CodeInvalidParam, err.Error())
			return
		}
	}
	set, err := h.s.Benchmark(c.Request.Context(), req.Algorithms)
	if err != nil {
		ResponseError(c, err)
		return
	}
	writeBenchmark(c, set)
}

func (h *handlers) lastBenchmark(c *gin.Context) {
	set := h.s.LastBenchmark()
	if set == nil {
		ResponseError(c, &algoviz.PreconditionError{Op: "benchmark", Err: algoviz.ErrNoResult})
		return
	}
	writeBenchmark(c, set)
}

// writeBenchmark answers with the envelope, or with the text report when
// ?format=text is given.
func writeBenchmark(c *gin.Context, set *result.BenchmarkSet) {
	if c.Query("format") == "text" {
		var buf bytes.Buffer
		if err := set.WriteText(&buf, acceptLanguage(c)); err != nil {
			ResponseError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
		return
	}
	ResponseSuccess(c, benchmarkResponse{
		Machine: set.Machine,
		Results: set.Results,
		Summary: set.Rows(),
	})
}

func (h *handlers) setViewport(c *gin.Context) {
	var vp struct {
		Width  int `json:"width" binding:"required,gt=0"`
		Height int `json:"height" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&vp); err != nil {
		ResponseErrorWithMsg(c, http.StatusBadRequest, CodeInvalidParam, err.Error())
		return
	}
	if err := h.s.SetViewport(viz.Viewport{Width: vp.Width, Height: vp.Height}); err != nil {
		ResponseErrorWithMsg(c, http.StatusBadRequest, CodeInvalidParam, err.Error())
		return
	}
	ResponseSuccess(c, h.s.Viewport())
}

func (h *handlers) render(backend string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var buf bytes.Buffer
		mediaType, err := h.s.RenderTo(&buf, backend)
		if err != nil {
			ResponseError(c, err)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, mediaType, buf.Bytes())
	}
}

// exportCSV answers 204 when there is nothing to export.
func (h *handlers) exportCSV(c *gin.Context) {
	var buf bytes.Buffer
	ok, err := h.s.ExportCSV(&buf)
	if err != nil {
		ResponseError(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Content-Disposition", export.ContentDisposition())
	c.Data(http.StatusOK, export.MediaType, buf.Bytes())
}

func (h *handlers) search(c *gin.Context) {
	k, _ := strconv.Atoi(c.Query("k"))
	res, err := h.s.Search(c.Request.Context(), c.Query("q"), k)
	if err != nil {
		ResponseError(c, err)
		return
	}
	if res == nil {
		res = json.RawMessage(`[]`)
	}
	ResponseSuccess(c, gin.H{"results": res})
}

func (h *handlers) history(c *gin.Context) {
	res, err := h.s.History(c.Request.Context())
	if err != nil {
		ResponseError(c, err)
		return
	}
	ResponseSuccess(c, gin.H{"results": res})
}

func (h *handlers) historyEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ResponseErrorWithMsg(c, http.StatusBadRequest, CodeInvalidParam, "invalid id "+strconv.Quote(c.Param("id")))
		return
	}
	res, err := h.s.HistoryEntry(c.Request.Context(), id)
	if err != nil {
		ResponseError(c, err)
		return
	}
	ResponseSuccess(c, res)
}

// logs relays the service log stream to the browser as server-sent events.
func (h *handlers) logs(c *gin.Context) {
	ctx := c.Request.Context()
	lines := make(chan string, 16)
	go func() {
		defer close(lines)
		err := h.s.StreamLogs(ctx, func(data []byte) {
			select {
			case lines <- string(data):
			case <-ctx.Done():
			}
		})
		if err != nil {
			logging.Logger().Warn("server: log stream ended", "err", err)
		}
	}()

	c.Stream(func(io.Writer) bool {
		line, ok := <-lines
		if !ok {
			return false
		}
		c.SSEvent("message", line)
		return true
	})
}

// acceptLanguage picks the number formatting language of the client.
func acceptLanguage(c *gin.Context) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.English
	}
	return tags[0]
}
