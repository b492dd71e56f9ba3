// Package server is the local dashboard: a gin HTTP API over one
// algoviz.Session. Browsers upload datasets (file picker or drag-and-drop),
// run and benchmark algorithms, and fetch the drawing and the CSV export.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gogpu/algoviz"
	"github.com/gogpu/algoviz/compute"
	"github.com/gogpu/algoviz/internal/logging"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

const shutdownTimeout = 5 * time.Second

// Server serves the dashboard API.
type Server struct {
	session *algoviz.Session
	engine  *gin.Engine
}

// New builds the dashboard for s.
func New(s *algoviz.Session) *Server {
	srv := &Server{session: s}
	srv.engine = srv.routes()
	return srv
}

// Handler returns the HTTP handler.
func (srv *Server) Handler() http.Handler { return srv.engine }

func (srv *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, compute.HeaderRequestID)
	corsCfg.ExposeHeaders = append(corsCfg.ExposeHeaders, "Content-Disposition")
	corsCfg.AllowAllOrigins = true
	r.Use(cors.New(corsCfg))

	h := &handlers{s: srv.session}
	r.GET("/health", h.health)
	r.GET("/system", h.system)

	api := r.Group("/api")
	{
		api.GET("/algorithms", h.algorithms)
		api.POST("/dataset", h.uploadDataset)
		api.GET("/dataset", h.datasetInfo)
		api.POST("/run", h.run)
		api.GET("/result", h.result)
		api.POST("/benchmark", h.benchmark)
		api.GET("/benchmark", h.lastBenchmark)
		api.POST("/viewport", h.setViewport)
		api.GET("/render.svg", h.render("svg"))
		api.GET("/render.png", h.render("raster"))
		api.GET("/export.csv", h.exportCSV)
		api.GET("/search", h.search)
		api.GET("/history", h.history)
		api.GET("/history/:id", h.historyEntry)
		api.GET("/logs", h.logs)
	}

	r.NoRoute(func(c *gin.Context) {
		ResponseErrorWithMsg(c, http.StatusNotFound, CodeInvalidParam, "no route for "+c.Request.URL.Path)
	})
	return r
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (srv *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logging.Logger().Info("server: listening", "addr", addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logging.Logger().Info("server: stopped")
	return nil
}
