package algoviz

import (
	"context"

	"github.com/gogpu/algoviz/compute"
	"github.com/gogpu/algoviz/dataset"
	"github.com/gogpu/algoviz/internal/hostinfo"
	"github.com/gogpu/algoviz/internal/logging"
	"github.com/gogpu/algoviz/result"
	"github.com/gogpu/algoviz/viz"
)

// SessionOption configures a Session during creation.
// Use functional options to customize Session behavior.
//
// Example:
//
//	// Local service, default canvas
//	s := algoviz.NewSession()
//
//	// Remote service, larger canvas with captions
//	s := algoviz.NewSession(
//		algoviz.WithClient(compute.NewClient("http://compute:8000")),
//		algoviz.WithViewport(viz.Viewport{Width: 1280, Height: 720}),
//		algoviz.WithRendererOptions(viz.WithCaption(true)),
//	)
type SessionOption func(*sessionOptions)

// MachineFunc describes the client host for benchmark reports.
type MachineFunc func(ctx context.Context) string

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	client      *compute.Client
	viewport    viz.Viewport
	renderOpts  []viz.Option
	variants    result.Variants
	maxBytes    int64
	machineFunc MachineFunc
}

// defaultOptions returns the default session options.
func defaultOptions() sessionOptions {
	return sessionOptions{
		viewport:    viz.DefaultViewport,
		variants:    result.DefaultVariants(),
		maxBytes:    dataset.DefaultMaxBytes,
		machineFunc: hostMachine,
	}
}

// WithClient sets the compute service client. Without it the session talks
// to compute.DefaultBaseURL.
func WithClient(c *compute.Client) SessionOption {
	return func(o *sessionOptions) {
		o.client = c
	}
}

// WithViewport sets the initial canvas size.
func WithViewport(vp viz.Viewport) SessionOption {
	return func(o *sessionOptions) {
		if vp.Valid() {
			o.viewport = vp
		}
	}
}

// WithRendererOptions passes drawing options to the result renderer.
func WithRendererOptions(opts ...viz.Option) SessionOption {
	return func(o *sessionOptions) {
		o.renderOpts = append(o.renderOpts, opts...)
	}
}

// WithVariants replaces the algorithm-to-variant table.
func WithVariants(v result.Variants) SessionOption {
	return func(o *sessionOptions) {
		if v != nil {
			o.variants = v.Clone()
		}
	}
}

// WithMaxDatasetBytes bounds the size of loaded datasets.
func WithMaxDatasetBytes(n int64) SessionOption {
	return func(o *sessionOptions) {
		if n > 0 {
			o.maxBytes = n
		}
	}
}

// WithMachineFunc sets how benchmark reports describe the client host.
// The default probes the host with gopsutil.
func WithMachineFunc(fn MachineFunc) SessionOption {
	return func(o *sessionOptions) {
		if fn != nil {
			o.machineFunc = fn
		}
	}
}

func hostMachine(ctx context.Context) string {
	info, err := hostinfo.Collect(ctx)
	if err != nil {
		logging.Logger().Debug("algoviz: partial host info", "err", err)
	}
	return info.String()
}
