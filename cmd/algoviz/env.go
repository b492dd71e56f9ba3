package main

import (
	"context"
	"io"

	"github.com/urfave/cli"

	"github.com/gogpu/algoviz"
	"github.com/gogpu/algoviz/compute"
	"github.com/gogpu/algoviz/internal/config"
	"github.com/gogpu/algoviz/internal/idgen"
	"github.com/gogpu/algoviz/internal/logging"
	"github.com/gogpu/algoviz/result"
	"github.com/gogpu/algoviz/viz"
)

// env is the state shared by the commands of one invocation.
type env struct {
	ctx     context.Context
	stdout  io.Writer
	stderr  io.Writer
	cfg     *config.Config
	session *algoviz.Session
}

func (e *env) setup(c *cli.Context) error {
	algoviz.SetLogger(logging.NewText(e.stderr, c.Bool("verbose")))

	v, err := config.New(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("base-url") {
		v.Set("service.base_url", c.String("base-url"))
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	e.cfg, e.session = cfg, s
	return nil
}

// newSession wires a Session from cfg.
func newSession(cfg *config.Config) (*algoviz.Session, error) {
	start, err := idgen.ParseStartTime(cfg.IDs.StartTime)
	if err != nil {
		return nil, err
	}
	ids, err := idgen.New(idgen.Settings{MachineID: cfg.IDs.MachineID, StartTime: start})
	if err != nil {
		return nil, err
	}
	variants, err := result.ParseVariants(cfg.Variants)
	if err != nil {
		return nil, err
	}

	client := compute.NewClient(cfg.Service.BaseURL,
		compute.WithTimeout(cfg.Service.Timeout),
		compute.WithIDFunc(ids.NextString),
	)
	return algoviz.NewSession(
		algoviz.WithClient(client),
		algoviz.WithViewport(viz.Viewport{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height}),
		algoviz.WithRendererOptions(
			viz.WithMargin(cfg.Canvas.Margin),
			viz.WithMarkerRadius(cfg.Canvas.MarkerRadius),
			viz.WithCaption(cfg.Render.Caption),
		),
		algoviz.WithVariants(variants),
		algoviz.WithMaxDatasetBytes(cfg.Dataset.MaxBytes),
	), nil
}
