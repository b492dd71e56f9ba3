package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli"
	"golang.org/x/text/language"

	"github.com/gogpu/algoviz/internal/server"
	"github.com/gogpu/algoviz/result"
)

func (e *env) algorithms(*cli.Context) error {
	names, err := e.session.Algorithms(e.ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(e.stdout, name)
	}
	return nil
}

func (e *env) run(c *cli.Context) error {
	if _, err := e.session.LoadFile(c.String("dataset")); err != nil {
		return err
	}
	entry, err := e.session.Run(e.ctx, c.String("algorithm"))
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "%s: %s result, request %s\n", entry.Algorithm, entry.Result.Kind(), entry.RequestID)
	if cost, ok := result.Cost(entry.Result); ok {
		fmt.Fprintf(e.stdout, "cost: %.2f\n", cost)
	}
	if path := entry.Result.PathIndices(); len(path) > 0 {
		fmt.Fprintf(e.stdout, "path: %d nodes\n", len(path))
	}

	for _, out := range []struct{ flag, backend string }{
		{"svg", "svg"},
		{"png", "raster"},
	} {
		file := c.String(out.flag)
		if file == "" {
			continue
		}
		if err := e.session.RenderFile(file, out.backend); err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, "wrote", file)
	}

	if dir := c.String("csv-dir"); dir != "" {
		file, err := e.session.ExportFile(dir)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, "wrote", file)
	}
	return nil
}

func (e *env) bench(c *cli.Context) error {
	tag, err := language.Parse(c.String("lang"))
	if err != nil {
		return fmt.Errorf("--lang: %w", err)
	}
	if _, err := e.session.LoadFile(c.String("dataset")); err != nil {
		return err
	}
	set, err := e.session.Benchmark(e.ctx, c.StringSlice("algorithm"))
	if err != nil {
		return err
	}
	return set.WriteText(e.stdout, tag)
}

func (e *env) search(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("search: expected one query argument")
	}
	res, err := e.session.Search(e.ctx, c.Args().First(), c.Int("k"))
	if err != nil {
		return err
	}
	return e.printJSON(res)
}

func (e *env) logs(*cli.Context) error {
	return e.session.StreamLogs(e.ctx, func(line []byte) {
		fmt.Fprintf(e.stdout, "%s\n", line)
	})
}

func (e *env) history(c *cli.Context) error {
	if c.NArg() == 0 {
		res, err := e.session.History(e.ctx)
		if err != nil {
			return err
		}
		return e.printJSON(res)
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("history: invalid id %q", c.Args().First())
	}
	res, err := e.session.HistoryEntry(e.ctx, id)
	if err != nil {
		return err
	}
	return e.printJSON(res)
}

func (e *env) serve(c *cli.Context) error {
	if !c.GlobalBool("verbose") {
		gin.SetMode(gin.ReleaseMode)
	}
	addr := c.String("addr")
	if addr == "" {
		addr = e.cfg.Server.Addr
	}
	return server.New(e.session).Run(e.ctx, addr)
}

// printJSON writes raw indented, or as is when it does not parse.
func (e *env) printJSON(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		buf.Reset()
		buf.Write(raw)
	}
	buf.WriteByte('\n')
	_, err := e.stdout.Write(buf.Bytes())
	return err
}
