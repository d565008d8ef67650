// Package app wires configuration, logging, the history graph, the manifest
// loader and the session interpreter into one run of the h1st CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Caian/h1st/history"
	"github.com/Caian/h1st/internal/config"
	"github.com/Caian/h1st/internal/ctxlog"
	"github.com/Caian/h1st/internal/session"
	"github.com/Caian/h1st/manifest"
	"github.com/Caian/h1st/printer"
)

// ErrScriptFailed is returned when at least one script line failed.
var ErrScriptFailed = errors.New("app: script had failing commands")

// App holds the dependencies of one run.
type App struct {
	outW   io.Writer
	in     io.Reader
	logger *slog.Logger
	config *config.Config
}

// New returns an App writing results to outW, logs to logW, and reading a
// "-" script from in.
func New(outW, logW io.Writer, in io.Reader, cfg *config.Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured.", "level", cfg.LogLevel, "format", cfg.LogFormat)
	return &App{outW: outW, in: in, logger: logger, config: cfg}
}

// Run populates a graph from the manifest, the script or the built-in demo,
// then prints it and the requested provenance.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	g := history.NewGraph(history.WithLogger(a.logger))

	if err := a.populate(ctx, g); err != nil {
		return err
	}

	if a.config.ScriptPath != "" {
		if err := a.runScript(ctx, g); err != nil {
			return err
		}
	} else if err := a.print(g); err != nil {
		return err
	}

	if len(a.config.Track) > 0 {
		if err := a.track(g); err != nil {
			return err
		}
	}

	st := g.Stats()
	a.logger.Info("Run finished.", "nodes", st.NodeCount, "files", st.FileCount, "pushed", st.Pushed, "pruned", st.Pruned)
	return nil
}

func (a *App) populate(ctx context.Context, g *history.Graph) error {
	switch {
	case a.config.ManifestPath != "":
		steps, err := manifest.Load(a.config.ManifestPath)
		if err != nil {
			return err
		}
		a.logger.Info("Manifest loaded.", "path", a.config.ManifestPath, "steps", len(steps))
		return manifest.Apply(ctx, g, steps)
	case a.config.ScriptPath == "":
		a.logger.Info("No manifest or script given, replaying the demo build log.")
		return manifest.Apply(ctx, g, demoSteps())
	default:
		return nil
	}
}

func (a *App) runScript(ctx context.Context, g *history.Graph) error {
	sess, err := session.New(g, a.outW, a.config.CacheSize)
	if err != nil {
		return err
	}

	r := a.in
	if a.config.ScriptPath != "-" {
		f, err := os.Open(a.config.ScriptPath)
		if err != nil {
			return fmt.Errorf("app: open script: %w", err)
		}
		defer f.Close()
		r = f
	}

	failed, err := sess.Run(ctx, r)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d failed", ErrScriptFailed, failed)
	}
	return nil
}

func (a *App) print(g *history.Graph) error {
	out, err := printer.NewBuffered(a.outW)
	if err != nil {
		return err
	}
	if err := g.Print(out); err != nil {
		return err
	}
	return out.Flush()
}

func (a *App) track(g *history.Graph) error {
	nodes, err := g.Track(a.config.Track, history.WithIgnoreMissing(a.config.IgnoreMissing))
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(a.outW, "-------- Tracking %s: --------\n", strings.Join(a.config.Track, ", ")); err != nil {
		return err
	}
	out, err := printer.NewBuffered(a.outW)
	if err != nil {
		return err
	}
	if err := printer.Nodes(out, nodes); err != nil {
		return err
	}
	return out.Flush()
}
