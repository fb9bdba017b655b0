// Package runner turns a loaded diagram and a set of run options into a
// finished decomposition and its archive record. The CLI and the scenario
// harness both go through Run so that a run means the same thing everywhere.
package runner

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/stabdecomp/internal/config"
	"github.com/roach88/stabdecomp/internal/diagramfile"
	"github.com/roach88/stabdecomp/internal/engine"
	"github.com/roach88/stabdecomp/internal/ir"
	"github.com/roach88/stabdecomp/internal/simplify"
	"github.com/roach88/stabdecomp/internal/zx"
)

// Result is a finished decomposition.
type Result struct {
	// Decomposer is the final state. Its frontier is empty.
	Decomposer *engine.Decomposer
	// Record is ready for store.WriteRun once the caller sets ID and Label.
	Record ir.RunRecord
	// Terms holds the saved terminal diagrams, nil unless opts.Save.
	Terms []ir.DiagramDoc
	// Elapsed is wall time spent decomposing. It is not archived.
	Elapsed time.Duration
}

// OptionsFromConfig converts the decompose section of the config.
func OptionsFromConfig(c config.DecomposeConfig) ir.RunOptions {
	return ir.RunOptions{
		Simplify:      c.Simplify,
		RandomT:       c.RandomT,
		Seed:          int64(c.Seed),
		ParallelDepth: c.ParallelDepth,
		Workers:       c.Workers,
		Save:          c.Save,
		MaxComponent:  c.MaxComponent,
		MaxSteps:      c.MaxSteps,
	}
}

// EngineOptions maps run options onto decomposer options.
func EngineOptions(opts ir.RunOptions) ([]engine.Option, error) {
	var out []engine.Option
	switch opts.Simplify {
	case "full", "":
		out = append(out, engine.WithSimplifier(simplify.Full{MaxComponent: opts.MaxComponent}))
	case "none":
		out = append(out, engine.WithSimplifier(nil))
	default:
		return nil, fmt.Errorf("unknown simplifier %q (want full or none)", opts.Simplify)
	}
	if opts.RandomT {
		out = append(out, engine.WithRandomT(uint64(opts.Seed)))
	}
	if opts.ParallelDepth < 0 {
		return nil, fmt.Errorf("parallel depth must not be negative, got %d", opts.ParallelDepth)
	}
	if opts.MaxSteps < 0 {
		return nil, fmt.Errorf("max steps must not be negative, got %d", opts.MaxSteps)
	}
	out = append(out,
		engine.WithSave(opts.Save),
		engine.WithWorkers(opts.Workers),
		engine.WithMaxSteps(opts.MaxSteps),
	)
	return out, nil
}

// Run decomposes g completely. doc is the document g was loaded from; its
// hash identifies the input in the record. With ParallelDepth > 0 the
// decomposition forks after that many breadth-first levels.
func Run(g *zx.Diagram, doc ir.DiagramDoc, opts ir.RunOptions) (*Result, error) {
	engOpts, err := EngineOptions(opts)
	if err != nil {
		return nil, err
	}
	hash, err := ir.DiagramHash(doc)
	if err != nil {
		return nil, err
	}

	d := engine.New(g, engOpts...)
	bound := d.MaxTerms()
	slog.Debug("decomposition started",
		"diagram", hash[:12],
		"t_count", g.TCount(),
		"max_terms", bound.String(),
		"parallel_depth", opts.ParallelDepth,
	)

	start := time.Now()
	if opts.ParallelDepth > 0 {
		d, err = d.DecompParallel(opts.ParallelDepth)
	} else {
		err = d.DecompAll()
	}
	if err != nil {
		return nil, fmt.Errorf("decompose: %w", err)
	}
	elapsed := time.Since(start)

	res := &Result{
		Decomposer: d,
		Elapsed:    elapsed,
		Record: ir.RunRecord{
			DiagramHash: hash,
			Input:       doc,
			TCount:      g.TCount(),
			MaxTerms:    bound.String(),
			Terms:       d.NumTerms(),
			Incomplete:  d.Incomplete(),
			Scalar:      diagramfile.EncodeScalar(d.Scalar()),
			Options:     opts,
		},
	}
	if opts.Save {
		done := d.Done()
		res.Terms = make([]ir.DiagramDoc, len(done))
		for i, t := range done {
			res.Terms[i] = diagramfile.Encode(t)
		}
	}

	slog.Debug("decomposition finished",
		"diagram", hash[:12],
		"terms", res.Record.Terms,
		"incomplete", res.Record.Incomplete,
		"elapsed", elapsed,
	)
	return res, nil
}
