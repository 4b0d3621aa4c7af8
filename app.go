package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chazu/gemforge/pkg/assemble"
	"github.com/chazu/gemforge/pkg/config"
	"github.com/chazu/gemforge/pkg/engine"
	"github.com/chazu/gemforge/pkg/export"
	"github.com/chazu/gemforge/pkg/fault"
	"github.com/chazu/gemforge/pkg/kernel"
	"github.com/chazu/gemforge/pkg/kernel/native"
	"github.com/chazu/gemforge/pkg/kernel/sdfx"
	"github.com/chazu/gemforge/pkg/scene"
	"github.com/chazu/gemforge/pkg/tessellate"
)

// App runs generation pipelines: assemble, bake, export.
type App struct {
	file   config.File
	engine *engine.Engine
	kernel kernel.Kernel
	log    *zap.Logger
}

// Report summarizes one finished run.
type Report struct {
	Product   string
	RunID     string
	Seed      int64
	Kernel    string
	Path      string
	Parts     int
	Triangles int
	Materials int
	Digest    string
	Elapsed   time.Duration
}

// NewApp creates an App from a loaded config. The kernel is chosen by
// file.Settings.Kernel.
func NewApp(file config.File, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := file.Settings.Validate(); err != nil {
		return nil, err
	}
	k, err := newKernel(file.Settings)
	if err != nil {
		return nil, err
	}
	return &App{
		file:   file,
		engine: engine.NewEngine(file),
		kernel: k,
		log:    log,
	}, nil
}

func newKernel(s config.Settings) (kernel.Kernel, error) {
	switch strings.ToLower(s.Kernel) {
	case config.KernelNative, "":
		return native.New(), nil
	case config.KernelSDFX:
		return sdfx.New(s.SDFXCells), nil
	}
	return nil, fault.Invalid("kernel", s.Kernel, "expected native or sdfx")
}

// Config returns the configuration the App was built with.
func (a *App) Config() config.File { return a.file }

// DefaultOutput returns the output file name for a product in the
// configured format.
func (a *App) DefaultOutput(product string) string {
	return product + "." + strings.ToLower(a.file.Settings.Format)
}

// GenerateEarring builds, bakes and exports an earring to out.
func (a *App) GenerateEarring(ctx context.Context, cfg config.EarringConfig, seed int64, out string) (Report, error) {
	return a.generate(ctx, "earring", seed, out, func(gc *assemble.Context) (scene.Predicate, error) {
		if _, err := assemble.BuildEarring(gc, cfg); err != nil {
			return nil, err
		}
		return assemble.EarringSelection(assemble.MainStoneName), nil
	})
}

// GenerateRing builds, bakes and exports a ring to out.
func (a *App) GenerateRing(ctx context.Context, cfg config.RingConfig, seed int64, out string) (Report, error) {
	return a.generate(ctx, "ring", seed, out, func(gc *assemble.Context) (scene.Predicate, error) {
		if _, err := assemble.BuildRing(gc, cfg); err != nil {
			return nil, err
		}
		return assemble.RingSelection(), nil
	})
}

func (a *App) generate(ctx context.Context, product string, seed int64, out string, build func(*assemble.Context) (scene.Predicate, error)) (Report, error) {
	start := time.Now()
	gc := assemble.NewContext(seed, a.log.Named(product))
	log := a.log.With(zap.String("product", product), zap.String("run_id", gc.RunID.String()))

	pred, err := build(gc)
	if err != nil {
		return Report{}, err
	}
	g := gc.Scene
	sel := g.Select(pred)

	if err := tessellate.BakeAll(ctx, a.kernel, g, sel, a.file.Settings.BakeWorkers); err != nil {
		return Report{}, err
	}
	log.Debug("baked", zap.Int("parts", len(sel)), zap.String("kernel", a.kernel.Name()))

	opts := export.Options{
		Format:    a.file.Settings.Format,
		Generator: "gemforge " + version,
		RunID:     gc.RunID.String(),
	}
	if err := export.Export(g, pred, out, opts); err != nil {
		return Report{}, err
	}

	r := Report{
		Product:   product,
		RunID:     gc.RunID.String(),
		Seed:      seed,
		Kernel:    a.kernel.Name(),
		Path:      out,
		Parts:     len(sel),
		Materials: gc.Materials.Len(),
		Digest:    g.Digest(),
		Elapsed:   time.Since(start),
	}
	for _, p := range sel {
		r.Triangles += p.Mesh.TriangleCount()
	}
	log.Info("exported",
		zap.String("path", out),
		zap.Int("parts", r.Parts),
		zap.Int("triangles", r.Triangles),
		zap.Duration("elapsed", r.Elapsed),
	)
	return r, nil
}

// RunRecipe evaluates recipe source and generates every product it
// declares, in order. Products without an output path are written to
// dir as <kind>-<n>.<format>; relative output paths resolve against dir.
func (a *App) RunRecipe(ctx context.Context, name, source, dir string) ([]Report, error) {
	recipe, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", name, err)
	}
	if len(evalErrs) > 0 {
		errs := make([]error, len(evalErrs))
		for i, e := range evalErrs {
			errs[i] = e
		}
		return nil, fault.Invalid("recipe", name, errors.Join(errs...).Error())
	}
	if len(recipe.Products) == 0 {
		return nil, fault.Invalid("recipe", name, "declares no earring or ring")
	}

	reports := make([]Report, 0, len(recipe.Products))
	for i, p := range recipe.Products {
		out := p.Out
		if out == "" {
			out = fmt.Sprintf("%s-%d.%s", p.Kind, i+1, strings.ToLower(a.file.Settings.Format))
		}
		if !filepath.IsAbs(out) {
			out = filepath.Join(dir, out)
		}

		var (
			r   Report
			err error
		)
		switch p.Kind {
		case engine.ProductEarring:
			r, err = a.GenerateEarring(ctx, p.Earring, recipe.Seed, out)
		case engine.ProductRing:
			r, err = a.GenerateRing(ctx, p.Ring, recipe.Seed, out)
		}
		if err != nil {
			return reports, fmt.Errorf("recipe %s: product %d (%s): %w", name, i+1, p.Kind, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
