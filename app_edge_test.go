package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/gemforge/pkg/config"
	"github.com/chazu/gemforge/pkg/fault"
)

// ---------------------------------------------------------------------------
// Invalid configs fail in the config stage and write nothing.
// ---------------------------------------------------------------------------

func TestE2EZeroClusterStones(t *testing.T) {
	app := newTestApp(t, nil)
	out := filepath.Join(t.TempDir(), "earring.glb")

	cfg := config.DefaultEarring()
	cfg.ClusterStoneCount = 0
	_, err := app.GenerateEarring(context.Background(), cfg, 1, out)

	var ve *fault.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "cluster_stone_count" {
		t.Errorf("field = %q", ve.Field)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no file may be written for an invalid config")
	}
}

func TestE2ENegativeDimensions(t *testing.T) {
	app := newTestApp(t, nil)
	cfg := config.DefaultRing()
	cfg.InnerDiameterMM = -18
	_, err := app.GenerateRing(context.Background(), cfg, 1, filepath.Join(t.TempDir(), "ring.glb"))
	if fault.StageOf(err) != fault.StageConfig {
		t.Fatalf("expected config stage error, got %v", err)
	}
	if msg := describeError(err); !strings.HasPrefix(msg, "config validation failed") {
		t.Errorf("describeError = %q", msg)
	}
}

func TestE2EStoneTooThinForBevel(t *testing.T) {
	// A stone thinner than its own bevel cannot be realized.
	app := newTestApp(t, nil)
	cfg := config.DefaultEarring()
	cfg.MainStoneWidthMM = 0.5
	_, err := app.GenerateEarring(context.Background(), cfg, 1, filepath.Join(t.TempDir(), "e.glb"))

	var ge *fault.GeometryError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GeometryError, got %v", err)
	}
	if ge.Part != "MainStone" {
		t.Errorf("part = %q, want MainStone", ge.Part)
	}
	if !errors.Is(err, fault.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter in chain: %v", err)
	}
	if msg := describeError(err); !strings.HasPrefix(msg, "geometry failed") {
		t.Errorf("describeError = %q", msg)
	}
}

func TestE2EUnwritableOutput(t *testing.T) {
	app := newTestApp(t, nil)
	out := filepath.Join(t.TempDir(), "no", "such", "dir", "ring.glb")
	_, err := app.GenerateRing(context.Background(), config.DefaultRing(), 1, out)
	if !fault.IsExportKind(err, fault.IOFailure) {
		t.Fatalf("expected IOFailure, got %v", err)
	}
	if msg := describeError(err); !strings.HasPrefix(msg, "export failed") {
		t.Errorf("describeError = %q", msg)
	}
}

func TestE2ESingleClusterStone(t *testing.T) {
	app := newTestApp(t, nil)
	cfg := config.DefaultEarring()
	cfg.ClusterStoneCount = 1
	r, err := app.GenerateEarring(context.Background(), cfg, 1, filepath.Join(t.TempDir(), "e.glb"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Parts != 4 {
		t.Errorf("parts = %d, want 4", r.Parts)
	}
}

func TestE2ECancelledContext(t *testing.T) {
	app := newTestApp(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := app.GenerateRing(ctx, config.DefaultRing(), 1, filepath.Join(t.TempDir(), "ring.glb"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Settings and kernels
// ---------------------------------------------------------------------------

func TestNewAppRejectsUnknownKernel(t *testing.T) {
	f := config.Default()
	f.Settings.Kernel = "manifold"
	if _, err := NewApp(f, nil); fault.StageOf(err) != fault.StageConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestNewAppRejectsZeroWorkers(t *testing.T) {
	f := config.Default()
	f.Settings.BakeWorkers = 0
	if _, err := NewApp(f, nil); err == nil {
		t.Fatal("expected an error for zero workers")
	}
}

// ---------------------------------------------------------------------------
// Recipes
// ---------------------------------------------------------------------------

func TestE2ERecipeSyntaxError(t *testing.T) {
	app := newTestApp(t, nil)
	_, err := app.RunRecipe(context.Background(), "broken.gem", "(earring :add-post", t.TempDir())
	var ve *fault.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "recipe" || ve.Value != "broken.gem" {
		t.Errorf("error = %+v", ve)
	}
}

func TestE2ERecipeWithoutProducts(t *testing.T) {
	app := newTestApp(t, nil)
	_, err := app.RunRecipe(context.Background(), "empty.gem", "(+ 1 2)", t.TempDir())
	if fault.StageOf(err) != fault.StageConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestE2ERecipeStopsAtFirstFailure(t *testing.T) {
	app := newTestApp(t, nil)
	dir := t.TempDir()
	source := `(ring) (ring :band-width 0) (ring)`
	reports, err := app.RunRecipe(context.Background(), "r.gem", source, dir)
	if err == nil {
		t.Fatal("expected an error from the second ring")
	}
	if !strings.Contains(err.Error(), "product 2") {
		t.Errorf("error should name the failing product: %v", err)
	}
	if len(reports) != 1 {
		t.Errorf("expected the first product to complete, got %d reports", len(reports))
	}
	if _, statErr := os.Stat(filepath.Join(dir, "ring-3.glb")); !os.IsNotExist(statErr) {
		t.Error("products after a failure must not be generated")
	}
}
