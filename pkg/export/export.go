// Package export writes the selected, baked parts of a scene to disk.
//
// Writes are all-or-nothing: the encoder fills a pending file in the
// target directory, which is synced and renamed over the destination
// only when encoding succeeded.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/chazu/gemforge/pkg/fault"
	"github.com/chazu/gemforge/pkg/scene"
)

// DefaultGenerator is written to the asset generator field.
const DefaultGenerator = "gemforge"

// Options control an export.
type Options struct {
	Format    string // "glb" (default) or "stl"
	Generator string
	RunID     string
}

// Selection is the set of parts being exported, in scene order.
type Selection struct {
	Graph *scene.Graph
	Parts []*scene.Part
}

// Contains reports whether p is selected.
func (s Selection) Contains(p *scene.Part) bool {
	for _, q := range s.Parts {
		if q == p {
			return true
		}
	}
	return false
}

// Encoder serializes a selection into f, the pending output file.
// Encoders must not close f. An encoder whose sink only accepts a path
// may write to f.Name() instead.
type Encoder interface {
	Format() string
	Encode(f *os.File, sel Selection, opts Options) error
}

// EncoderFor returns the encoder for a format name. The empty name
// selects GLB.
func EncoderFor(format string) (Encoder, error) {
	switch strings.ToLower(format) {
	case "", "glb":
		return GLB{}, nil
	case "stl":
		return STL{}, nil
	}
	return nil, &fault.ExportError{Kind: fault.Unsupported, Err: fmt.Errorf("format %q", format)}
}

// Export writes the parts of g matching pred to path. It fails with a
// NoSelection error when nothing matches, NotBaked when a selected part
// has no mesh, and IOFailure when the file cannot be written; in every
// failure case path is left untouched.
func Export(g *scene.Graph, pred scene.Predicate, path string, opts Options) error {
	enc, err := EncoderFor(opts.Format)
	if err != nil {
		return err
	}
	sel := Selection{Graph: g, Parts: g.Select(pred)}
	if len(sel.Parts) == 0 {
		return &fault.ExportError{Kind: fault.NoSelection, Path: path}
	}
	for _, p := range sel.Parts {
		if !p.Baked || p.Mesh == nil {
			return &fault.ExportError{Kind: fault.NotBaked, Path: path, Part: p.Name}
		}
	}
	if opts.Generator == "" {
		opts.Generator = DefaultGenerator
	}
	return writeAtomic(path, func(f *os.File) error {
		return enc.Encode(f, sel, opts)
	})
}

// writeAtomic runs write against a pending sibling of path and moves
// it into place only when write succeeds. The pending file is removed on
// any failure.
func writeAtomic(path string, write func(f *os.File) error) error {
	fail := func(err error) error {
		return &fault.ExportError{Kind: fault.IOFailure, Path: path, Err: err}
	}

	pf, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(0o644),
	)
	if err != nil {
		return fail(err)
	}
	defer pf.Cleanup()

	if err := write(pf.File); err != nil {
		return fail(err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fail(err)
	}
	return nil
}
