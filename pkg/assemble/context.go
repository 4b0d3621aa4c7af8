// Package assemble builds the part hierarchy of each product from a
// config: it creates materials, places primitives with the layout
// engine, queues modifiers and finalizes the scene. Baking and export
// happen afterwards, on the finalized graph.
package assemble

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chazu/gemforge/pkg/layout"
	"github.com/chazu/gemforge/pkg/material"
	"github.com/chazu/gemforge/pkg/scene"
)

// Context is the state of one generation run. It owns the material
// registry and the scene so that nothing leaks between runs.
type Context struct {
	RunID     uuid.UUID
	Seed      int64
	Materials *material.Registry
	Scene     *scene.Graph
	Rand      layout.Rand
	Log       *zap.Logger
}

// NewContext returns a context seeded with seed. A nil log is replaced
// by a no-op logger.
func NewContext(seed int64, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Context{
		Materials: material.NewRegistry(),
		Scene:     scene.New(),
		Log:       log,
	}
	c.Reset(seed)
	return c
}

// Reset clears the registry and scene, reseeds the generator and
// assigns a fresh run id.
func (c *Context) Reset(seed int64) {
	c.RunID = uuid.New()
	c.Seed = seed
	c.Materials.Reset()
	c.Scene.Reset()
	c.Rand = layout.NewRand(seed)
	c.Log.Debug("run reset", zap.String("run_id", c.RunID.String()), zap.Int64("seed", seed))
}
