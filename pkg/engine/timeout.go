package engine

import (
	"errors"
	"fmt"
	"time"
)

// RecipeTimeout bounds one recipe evaluation. A recipe that loops
// forever is abandoned, and its sandbox is dropped when the loop ends.
const RecipeTimeout = 5 * time.Second

var (
	ErrRecipeTimeout = errors.New("recipe evaluation timed out")
	ErrSuperseded    = errors.New("recipe evaluation superseded by a newer one")
)

// evalResult carries a finished evaluation back to Evaluate.
type evalResult struct {
	recipe *Recipe
	errors []EvalError
	err    error
}

// await returns the recipe produced by evaluation gen. When the engine
// has started a newer evaluation in the meantime the result is dropped
// with ErrSuperseded, so callers never act on an outdated recipe.
func (e *Engine) await(ch <-chan evalResult, gen uint64) (*Recipe, []EvalError, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if gen != e.currentGeneration() {
			return nil, nil, ErrSuperseded
		}
		return res.recipe, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrRecipeTimeout, e.timeout)
	}
}

func (e *Engine) currentGeneration() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}
