package scene

import (
	"fmt"

	"github.com/quellex/renderscene/internal/engine/gfx"
)

// psoEntry holds the compiled pipeline states for one material (one state
// per pass) and the number of sub-models currently bound to it.
type psoEntry struct {
	material gfx.Material
	states   []gfx.PipelineState
	refs     int
}

// psoCache maps material identity to its pipeline-state set for one model.
// Pipeline compilation is expensive: the cache guarantees at most one set
// per distinct material per model, no matter how many sub-models share it.
// An entry exists if and only if its reference count is at least one.
type psoCache struct {
	entries     map[uint32]*psoEntry
	localBuffer gfx.Buffer
}

func newPSOCache(localBuffer gfx.Buffer) *psoCache {
	return &psoCache{
		entries:     make(map[uint32]*psoEntry),
		localBuffer: localBuffer,
	}
}

// allocate returns the pipeline-state set for the material, compiling it on
// first use and bumping the reference count on every call.
func (c *psoCache) allocate(mat gfx.Material) ([]gfx.PipelineState, error) {
	if e, ok := c.entries[mat.ID()]; ok {
		e.refs++
		return e.states, nil
	}
	states, err := c.createStates(mat)
	if err != nil {
		return nil, err
	}
	c.entries[mat.ID()] = &psoEntry{material: mat, states: states, refs: 1}
	return states, nil
}

// release drops one reference. When the count reaches zero the pipeline
// states are destroyed through their passes and the entry is removed.
func (c *psoCache) release(mat gfx.Material) error {
	e, ok := c.entries[mat.ID()]
	if !ok {
		return fmt.Errorf("release material %d: %w", mat.ID(), gfx.ErrUnknownMaterial)
	}
	e.refs--
	if e.refs == 0 {
		destroyStates(e.material, e.states)
		delete(c.entries, mat.ID())
	}
	return nil
}

// refresh force-destroys and recompiles the pipeline-state set for a
// material already present, leaving the reference count untouched. Used
// when the material identity is unchanged but its passes were recompiled.
// On recreate failure the entry survives with an empty state set; callers
// must drop any state slices they cached from the previous allocation.
func (c *psoCache) refresh(mat gfx.Material) ([]gfx.PipelineState, error) {
	e, ok := c.entries[mat.ID()]
	if !ok {
		return nil, fmt.Errorf("refresh material %d: %w", mat.ID(), gfx.ErrUnknownMaterial)
	}
	destroyStates(e.material, e.states)
	e.states = nil
	states, err := c.createStates(mat)
	if err != nil {
		return nil, err
	}
	e.material = mat
	e.states = states
	return states, nil
}

// destroyAll tears down every entry regardless of reference count. Used on
// model destruction, where all sub-models go away with the cache.
func (c *psoCache) destroyAll() {
	for id, e := range c.entries {
		destroyStates(e.material, e.states)
		delete(c.entries, id)
	}
}

// entryCount returns the number of live entries, which equals the number of
// distinct materials currently bound to the owning model.
func (c *psoCache) entryCount() int {
	return len(c.entries)
}

// createStates compiles one pipeline state per pass and binds the model's
// local uniform buffer at the fixed block binding.
func (c *psoCache) createStates(mat gfx.Material) ([]gfx.PipelineState, error) {
	passes := mat.Passes()
	states := make([]gfx.PipelineState, 0, len(passes))
	for i, pass := range passes {
		ps, err := pass.CreatePipelineState()
		if err != nil {
			// Roll back the states compiled so far
			destroyStates(mat, states)
			return nil, fmt.Errorf("material %d pass %d: create pipeline state: %w", mat.ID(), i, err)
		}
		ds := ps.DescriptorSet()
		ds.BindBuffer(gfx.LocalBlockBinding, c.localBuffer)
		ds.Update()
		states = append(states, ps)
	}
	return states, nil
}

// destroyStates releases states through the passes that created them.
// states may be shorter than the pass list during creation rollback.
func destroyStates(mat gfx.Material, states []gfx.PipelineState) {
	passes := mat.Passes()
	for i, ps := range states {
		passes[i].DestroyPipelineState(ps)
	}
}
