package scene

import (
	"github.com/quellex/renderscene/internal/engine/gfx"
	"github.com/quellex/renderscene/pkg/pool"
)

// subModelPoolCapacity is the pre-sized capacity of the shared sub-model
// arena. The pool grows past it if a scene needs more.
const subModelPoolCapacity = 32

// subModelPool recycles SubModel records across all models. Single-threaded
// like the rest of the update pass.
var subModelPool = pool.New[SubModel](subModelPoolCapacity)

// SubMesh is the geometry descriptor for one sub-draw: the buffers a
// renderer needs to issue the draw call. The scene core treats it as opaque.
type SubMesh struct {
	Vertices   gfx.Buffer
	Indices    gfx.Buffer
	IndexCount uint32
}

// SubModel is one indexed renderable unit within a model: a sub-mesh paired
// with a material and that material's cached pipeline states. SubModels are
// pooled; they are valid only between initialize and destroy.
type SubModel struct {
	subMesh  *SubMesh
	material gfx.Material
	states   []gfx.PipelineState
	handle   pool.Handle
}

func (sm *SubModel) initialize(subMesh *SubMesh, mat gfx.Material, states []gfx.PipelineState) {
	sm.subMesh = subMesh
	sm.material = mat
	sm.states = states
}

// destroy drops the material reference and geometry binding. The cached
// pipeline states are owned by the model's cache, not released here.
func (sm *SubModel) destroy() {
	sm.subMesh = nil
	sm.material = nil
	sm.states = nil
}

// SubMesh returns the bound geometry descriptor.
func (sm *SubModel) SubMesh() *SubMesh {
	return sm.subMesh
}

// Material returns the bound material.
func (sm *SubModel) Material() gfx.Material {
	return sm.material
}

// PipelineStates returns the cached pipeline-state set for the bound
// material, one state per material pass.
func (sm *SubModel) PipelineStates() []gfx.PipelineState {
	return sm.states
}
