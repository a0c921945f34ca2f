package gfx

// Pass is one shading pass of a material. It owns the pipeline states it
// creates; callers must destroy each state through the pass that made it.
type Pass interface {
	// CreatePipelineState compiles a pipeline-state object for this pass.
	CreatePipelineState() (PipelineState, error)
	// DestroyPipelineState releases a state previously created by this pass.
	DestroyPipelineState(ps PipelineState)
	// Update refreshes per-pass dynamic parameters (time-varying uniforms
	// and the like). Called once per frame per bound material.
	Update()
}

// Material groups the passes used to draw one sub-mesh. ID is a stable
// identity: two Material values with the same ID are the same material, and
// the scene's pipeline-state cache keys on it.
type Material interface {
	ID() uint32
	Passes() []Pass
}
