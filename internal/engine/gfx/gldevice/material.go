package gldevice

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/quellex/renderscene/internal/engine/gfx"
)

var nextMaterialID uint32

// Material is a GL-backed material: an ordered list of passes with a stable
// identity. Identity is assigned at creation and never reused.
type Material struct {
	id     uint32
	name   string
	passes []gfx.Pass
}

// NewMaterial creates a material from its passes.
func NewMaterial(name string, passes ...*Pass) *Material {
	nextMaterialID++
	m := &Material{id: nextMaterialID, name: name}
	for _, p := range passes {
		m.passes = append(m.passes, p)
	}
	return m
}

// ID returns the stable material identity.
func (m *Material) ID() uint32 {
	return m.id
}

// Name returns the material name.
func (m *Material) Name() string {
	return m.name
}

// Passes returns the material's passes in draw order.
func (m *Material) Passes() []gfx.Pass {
	return m.passes
}

// Pass is one GLSL shading pass. Each pipeline state created from it links
// its own program copy, so states can be destroyed independently.
type Pass struct {
	vertexSrc   string
	fragmentSrc string

	// UpdateFunc, when set, is invoked once per frame for time-varying
	// pass parameters.
	UpdateFunc func()
}

// NewPass creates a pass from GLSL sources.
func NewPass(vertexSrc, fragmentSrc string) *Pass {
	return &Pass{vertexSrc: vertexSrc, fragmentSrc: fragmentSrc}
}

// CreatePipelineState compiles and links the pass program. Compilation
// failures are recoverable errors.
func (p *Pass) CreatePipelineState() (gfx.PipelineState, error) {
	program, err := compileProgram(p.vertexSrc, p.fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("compile pass program: %w", err)
	}
	return newPipelineState(program), nil
}

// DestroyPipelineState deletes the program of a state created by this pass.
func (p *Pass) DestroyPipelineState(ps gfx.PipelineState) {
	state, ok := ps.(*PipelineState)
	if !ok {
		return
	}
	if state.program != 0 {
		gl.DeleteProgram(state.program)
		state.program = 0
	}
}

// Update runs the pass's dynamic parameter hook, if any.
func (p *Pass) Update() {
	if p.UpdateFunc != nil {
		p.UpdateFunc()
	}
}
