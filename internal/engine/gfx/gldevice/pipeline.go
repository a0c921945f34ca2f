package gldevice

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/quellex/renderscene/internal/engine/gfx"
)

// localBlockName is the uniform block every pass shader declares for the
// per-model data. The descriptor set wires the block index to the buffer
// binding slot.
const localBlockName = "LocalBlock\x00"

// PipelineState is a linked GL program plus its descriptor bindings.
type PipelineState struct {
	program uint32
	ds      *DescriptorSet
}

func newPipelineState(program uint32) *PipelineState {
	return &PipelineState{
		program: program,
		ds:      &DescriptorSet{program: program},
	}
}

// DescriptorSet returns the state's buffer bindings.
func (ps *PipelineState) DescriptorSet() gfx.DescriptorSet {
	return ps.ds
}

// Program returns the GL program name, for renderers setting plain uniforms.
func (ps *PipelineState) Program() uint32 {
	return ps.program
}

// Bind makes the program current and re-applies the buffer bindings.
func (ps *PipelineState) Bind() {
	gl.UseProgram(ps.program)
	ps.ds.apply()
}

// DescriptorSet maps binding slots to uniform buffers for one program.
type DescriptorSet struct {
	program  uint32
	bindings map[uint32]*Buffer
}

// BindBuffer records the buffer for the given binding slot. The binding
// takes effect on the next Update.
func (ds *DescriptorSet) BindBuffer(binding uint32, buf gfx.Buffer) {
	if ds.bindings == nil {
		ds.bindings = make(map[uint32]*Buffer)
	}
	if glBuf, ok := buf.(*Buffer); ok {
		ds.bindings[binding] = glBuf
	}
}

// Update wires the program's local uniform block to its binding slot and
// binds the recorded buffers. GL uniform-buffer binding points are context
// global, so this runs again from Bind before each draw.
func (ds *DescriptorSet) Update() {
	ds.apply()
}

func (ds *DescriptorSet) apply() {
	for binding, buf := range ds.bindings {
		if idx := gl.GetUniformBlockIndex(ds.program, gl.Str(localBlockName)); idx != gl.INVALID_INDEX {
			gl.UniformBlockBinding(ds.program, idx, binding)
		}
		gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, buf.id)
	}
}
