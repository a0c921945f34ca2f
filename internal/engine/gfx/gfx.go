// Package gfx defines the boundary between the scene core and the graphics
// device: buffers, pipeline states, descriptor sets and materials. The scene
// package only talks to these interfaces; internal/engine/gfx/gldevice
// implements them on OpenGL, and tests implement them in memory.
package gfx

// BufferUsage describes what a buffer is bound as.
type BufferUsage int

const (
	// BufferUsageUniform marks a buffer read by shaders as a uniform block.
	BufferUsageUniform BufferUsage = iota
	// BufferUsageVertex marks a vertex buffer.
	BufferUsageVertex
	// BufferUsageIndex marks an index buffer.
	BufferUsageIndex
)

// MemoryUsage describes where buffer memory lives.
type MemoryUsage int

const (
	// MemoryUsageHostVisible is CPU-writable memory, re-uploaded per frame.
	MemoryUsageHostVisible MemoryUsage = iota
	// MemoryUsageDevice is device-local memory, written once.
	MemoryUsageDevice
)

// BufferInfo describes a buffer allocation.
type BufferInfo struct {
	Usage  BufferUsage
	Memory MemoryUsage
	Size   uint32
	Stride uint32
}

// Device creates GPU resources. Creation can fail for valid reasons
// (driver limits, exhausted memory) and callers must propagate the error.
type Device interface {
	// CreateBuffer allocates a buffer of info.Size bytes.
	CreateBuffer(info BufferInfo) (Buffer, error)
}

// Buffer is a GPU buffer with exclusive CPU-side ownership.
type Buffer interface {
	// Update replaces the buffer contents with data, which must not exceed
	// the allocated size. Uploads are fire-and-forget; synchronization is
	// the device's responsibility.
	Update(data []byte) error
	// Size returns the allocated byte size.
	Size() uint32
	// Destroy releases the GPU allocation. The buffer must not be used
	// afterwards.
	Destroy()
}

// DescriptorSet binds buffers to shader-visible slots for one pipeline state.
type DescriptorSet interface {
	// BindBuffer associates buf with the given binding slot. The binding
	// takes effect on the next Update.
	BindBuffer(binding uint32, buf Buffer)
	// Update flushes pending bindings to the device.
	Update()
}

// PipelineState is a compiled pipeline-state object for one material pass.
type PipelineState interface {
	// DescriptorSet returns the set holding this pipeline's buffer bindings.
	DescriptorSet() DescriptorSet
}
