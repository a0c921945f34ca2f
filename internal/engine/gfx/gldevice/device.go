// Package gldevice implements the gfx boundary on OpenGL 4.1 core.
// It must run on the thread owning the GL context.
package gldevice

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/quellex/renderscene/internal/engine/gfx"
)

// Device creates OpenGL-backed buffers.
type Device struct{}

// New creates a device. The GL context must already be current.
func New() *Device {
	return &Device{}
}

// CreateBuffer allocates a buffer object of info.Size bytes.
func (d *Device) CreateBuffer(info gfx.BufferInfo) (gfx.Buffer, error) {
	var id uint32
	gl.GenBuffers(1, &id)

	target := glTarget(info.Usage)
	gl.BindBuffer(target, id)
	gl.BufferData(target, int(info.Size), nil, glUsage(info.Memory))
	gl.BindBuffer(target, 0)

	if errCode := gl.GetError(); errCode == gl.OUT_OF_MEMORY {
		gl.DeleteBuffers(1, &id)
		return nil, fmt.Errorf("buffer allocation of %d bytes: GL out of memory", info.Size)
	}

	return &Buffer{id: id, target: target, size: info.Size}, nil
}

func glTarget(usage gfx.BufferUsage) uint32 {
	switch usage {
	case gfx.BufferUsageVertex:
		return gl.ARRAY_BUFFER
	case gfx.BufferUsageIndex:
		return gl.ELEMENT_ARRAY_BUFFER
	default:
		return gl.UNIFORM_BUFFER
	}
}

func glUsage(mem gfx.MemoryUsage) uint32 {
	if mem == gfx.MemoryUsageDevice {
		return gl.STATIC_DRAW
	}
	return gl.DYNAMIC_DRAW
}

// Buffer is an OpenGL buffer object.
type Buffer struct {
	id     uint32
	target uint32
	size   uint32
}

// Update re-uploads the buffer contents with glBufferSubData.
func (b *Buffer) Update(data []byte) error {
	if uint32(len(data)) > b.size {
		return fmt.Errorf("update of %d bytes exceeds buffer size %d", len(data), b.size)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(b.target, b.id)
	gl.BufferSubData(b.target, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(b.target, 0)
	return nil
}

// Size returns the allocated byte size.
func (b *Buffer) Size() uint32 {
	return b.size
}

// Destroy deletes the buffer object.
func (b *Buffer) Destroy() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// Handle returns the GL buffer name, for renderers that bind the buffer
// directly (vertex attribute setup and the like).
func (b *Buffer) Handle() uint32 {
	return b.id
}
