package scene

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/quellex/renderscene/internal/engine/gfx"
)

// In-memory implementations of the gfx boundary. A shared event log records
// the order of buffer uploads, pass updates and descriptor updates so tests
// can check sequencing, not just counts.

type eventLog struct {
	events []string
}

func (l *eventLog) add(format string, args ...any) {
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

var errDeviceExhausted = errors.New("device exhausted")

type fakeDevice struct {
	log        *eventLog
	failCreate bool
	buffers    []*fakeBuffer
}

func (d *fakeDevice) CreateBuffer(info gfx.BufferInfo) (gfx.Buffer, error) {
	if d.failCreate {
		return nil, errDeviceExhausted
	}
	b := &fakeBuffer{log: d.log, size: info.Size, data: make([]byte, info.Size)}
	d.buffers = append(d.buffers, b)
	return b, nil
}

type fakeBuffer struct {
	log       *eventLog
	size      uint32
	data      []byte
	updates   int
	destroyed bool
}

func (b *fakeBuffer) Update(data []byte) error {
	if uint32(len(data)) > b.size {
		return fmt.Errorf("update of %d bytes exceeds buffer size %d", len(data), b.size)
	}
	copy(b.data, data)
	b.updates++
	if b.log != nil {
		b.log.add("buffer.update")
	}
	return nil
}

func (b *fakeBuffer) Size() uint32 {
	return b.size
}

func (b *fakeBuffer) Destroy() {
	b.destroyed = true
}

type fakeDescriptorSet struct {
	log      *eventLog
	bindings map[uint32]gfx.Buffer
	updates  int
}

func (ds *fakeDescriptorSet) BindBuffer(binding uint32, buf gfx.Buffer) {
	if ds.bindings == nil {
		ds.bindings = make(map[uint32]gfx.Buffer)
	}
	ds.bindings[binding] = buf
}

func (ds *fakeDescriptorSet) Update() {
	ds.updates++
	if ds.log != nil {
		ds.log.add("descriptor.update")
	}
}

type fakePipelineState struct {
	ds        *fakeDescriptorSet
	destroyed bool
}

func (ps *fakePipelineState) DescriptorSet() gfx.DescriptorSet {
	return ps.ds
}

type fakePass struct {
	log        *eventLog
	failCreate bool
	created    int
	destroyed  int
	updates    int
}

func (p *fakePass) CreatePipelineState() (gfx.PipelineState, error) {
	if p.failCreate {
		return nil, errors.New("shader compile failed")
	}
	p.created++
	return &fakePipelineState{ds: &fakeDescriptorSet{log: p.log}}, nil
}

func (p *fakePass) DestroyPipelineState(ps gfx.PipelineState) {
	p.destroyed++
	ps.(*fakePipelineState).destroyed = true
}

func (p *fakePass) Update() {
	p.updates++
	if p.log != nil {
		p.log.add("pass.update")
	}
}

type fakeMaterial struct {
	id     uint32
	passes []gfx.Pass
}

func (m *fakeMaterial) ID() uint32 {
	return m.id
}

func (m *fakeMaterial) Passes() []gfx.Pass {
	return m.passes
}

// newFakeMaterial creates a material with a single pass sharing the log.
func newFakeMaterial(id uint32, log *eventLog) (*fakeMaterial, *fakePass) {
	pass := &fakePass{log: log}
	return &fakeMaterial{id: id, passes: []gfx.Pass{pass}}, pass
}

// floatsOf reinterprets uploaded buffer bytes as float32s.
func floatsOf(data []byte) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), len(data)/4)
}

// newTestModel creates an initialized model attached to a fresh node.
func newTestModel(d *fakeDevice) (*Model, *Node, error) {
	m := NewModel()
	if err := m.Initialize(d); err != nil {
		return nil, nil, err
	}
	n := NewNode("owner")
	m.AttachNode(n)
	return m, n, nil
}
