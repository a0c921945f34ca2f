package scene

import (
	"fmt"
	"unsafe"

	"github.com/quellex/renderscene/internal/engine/gfx"
	"github.com/quellex/renderscene/pkg/math"
)

// Model binds a scene-graph node's geometry and materials to GPU draw
// resources: the per-model uniform buffer, the bounding volumes and the
// reference-counted pipeline-state cache shared by its sub-models.
//
// A model is owned exclusively by the node that created it and is driven
// once per frame through UpdateTransform and UpdateUBOs. Material binding
// through SetSubModel and SetSubModelMaterial can happen at any time.
type Model struct {
	enabled bool
	node    *Node
	scene   *RenderScene
	id      uint32
	key     string
	// visFlags selects which views/cameras render this model.
	visFlags uint32

	device    gfx.Device
	subModels []*SubModel
	cache     *psoCache

	localBlock  [gfx.LocalBlockFloats]float32
	localBuffer gfx.Buffer

	modelBounds *math.AABB
	worldBounds *math.AABB

	inited bool
}

// NewModel creates an empty, enabled model. Call Initialize before binding
// sub-models.
func NewModel() *Model {
	return &Model{enabled: true}
}

// Initialize allocates the model's GPU uniform buffer on the device.
// Device exhaustion propagates as an error; the model stays uninitialized.
func (m *Model) Initialize(device gfx.Device) error {
	if m.inited {
		return nil
	}
	buf, err := device.CreateBuffer(gfx.BufferInfo{
		Usage:  gfx.BufferUsageUniform,
		Memory: gfx.MemoryUsageHostVisible,
		Size:   gfx.LocalBlockSize,
		Stride: gfx.LocalBlockSize,
	})
	if err != nil {
		return fmt.Errorf("create local uniform buffer: %w", err)
	}
	m.device = device
	m.localBuffer = buf
	m.cache = newPSOCache(buf)
	m.inited = true
	return nil
}

// Destroy releases every sub-model back to the shared pool, tears down all
// pipeline-state cache entries and frees the uniform buffer. Each material's
// pipeline states are destroyed exactly once regardless of how many
// sub-models shared them.
func (m *Model) Destroy() {
	for i, sm := range m.subModels {
		if sm == nil {
			continue
		}
		sm.destroy()
		subModelPool.Free(sm.handle)
		m.subModels[i] = nil
	}
	m.subModels = nil
	if m.cache != nil {
		m.cache.destroyAll()
		m.cache = nil
	}
	if m.localBuffer != nil {
		m.localBuffer.Destroy()
		m.localBuffer = nil
	}
	m.device = nil
	m.inited = false
}

// SetSubModel binds the slot at idx to the given sub-mesh and material,
// creating the slot on first use. Rebinding an occupied slot releases its
// previous material reference first. The material's pipeline-state set is
// compiled at most once per model and shared with other slots using the
// same material.
func (m *Model) SetSubModel(idx int, subMesh *SubMesh, mat gfx.Material) error {
	if !m.inited {
		return gfx.ErrModelNotInitialized
	}
	if idx < 0 {
		return fmt.Errorf("sub-model index %d out of range", idx)
	}
	for len(m.subModels) <= idx {
		m.subModels = append(m.subModels, nil)
	}

	sm := m.subModels[idx]
	fresh := sm == nil
	if fresh {
		h, rec := subModelPool.Alloc()
		rec.handle = h
		sm = rec
	} else {
		old := sm.material
		sm.destroy()
		if err := m.cache.release(old); err != nil {
			return err
		}
	}

	states, err := m.cache.allocate(mat)
	if err != nil {
		// The slot holds no binding; return it to the pool rather than
		// leaving a half-initialized record behind.
		subModelPool.Free(sm.handle)
		m.subModels[idx] = nil
		return err
	}
	sm.initialize(subMesh, mat, states)
	m.subModels[idx] = sm
	return nil
}

// SetSubModelMaterial rebinds the material of an existing slot. Rebinding
// the same material recompiles its pipeline-state set in place (the
// reference count is unaffected); a different material moves one reference
// from the old material to the new one. Indexing a slot never created by
// SetSubModel returns ErrUninitializedSlot.
func (m *Model) SetSubModelMaterial(idx int, mat gfx.Material) error {
	if !m.inited {
		return gfx.ErrModelNotInitialized
	}
	if idx < 0 || idx >= len(m.subModels) || m.subModels[idx] == nil {
		return fmt.Errorf("sub-model %d: %w", idx, gfx.ErrUninitializedSlot)
	}
	sm := m.subModels[idx]

	if sm.material != nil && sm.material.ID() == mat.ID() {
		states, err := m.cache.refresh(mat)
		// Every slot bound to this material held the old, now destroyed
		// state set; all of them must see the outcome, not just idx.
		for _, other := range m.subModels {
			if other == nil || other.material == nil || other.material.ID() != mat.ID() {
				continue
			}
			other.material = mat
			other.states = states
		}
		if err != nil {
			return err
		}
		return nil
	}

	if sm.material != nil {
		if err := m.cache.release(sm.material); err != nil {
			return err
		}
		sm.material = nil
		sm.states = nil
	}
	states, err := m.cache.allocate(mat)
	if err != nil {
		return err
	}
	sm.material = mat
	sm.states = states
	return nil
}

// SetModelBounds establishes the model-local bounding volume from min/max
// corners and initializes the world volume as a copy. A nil corner leaves
// the bounds unset.
func (m *Model) SetModelBounds(min, max *math.Vec3) {
	if min == nil || max == nil {
		return
	}
	local := math.NewAABBFromMinMax(*min, *max)
	world := local
	m.modelBounds = &local
	m.worldBounds = &world
}

// ModelBounds returns the model-local bounding volume, or nil if unset.
func (m *Model) ModelBounds() *math.AABB {
	return m.modelBounds
}

// WorldBounds returns the world-space bounding volume, or nil if unset.
func (m *Model) WorldBounds() *math.AABB {
	return m.worldBounds
}

// UpdateTransform re-derives the world bounding volume from the owning
// node. It does nothing unless the node exists, its transform is flagged
// dirty and a world volume has been established; the flag gate avoids
// redundant transform work for nodes that have not moved.
func (m *Model) UpdateTransform() {
	if m.node == nil || !m.node.TransformDirty() || m.worldBounds == nil {
		return
	}
	m.node.UpdateWorldTransform()
	world := m.modelBounds.Transform(m.node.WorldMatrix())
	*m.worldBounds = world
}

// UpdateUBOs writes the node's world matrix and its inverse-transpose into
// the local uniform block, uploads the block to the GPU buffer, then runs
// the per-pass update and descriptor-set update for every distinct material
// bound to this model. The upload happens first so descriptor data reflects
// the current frame's transform. A model without a node is skipped.
func (m *Model) UpdateUBOs() {
	if m.node == nil || !m.inited {
		return
	}

	world := m.node.WorldMatrix()
	worldIT := world.Inverse().Transpose()

	copy(m.localBlock[gfx.MatWorldOffset:gfx.MatWorldOffset+16], world[:])
	copy(m.localBlock[gfx.MatWorldITOffset:gfx.MatWorldITOffset+16], worldIT[:])

	if err := m.localBuffer.Update(floatBytes(m.localBlock[:])); err != nil {
		// Upload failure leaves last frame's data in place; descriptor
		// updates below still run against valid bindings.
		return
	}

	for _, e := range m.cache.entries {
		for _, pass := range e.material.Passes() {
			pass.Update()
		}
		for _, ps := range e.states {
			ps.DescriptorSet().Update()
		}
	}
}

// SetEnabled toggles whether the renderer draws this model. Bindings and
// reference counts are untouched.
func (m *Model) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// Enabled reports whether the renderer should draw this model.
func (m *Model) Enabled() bool {
	return m.enabled
}

// AttachNode associates the model with its owning node. The model does not
// own the node; it only reads the transform.
func (m *Model) AttachNode(n *Node) {
	m.node = n
}

// Node returns the owning node, or nil if detached.
func (m *Model) Node() *Node {
	return m.node
}

// attachToScene records the scene and requests a model id from it.
func (m *Model) attachToScene(s *RenderScene) {
	m.scene = s
	m.id = s.GenerateModelID()
}

func (m *Model) detachFromScene() {
	m.scene = nil
}

// Scene returns the scene the model is registered in, or nil.
func (m *Model) Scene() *RenderScene {
	return m.scene
}

// ID returns the identifier issued by the scene on attach.
func (m *Model) ID() uint32 {
	return m.id
}

// SetKey sets the user key.
func (m *Model) SetKey(key string) {
	m.key = key
}

// Key returns the user key.
func (m *Model) Key() string {
	return m.key
}

// SetVisFlags sets the view/camera visibility mask.
func (m *Model) SetVisFlags(flags uint32) {
	m.visFlags = flags
}

// VisFlags returns the view/camera visibility mask.
func (m *Model) VisFlags() uint32 {
	return m.visFlags
}

// SubModelCount returns the slot count, including empty slots.
func (m *Model) SubModelCount() int {
	return len(m.subModels)
}

// SubModelAt returns the sub-model at idx, or nil for empty or out-of-range
// slots.
func (m *Model) SubModelAt(idx int) *SubModel {
	if idx < 0 || idx >= len(m.subModels) {
		return nil
	}
	return m.subModels[idx]
}

// Initialized reports whether Initialize has run.
func (m *Model) Initialized() bool {
	return m.inited
}

// floatBytes reinterprets a float32 slice as its raw bytes for buffer
// upload.
func floatBytes(f []float32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&f[0])), len(f)*4)
}
