// Package scene provides the renderable scene graph: nodes, models,
// sub-models and the per-model pipeline-state cache.
package scene

import (
	"github.com/quellex/renderscene/pkg/math"
)

// Node is a transform in the scene graph. Models hold a weak back-reference
// to the node that owns them and read its world transform during the
// per-frame update pass.
type Node struct {
	name   string
	parent *Node

	position math.Vec3
	rotation math.Quat
	scale    math.Vec3

	worldMatrix   math.Mat4
	worldPosition math.Vec3
	worldRotation math.Quat
	worldScale    math.Vec3

	transformDirty bool
}

// NewNode creates a node at the origin with identity rotation and unit scale.
func NewNode(name string) *Node {
	return &Node{
		name:          name,
		rotation:      math.QuatIdentity(),
		scale:         math.Vec3{X: 1, Y: 1, Z: 1},
		worldMatrix:   math.Identity(),
		worldRotation: math.QuatIdentity(),
		worldScale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Name returns the node name.
func (n *Node) Name() string {
	return n.name
}

// SetParent reparents the node and marks its transform dirty.
func (n *Node) SetParent(parent *Node) {
	n.parent = parent
	n.transformDirty = true
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// SetPosition sets the local position and marks the transform dirty.
func (n *Node) SetPosition(p math.Vec3) {
	n.position = p
	n.transformDirty = true
}

// Position returns the local position.
func (n *Node) Position() math.Vec3 {
	return n.position
}

// SetRotation sets the local rotation and marks the transform dirty.
func (n *Node) SetRotation(q math.Quat) {
	n.rotation = q
	n.transformDirty = true
}

// Rotation returns the local rotation.
func (n *Node) Rotation() math.Quat {
	return n.rotation
}

// SetScale sets the local scale and marks the transform dirty.
func (n *Node) SetScale(s math.Vec3) {
	n.scale = s
	n.transformDirty = true
}

// Scale returns the local scale.
func (n *Node) Scale() math.Vec3 {
	return n.scale
}

// TransformDirty reports whether the node moved since the last
// UpdateWorldTransform.
func (n *Node) TransformDirty() bool {
	return n.transformDirty
}

// WorldMatrix returns the cached world matrix. Call UpdateWorldTransform
// first if the transform is dirty.
func (n *Node) WorldMatrix() math.Mat4 {
	return n.worldMatrix
}

// WorldPosition returns the cached world-space position.
func (n *Node) WorldPosition() math.Vec3 {
	return n.worldPosition
}

// WorldRotation returns the cached world-space rotation.
func (n *Node) WorldRotation() math.Quat {
	return n.worldRotation
}

// WorldScale returns the cached world-space scale.
func (n *Node) WorldScale() math.Vec3 {
	return n.worldScale
}

// UpdateWorldTransform recomputes the full world transform from the parent
// chain and clears the dirty flag. Parents are brought up to date first.
func (n *Node) UpdateWorldTransform() {
	if n.parent != nil {
		if n.parent.transformDirty {
			n.parent.UpdateWorldTransform()
		}
		n.worldRotation = n.parent.worldRotation.Mul(n.rotation)
		n.worldScale = math.Vec3{
			X: n.parent.worldScale.X * n.scale.X,
			Y: n.parent.worldScale.Y * n.scale.Y,
			Z: n.parent.worldScale.Z * n.scale.Z,
		}
		n.worldPosition = n.parent.worldMatrix.TransformVec3(n.position)
	} else {
		n.worldRotation = n.rotation
		n.worldScale = n.scale
		n.worldPosition = n.position
	}
	n.worldMatrix = math.Compose(n.worldPosition, n.worldRotation, n.worldScale)
	n.transformDirty = false
}
