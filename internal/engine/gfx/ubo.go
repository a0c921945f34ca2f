package gfx

// Layout of the per-model local uniform block. Offsets are in floats; the
// block is uploaded as one contiguous region every frame and never resized.
const (
	// LocalBlockBinding is the fixed descriptor slot the local block is
	// bound at in every pipeline state.
	LocalBlockBinding uint32 = 0

	// MatWorldOffset is the float offset of the world matrix.
	MatWorldOffset = 0
	// MatWorldITOffset is the float offset of the inverse-transpose of the
	// world matrix.
	MatWorldITOffset = 16

	// LocalBlockFloats is the total float count of the block.
	LocalBlockFloats = 32
	// LocalBlockSize is the total byte size of the block.
	LocalBlockSize uint32 = LocalBlockFloats * 4
)
