package gfx

import "errors"

var (
	// ErrUnknownMaterial is returned when releasing or refreshing a material
	// that was never allocated in the pipeline-state cache.
	ErrUnknownMaterial = errors.New("gfx: unknown material reference")

	// ErrUninitializedSlot is returned when rebinding a material on a
	// sub-model index that was never set.
	ErrUninitializedSlot = errors.New("gfx: uninitialized sub-model slot")

	// ErrModelNotInitialized is returned when a model operation needs the
	// GPU uniform buffer before Initialize has run.
	ErrModelNotInitialized = errors.New("gfx: model not initialized")
)
