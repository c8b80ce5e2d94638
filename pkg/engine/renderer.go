package engine

import "image"

// Presenter is the output sink for finished frames
type Presenter interface {
	// Present shows or stores a completed frame
	Present(frame *image.RGBA) error

	// UpdateResolution is called when the output surface changes size
	UpdateResolution(width, height int)

	// Close releases resources
	Close()
}
