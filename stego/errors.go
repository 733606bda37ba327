package stego

import "errors"

// Error kinds raised by the codec. Callers match them with errors.Is.
var (
	// ErrInvalidParameter reports a bits-per-pixel or channel value
	// outside the supported range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrCapacityExceeded reports a payload that does not fit the cover
	// image. It is raised before any pixel is touched.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrCorruptedPayload reports a stego image whose header declares
	// more payload bits than the image holds.
	ErrCorruptedPayload = errors.New("corrupted payload")
)
