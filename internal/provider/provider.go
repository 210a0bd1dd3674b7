package provider

import "context"

// Descriptor is the embedding extracted from one face image, plus the
// provider's estimate of capture quality.
type Descriptor struct {
	Embedding []float64 `json:"embedding"`
	Quality   float64   `json:"quality"`
}

// EmbeddingProvider maps a face image to a fixed-length numeric vector.
// Implementations return domain.ErrNoFaceDetected when the image holds
// no usable face and domain.ErrInvalidImage for undecodable input.
type EmbeddingProvider interface {
	ExtractDescriptor(ctx context.Context, image []byte) (*Descriptor, error)

	// Name identifies the implementation in logs and audit entries.
	Name() string
}
