package mock

import (
	"context"
	"crypto/sha256"
	"math"

	"github.com/presensia/presensia/internal/domain"
	"github.com/presensia/presensia/internal/provider"
)

// minImageSize filters obviously undecodable payloads.
const minImageSize = 1000

// Provider implements provider.EmbeddingProvider for tests and
// development. Embeddings are deterministic per image so the same photo
// always produces the same vector.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return "mock"
}

func (p *Provider) ExtractDescriptor(ctx context.Context, image []byte) (*provider.Descriptor, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidImage
	}
	if len(image) < minImageSize {
		return nil, domain.ErrNoFaceDetected
	}

	return &provider.Descriptor{
		Embedding: generateEmbedding(image),
		Quality:   0.95,
	}, nil
}

// generateEmbedding derives a unit-norm vector from the image hash.
func generateEmbedding(image []byte) []float64 {
	hash := sha256.Sum256(image)
	embedding := make([]float64, domain.EmbeddingDimension)
	hashLen := len(hash)

	for i := 0; i < domain.EmbeddingDimension; i++ {
		idx := i % hashLen
		embedding[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	for i := range embedding {
		embedding[i] /= norm
	}

	return embedding
}
