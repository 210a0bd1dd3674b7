package deepface

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"

	"github.com/presensia/presensia/internal/domain"
	"github.com/presensia/presensia/internal/provider"
)

const (
	// minFaceArea is the minimum face area (in pixels²) for reliable detection
	minFaceArea = 2500 // 50x50 pixels
	// maxFaceArea is used for quality scaling
	maxFaceArea = 250000 // 500x500 pixels
)

// Provider implements provider.EmbeddingProvider using a DeepFace sidecar
type Provider struct {
	client *Client
}

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

func (p *Provider) Name() string {
	return "deepface"
}

// ExtractDescriptor runs the represent endpoint and returns the embedding
// of the first detected face.
func (p *Provider) ExtractDescriptor(ctx context.Context, image []byte) (*provider.Descriptor, error) {
	imageBase64 := base64.StdEncoding.EncodeToString(image)

	resp, err := p.client.Represent(ctx, imageBase64)
	if err != nil {
		if isClientError(err) {
			return nil, domain.ErrInvalidImage.WithError(err)
		}
		return nil, fmt.Errorf("extract descriptor: %w", err)
	}

	if len(resp.Results) == 0 {
		return nil, domain.ErrNoFaceDetected
	}

	result := resp.Results[0]
	if len(result.Embedding) != domain.EmbeddingDimension {
		return nil, fmt.Errorf("%w: embedding has %d dimensions, want %d",
			ErrInvalidResponse, len(result.Embedding), domain.EmbeddingDimension)
	}

	faceArea := float64(result.FacialArea.W * result.FacialArea.H)

	return &provider.Descriptor{
		Embedding: result.Embedding,
		Quality:   calculateQuality(faceArea),
	}, nil
}

// calculateQuality estimates capture quality from face area. DeepFace
// doesn't return quality, so larger faces score higher.
func calculateQuality(faceArea float64) float64 {
	if faceArea < minFaceArea {
		return 0.4
	}
	normalized := math.Min(1.0, (faceArea-minFaceArea)/(maxFaceArea-minFaceArea))
	return 0.6 + (normalized * 0.35)
}
