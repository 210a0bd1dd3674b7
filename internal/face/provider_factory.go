package face

import (
	"fmt"

	"github.com/presensia/presensia/internal/config"
	"github.com/presensia/presensia/internal/provider"
	"github.com/presensia/presensia/internal/provider/deepface"
	"github.com/presensia/presensia/internal/provider/mock"
)

// ProviderType defines supported embedding provider types
type ProviderType string

const (
	// ProviderTypeDeepFace is the DeepFace sidecar provider
	ProviderTypeDeepFace ProviderType = "deepface"
	// ProviderTypeMock is the deterministic in-process provider for dev/test
	ProviderTypeMock ProviderType = "mock"
)

// NewEmbeddingProvider creates an EmbeddingProvider based on configuration.
//
// Environment variables:
//   - PROVIDER_TYPE: "deepface" or "mock" (default: "deepface")
//   - DEEPFACE_URL: DeepFace API URL (default: "http://localhost:5005")
func NewEmbeddingProvider(cfg *config.Config) (provider.EmbeddingProvider, error) {
	switch ProviderType(cfg.ProviderType) {
	case ProviderTypeMock:
		return mock.New(), nil

	case ProviderTypeDeepFace, "":
		return createDeepFaceProvider(cfg), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			cfg.ProviderType, ProviderTypeDeepFace, ProviderTypeMock)
	}
}

func createDeepFaceProvider(cfg *config.Config) provider.EmbeddingProvider {
	deepfaceConfig := deepface.DefaultConfig()
	if cfg.DeepFaceURL != "" {
		deepfaceConfig.BaseURL = cfg.DeepFaceURL
	}

	return deepface.NewProvider(deepfaceConfig)
}
