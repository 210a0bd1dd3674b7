package mock

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/presensia/internal/domain"
)

func TestExtractDescriptor(t *testing.T) {
	p := New()
	ctx := context.Background()

	t.Run("deterministic per image", func(t *testing.T) {
		image := bytes.Repeat([]byte{7}, 5000)

		first, err := p.ExtractDescriptor(ctx, image)
		require.NoError(t, err)
		second, err := p.ExtractDescriptor(ctx, image)
		require.NoError(t, err)

		assert.Equal(t, first.Embedding, second.Embedding)
		assert.Len(t, first.Embedding, domain.EmbeddingDimension)
	})

	t.Run("unit norm", func(t *testing.T) {
		d, err := p.ExtractDescriptor(ctx, bytes.Repeat([]byte{42}, 5000))
		require.NoError(t, err)

		var norm float64
		for _, v := range d.Embedding {
			norm += v * v
		}
		assert.InDelta(t, 1.0, norm, 1e-9)
	})

	t.Run("tiny payload has no face", func(t *testing.T) {
		_, err := p.ExtractDescriptor(ctx, []byte("too small"))
		var appErr *domain.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, domain.ErrNoFaceDetected.Code, appErr.Code)
	})

	t.Run("empty payload invalid", func(t *testing.T) {
		_, err := p.ExtractDescriptor(ctx, nil)
		var appErr *domain.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, domain.ErrInvalidImage.Code, appErr.Code)
	})
}
