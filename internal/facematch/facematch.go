package facematch

import (
	"fmt"
	"math"

	"github.com/presensia/presensia/internal/domain"
)

// Policy selects how a computed similarity is turned into a verdict.
type Policy string

const (
	// PolicyStrict enforces the configured confidence threshold.
	PolicyStrict Policy = "strict"
	// PolicyAlwaysAccept computes distance and confidence for display
	// only and forces a match. Demo mode, never for production.
	PolicyAlwaysAccept Policy = "always_accept"
)

// DefaultMinConfidence is the product tuning for the strict policy.
// Deliberately permissive: the location check is the primary gate and
// the face check filters only gross mismatches.
const DefaultMinConfidence = 0.06

// MatchResult carries the verdict plus the diagnostics callers render
// as a trust indicator.
type MatchResult struct {
	IsMatch    bool    `json:"is_match"`
	Distance   float64 `json:"distance"`
	Confidence float64 `json:"confidence"`
}

// VectorDistance returns the Euclidean distance between two equal-length
// embedding vectors.
func VectorDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, domain.ErrVectorDimensionMismatch.WithError(
			fmt.Errorf("got %d and %d", len(a), len(b)))
	}

	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum), nil
}

// EvaluateMatch compares a candidate embedding against a stored
// reference. Confidence is 1-distance clamped at zero, so identical
// vectors score 1 and anything past unit distance scores 0.
func EvaluateMatch(candidate, reference []float64, policy Policy, minConfidence float64) (MatchResult, error) {
	distance, err := VectorDistance(candidate, reference)
	if err != nil {
		return MatchResult{}, err
	}

	confidence := math.Max(0, 1-distance)

	isMatch := confidence >= minConfidence
	if policy == PolicyAlwaysAccept {
		isMatch = true
	}

	return MatchResult{
		IsMatch:    isMatch,
		Distance:   distance,
		Confidence: confidence,
	}, nil
}

// AverageDescriptor fuses multiple captured samples into one reference
// vector by element-wise mean. All inputs must share one dimension.
func AverageDescriptor(vectors [][]float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, domain.ErrNoSamples
	}

	dim := len(vectors[0])
	avg := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, domain.ErrVectorDimensionMismatch.WithError(
				fmt.Errorf("got %d and %d", dim, len(v)))
		}
		for i, x := range v {
			avg[i] += x
		}
	}

	n := float64(len(vectors))
	for i := range avg {
		avg[i] /= n
	}
	return avg, nil
}
