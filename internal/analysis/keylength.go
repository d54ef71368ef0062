// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"context"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/vigcrack/vigcrack/internal/cipher"
)

// DefaultThreshold is the normalized IOC above which the scan stops early.
const DefaultThreshold = 1.6

// scoreFloor is below any real score, so the first evaluable stride wins.
const scoreFloor = -1.0

// StrideScore is the normalized IOC of one candidate stride.
type StrideScore struct {
	Stride int     `json:"stride"`
	Score  float64 `json:"score"`
}

// KeyLength is the outcome of a stride scan.
type KeyLength struct {
	Stride  int
	Score   float64
	Scanned []StrideScore
}

// Selector scans candidate strides and picks the most likely key length.
type Selector struct {
	Estimator Estimator
	Threshold float64
	// MaxStride caps the scan; zero scans every stride below len/2.
	MaxStride int
}

// Select scans strides 1, 2, ... and returns the best one. The scan stops as
// soon as a new best exceeds the threshold. With no usable signal it returns
// stride 1. The only error is a cancelled context.
func (s Selector) Select(ctx context.Context, text cipher.Text) (KeyLength, error) {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	limit := len(text) / 2
	if s.MaxStride > 0 && s.MaxStride+1 < limit {
		limit = s.MaxStride + 1
	}

	best := KeyLength{Stride: 1, Score: scoreFloor}
	for stride := 1; stride < limit; stride++ {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		score := s.Score(text, stride)
		best.Scanned = append(best.Scanned, StrideScore{Stride: stride, Score: score})

		if score > best.Score {
			best.Stride = stride
			best.Score = score
			if score > threshold {
				break
			}
		}
	}
	return best, nil
}

// Score returns the mean residue-class IOC for stride, scaled by the alphabet
// size so that random text scores about 1.0. NaN marks a stride the text is
// too short to evaluate.
func (s Selector) Score(text cipher.Text, stride int) float64 {
	if stride < 1 {
		return math.NaN()
	}
	estimates := make([]float64, stride)
	for offset := range estimates {
		estimates[offset] = s.Estimator.Estimate(text, stride, offset)
	}
	mean, err := stats.Mean(estimates)
	if err != nil {
		return math.NaN()
	}
	return mean * cipher.Size
}
