// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"math"

	"github.com/vigcrack/vigcrack/internal/cipher"
)

// DefaultSamples is the number of position pairs drawn per estimate.
const DefaultSamples = 2048

// Estimator approximates the index of coincidence of one residue class by
// drawing random position pairs.
type Estimator struct {
	Sampler Sampler
	Samples int
	// Map transforms symbols before they are compared. Nil compares as is.
	Map func(byte) byte
}

// Estimate returns the fraction of sampled pairs at positions ≡ offset mod
// stride whose mapped symbols match. It returns NaN when the residue class
// cannot hold two distinct positions.
func (e Estimator) Estimate(text cipher.Text, stride, offset int) float64 {
	if len(text) < 1 || stride < 1 || stride > len(text) {
		return math.NaN()
	}
	if offset < 0 || offset >= stride {
		return math.NaN()
	}
	slots := len(text) / stride
	if slots < 2 {
		return math.NaN()
	}

	samples := e.Samples
	if samples <= 0 {
		samples = DefaultSamples
	}
	mapSymbol := e.Map
	if mapSymbol == nil {
		mapSymbol = identity
	}

	matches := 0
	for i := 0; i < samples; i++ {
		a := e.Sampler.IntN(slots)
		b := e.Sampler.IntN(slots)
		for b == a {
			b = e.Sampler.IntN(slots)
		}
		if mapSymbol(text[a*stride+offset]) == mapSymbol(text[b*stride+offset]) {
			matches++
		}
	}
	return float64(matches) / float64(samples)
}

func identity(b byte) byte {
	return b
}
