// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"gonum.org/v1/gonum/floats"

	"github.com/vigcrack/vigcrack/internal/cipher"
)

// Correlation is the dot product of observed with the reference rotated by r.
func Correlation(observed FrequencyVector, reference Distribution, r int) float64 {
	return floats.Dot(observed[:], reference.Rotate(r))
}

// RecoverShift returns the key shift whose removal best aligns observed with
// reference, together with the winning correlation. Ties keep the earliest
// rotation; an empty vector yields shift 0.
func RecoverShift(observed FrequencyVector, reference Distribution) (cipher.Shift, float64) {
	var (
		shift cipher.Shift
		best  float64
	)
	for r := 0; r < cipher.Size; r++ {
		n := Correlation(observed, reference, r)
		if n > best {
			best = n
			// Rotating the reference forward by r matches a plaintext shifted
			// forward by 26-r.
			shift = cipher.Shift(r).Inverse()
		}
	}
	return shift, best
}

// RecoverKey recovers one shift per column for the given stride and returns
// the winning correlation of each column alongside the key.
func RecoverKey(text cipher.Text, stride int, reference Distribution) (cipher.Key, []float64) {
	key := cipher.NewKey(stride)
	correlations := make([]float64, len(key))
	for col := range key {
		key[col], correlations[col] = RecoverShift(ColumnFrequencies(text, stride, col), reference)
	}
	return key, correlations
}
