// SPDX-License-Identifier: Apache-2.0

package analysis

import "github.com/vigcrack/vigcrack/internal/cipher"

// FrequencyVector holds one count per alphabet symbol.
type FrequencyVector [cipher.Size]float64

// Total returns the sum of all counts.
func (v FrequencyVector) Total() float64 {
	var sum float64
	for _, n := range v {
		sum += n
	}
	return sum
}

// ColumnFrequencies counts the alphabet symbols at positions ≡ column mod
// stride. Bytes outside the alphabet are skipped.
func ColumnFrequencies(text cipher.Text, stride, column int) FrequencyVector {
	var out FrequencyVector
	if stride < 1 || column < 0 || column >= stride {
		return out
	}
	for i := column; i < len(text); i += stride {
		idx, ok := cipher.Index(text[i])
		if !ok {
			continue
		}
		out[idx]++
	}
	return out
}
