// SPDX-License-Identifier: Apache-2.0

package analysis

import "github.com/vigcrack/vigcrack/internal/cipher"

// Distribution maps alphabet index to relative frequency.
type Distribution [cipher.Size]float64

// English letter frequencies.
var English = Distribution{
	0.082,   // A
	0.015,   // B
	0.028,   // C
	0.043,   // D
	0.127,   // E
	0.022,   // F
	0.020,   // G
	0.061,   // H
	0.070,   // I
	0.0015,  // J
	0.0077,  // K
	0.040,   // L
	0.024,   // M
	0.067,   // N
	0.075,   // O
	0.019,   // P
	0.0095,  // Q
	0.060,   // R
	0.063,   // S
	0.091,   // T
	0.028,   // U
	0.0098,  // V
	0.024,   // W
	0.0015,  // X
	0.020,   // Y
	0.00074, // Z
}

// Rotate returns d shifted left by r positions: out[i] = d[(i+r) mod 26].
func (d Distribution) Rotate(r int) []float64 {
	out := make([]float64, cipher.Size)
	for i := range out {
		out[i] = d[((i+r)%cipher.Size+cipher.Size)%cipher.Size]
	}
	return out
}

// Sum returns the total mass of the distribution.
func (d Distribution) Sum() float64 {
	var sum float64
	for _, p := range d {
		sum += p
	}
	return sum
}
