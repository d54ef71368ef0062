// SPDX-License-Identifier: Apache-2.0

// Package cipher holds the A–Z alphabet, text normalization, keys and the
// Vigenère codec.
package cipher

// Alphabet is the ordered symbol set every component indexes into.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Size is the number of symbols in Alphabet. It is untyped so it mixes with
// both integer and float arithmetic.
const Size = 26

// Shift is an alphabet index in 0..25. Arithmetic on it always stays in range.
type Shift uint8

// Add returns (s + o) mod 26.
func (s Shift) Add(o Shift) Shift {
	return Shift((uint(s%Shift(Size)) + uint(o%Shift(Size))) % uint(Size))
}

// Sub returns (s - o + 26) mod 26.
func (s Shift) Sub(o Shift) Shift {
	return Shift((uint(s%Shift(Size)) + uint(Size) - uint(o%Shift(Size))) % uint(Size))
}

// Inverse returns the shift that undoes s.
func (s Shift) Inverse() Shift {
	return Shift(0).Sub(s)
}

// Letter renders the shift as its alphabet symbol.
func (s Shift) Letter() byte {
	return Alphabet[s%Shift(Size)]
}

// Contains reports whether b is one of the uppercase alphabet symbols.
func Contains(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// Index maps an uppercase symbol to its alphabet position.
func Index(b byte) (Shift, bool) {
	if !Contains(b) {
		return 0, false
	}
	return Shift(b - 'A'), true
}

// ToUpper maps ASCII lowercase letters to uppercase and leaves every other
// byte alone.
func ToUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
