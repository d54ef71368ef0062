// SPDX-License-Identifier: Apache-2.0

package cipher

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidKey is returned by ParseKey for empty or non-alphabetic keys.
var ErrInvalidKey = errors.New("invalid key")

// Key is an ordered sequence of shifts. Its length is fixed at creation.
type Key []Shift

// NewKey allocates a zero key of length n.
func NewKey(n int) Key {
	if n < 0 {
		n = 0
	}
	return make(Key, n)
}

// ParseKey builds a key from letters; case is ignored.
func ParseKey(s string) (Key, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: key is empty", ErrInvalidKey)
	}
	key := NewKey(len(s))
	for i := 0; i < len(s); i++ {
		idx, ok := Index(ToUpper(s[i]))
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a letter at position %d", ErrInvalidKey, s[i], i)
		}
		key[i] = idx
	}
	return key, nil
}

// String renders the key as letters, e.g. "LEMON".
func (k Key) String() string {
	var b strings.Builder
	b.Grow(len(k))
	for _, s := range k {
		b.WriteByte(s.Letter())
	}
	return b.String()
}

// Shifts renders the raw shift values, e.g. "11, 4, 12, 14, 13".
func (k Key) Shifts() string {
	parts := make([]string, len(k))
	for i, s := range k {
		parts[i] = strconv.Itoa(int(s))
	}
	return strings.Join(parts, ", ")
}

// Ints returns the shifts as plain integers.
func (k Key) Ints() []int {
	out := make([]int, len(k))
	for i, s := range k {
		out[i] = int(s)
	}
	return out
}
