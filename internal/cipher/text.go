// SPDX-License-Identifier: Apache-2.0

package cipher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Text is a normalized letter stream: only A–Z, in input order.
type Text string

// Normalize uppercases ASCII letters and drops every other byte.
func Normalize(raw []byte) Text {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		b = ToUpper(b)
		if Contains(b) {
			out = append(out, b)
		}
	}
	return Text(out)
}

// NormalizeReader streams r through Normalize.
func NormalizeReader(r io.Reader) (Text, error) {
	br := bufio.NewReader(r)
	var out []byte
	for {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		b = ToUpper(b)
		if Contains(b) {
			out = append(out, b)
		}
	}
	return Text(out), nil
}

// Len returns the number of letters.
func (t Text) Len() int {
	return len(t)
}
