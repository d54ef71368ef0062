// SPDX-License-Identifier: Apache-2.0

// Package analysis implements the ciphertext-only attack on Vigenère text:
// index-of-coincidence key length estimation, per-column shift recovery and
// the pipeline that ties them to input readers.
package analysis

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/vigcrack/vigcrack/internal/cipher"
)

// Document describes the raw input to the pipeline.
type Document struct {
	// Content is the raw document content.
	Content []byte
	Format  string
	ID      string
}

// Reader turns a Document into raw ciphertext bytes for normalization.
type Reader interface {
	CanHandle(doc Document) bool
	Extract(ctx context.Context, doc Document) ([]byte, error)
	Name() string
}

// Sampler is the random source used by the coincidence estimator.
// *rand.Rand from math/rand/v2 satisfies it.
type Sampler interface {
	IntN(n int) int
}

// NewSampler returns a PCG-backed sampler. A zero seed is replaced by the
// wall clock.
func NewSampler(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Result is the output of a successful pipeline run.
type Result struct {
	RunID      string
	ReaderUsed string
	Letters    int
	KeyLength  KeyLength
	Key        cipher.Key
	Columns    []ColumnReport
	Plaintext  cipher.Text
}
