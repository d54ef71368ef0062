// SPDX-License-Identifier: Apache-2.0

// Package readers holds the input formats the analysis pipeline accepts.
package readers

import (
	"context"
	"strings"

	"github.com/vigcrack/vigcrack/internal/analysis"
)

// TextReader passes raw ciphertext through unchanged. Normalization happens
// in the pipeline.
type TextReader struct{}

// NewTextReader creates a new TextReader.
func NewTextReader() *TextReader {
	return &TextReader{}
}

func (r *TextReader) Name() string {
	return "text"
}

// CanHandle accepts plain text hints and documents without a hint, so it
// belongs last in the reader list.
func (r *TextReader) CanHandle(doc analysis.Document) bool {
	switch strings.ToLower(doc.Format) {
	case "", "text", "txt", "plain":
		return true
	}
	return false
}

func (r *TextReader) Extract(_ context.Context, doc analysis.Document) ([]byte, error) {
	return doc.Content, nil
}

// Default returns the readers in registration order: structured formats
// first, then the catch-all text reader.
func Default() []analysis.Reader {
	return []analysis.Reader{
		NewYAMLReader(),
		NewTextReader(),
	}
}
