// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/vigcrack/vigcrack/internal/analysis"
)

// YAMLReader extracts ciphertext from a YAML or JSON envelope of the form
// `ciphertext: "..."`.
type YAMLReader struct{}

func NewYAMLReader() *YAMLReader {
	return &YAMLReader{}
}

func (r *YAMLReader) Name() string {
	return "yaml"
}

func (r *YAMLReader) CanHandle(doc analysis.Document) bool {
	switch strings.ToLower(doc.Format) {
	case "yaml", "yml", "json":
		return true
	case "":
	default:
		return false
	}
	content := strings.TrimSpace(string(doc.Content))
	// JSON object
	if strings.HasPrefix(content, "{") {
		return true
	}
	return strings.HasPrefix(content, "ciphertext:")
}

type envelope struct {
	Ciphertext *string `yaml:"ciphertext"`
}

func (r *YAMLReader) Extract(_ context.Context, doc analysis.Document) ([]byte, error) {
	var env envelope
	if err := yaml.Unmarshal(doc.Content, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML/JSON: %w", err)
	}
	if env.Ciphertext == nil {
		return nil, errors.New("document has no ciphertext field")
	}
	return []byte(*env.Ciphertext), nil
}
