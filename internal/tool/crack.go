// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vigcrack/vigcrack/internal/analysis"
	"github.com/vigcrack/vigcrack/internal/analysis/readers"
	"github.com/vigcrack/vigcrack/internal/config"
)

// MetadataCrackVigenere describes the crack_vigenere tool.
var MetadataCrackVigenere = &mcp.Tool{
	Name: "crack_vigenere",
	Description: "Recover the key of a Vigenère-encrypted English text without knowing it. " +
		"The key length is estimated with the index of coincidence and each key letter is recovered " +
		"by correlating column letter frequencies with English. " +
		"Supported formats: text, yaml, json (documents with a `ciphertext` field). " +
		"Results are statistical: short ciphertexts (a few key lengths long) are unreliable. " +
		"Each column report carries a chi-squared p-value; values near 0 suggest a wrong key letter.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Ciphertext, or a YAML/JSON document holding it under `ciphertext`",
			},
			"format": map[string]interface{}{
				"type":        "string",
				"description": "Format hint. One of: text, yaml, json. If omitted, auto-detection is used.",
				"enum":        []string{"text", "yaml", "json"},
			},
			"source_id": map[string]interface{}{
				"type":        "string",
				"description": "Optional identifier for the document used in error messages.",
			},
			"seed": map[string]interface{}{
				"type":        "integer",
				"description": "Sampler seed for reproducible runs. 0 seeds from the clock.",
				"minimum":     0,
			},
			"threshold": map[string]interface{}{
				"type":        "number",
				"description": "Normalized index of coincidence that ends the key length scan. Defaults to 1.6.",
			},
			"samples": map[string]interface{}{
				"type":        "integer",
				"description": "Position pairs sampled per coincidence estimate. Defaults to 2048.",
			},
			"max_stride": map[string]interface{}{
				"type":        "integer",
				"description": "Longest key length to consider. 0 scans up to half the text length.",
			},
		},
	},
}

// InputCrackVigenere is the input for the CrackVigenere tool.
type InputCrackVigenere struct {
	Content   string  `json:"content"`
	Format    string  `json:"format"`
	SourceID  string  `json:"source_id"`
	Seed      uint64  `json:"seed"`
	Threshold float64 `json:"threshold"`
	Samples   int     `json:"samples"`
	MaxStride int     `json:"max_stride"`
}

// OutputCrackVigenere is the output for the CrackVigenere tool.
type OutputCrackVigenere struct {
	// Stride is the selected key length.
	Stride int     `json:"stride"`
	Score  float64 `json:"score"`
	// Scanned is the number of strides scored before the scan stopped.
	Scanned int `json:"scanned"`
	// Key is the recovered key as letters.
	Key       string                  `json:"key"`
	Shifts    []int                   `json:"shifts"`
	Plaintext string                  `json:"plaintext"`
	Columns   []analysis.ColumnReport `json:"columns"`
	// ReaderUsed is the name of the reader that was selected.
	ReaderUsed string `json:"reader_used"`
	Letters    int    `json:"letters"`
}

// configFor overlays the non-zero tuning fields of input on base.
func configFor(base config.Config, input InputCrackVigenere) (config.Config, error) {
	cfg := base
	if input.Seed != 0 {
		cfg.Seed = input.Seed
	}
	if input.Threshold != 0 {
		cfg.Threshold = input.Threshold
	}
	if input.Samples != 0 {
		cfg.Samples = input.Samples
	}
	if input.MaxStride != 0 {
		cfg.MaxStride = input.MaxStride
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// defaultPipeline builds a Pipeline with all default readers registered.
func defaultPipeline(cfg config.Config, logger *slog.Logger) *analysis.Pipeline {
	return analysis.NewPipeline(
		analysis.WithReaders(readers.Default()...),
		analysis.WithConfig(cfg),
		analysis.WithLogger(logger),
	)
}

// CrackVigenere runs the analysis pipeline over the provided ciphertext with
// the default configuration and returns the recovered key and plaintext.
func CrackVigenere(ctx context.Context, req *mcp.CallToolRequest, input InputCrackVigenere) (*mcp.CallToolResult, OutputCrackVigenere, error) {
	return NewCrackVigenere(config.Default(), nil)(ctx, req, input)
}

// NewCrackVigenere returns a crack_vigenere handler whose tuning starts from
// base. Per-call inputs override base field by field. A nil logger discards.
func NewCrackVigenere(base config.Config, logger *slog.Logger) mcp.ToolHandlerFor[InputCrackVigenere, OutputCrackVigenere] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InputCrackVigenere) (*mcp.CallToolResult, OutputCrackVigenere, error) {
		return crack(ctx, base, logger, input)
	}
}

func crack(ctx context.Context, base config.Config, logger *slog.Logger, input InputCrackVigenere) (*mcp.CallToolResult, OutputCrackVigenere, error) {
	if input.Content == "" {
		return nil, OutputCrackVigenere{}, fmt.Errorf("content is required")
	}

	sourceID := input.SourceID
	if sourceID == "" {
		sourceID = "unknown"
	}

	cfg, err := configFor(base, input)
	if err != nil {
		return nil, OutputCrackVigenere{}, err
	}

	doc := analysis.Document{
		Content: []byte(input.Content),
		Format:  input.Format,
		ID:      sourceID,
	}

	result, err := defaultPipeline(cfg, logger.With("tool", MetadataCrackVigenere.Name, "source_id", sourceID)).Run(ctx, doc)
	if err != nil {
		return nil, OutputCrackVigenere{}, err
	}

	return nil, OutputCrackVigenere{
		Stride:     result.KeyLength.Stride,
		Score:      result.KeyLength.Score,
		Scanned:    len(result.KeyLength.Scanned),
		Key:        result.Key.String(),
		Shifts:     result.Key.Ints(),
		Plaintext:  string(result.Plaintext),
		Columns:    result.Columns,
		ReaderUsed: result.ReaderUsed,
		Letters:    result.Letters,
	}, nil
}
