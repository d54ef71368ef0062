// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vigcrack/vigcrack/internal/cipher"
	"github.com/vigcrack/vigcrack/internal/config"
)

var codecInputSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"text", "key"},
	"properties": map[string]interface{}{
		"text": map[string]interface{}{
			"type":        "string",
			"description": "Text to transform. Only A-Z are shifted; other characters pass through.",
		},
		"key": map[string]interface{}{
			"type":        "string",
			"description": "Key as letters, e.g. LEMON",
		},
		"normalize": map[string]interface{}{
			"type":        "boolean",
			"description": "Uppercase the text and drop everything that is not a letter first.",
		},
	},
}

// MetadataVigenereEncode describes the vigenere_encode tool.
var MetadataVigenereEncode = &mcp.Tool{
	Name:        "vigenere_encode",
	Description: "Encrypt text with a Vigenère key.",
	InputSchema: codecInputSchema,
}

// MetadataVigenereDecode describes the vigenere_decode tool.
var MetadataVigenereDecode = &mcp.Tool{
	Name:        "vigenere_decode",
	Description: "Decrypt Vigenère text with a known key.",
	InputSchema: codecInputSchema,
}

// InputCodec is the input for the encode and decode tools.
type InputCodec struct {
	Text      string `json:"text"`
	Key       string `json:"key"`
	Normalize bool   `json:"normalize"`
}

// OutputCodec is the output for the encode and decode tools.
type OutputCodec struct {
	Text string `json:"text"`
}

func VigenereEncode(_ context.Context, _ *mcp.CallToolRequest, input InputCodec) (*mcp.CallToolResult, OutputCodec, error) {
	return runCodec(input, cipher.Encode)
}

func VigenereDecode(_ context.Context, _ *mcp.CallToolRequest, input InputCodec) (*mcp.CallToolResult, OutputCodec, error) {
	return runCodec(input, cipher.Decode)
}

func runCodec(input InputCodec, op func(string, cipher.Key) string) (*mcp.CallToolResult, OutputCodec, error) {
	key, err := cipher.ParseKey(input.Key)
	if err != nil {
		return nil, OutputCodec{}, fmt.Errorf("parse key: %w", err)
	}
	text := input.Text
	if input.Normalize {
		text = string(cipher.Normalize([]byte(text)))
	}
	return nil, OutputCodec{Text: op(text, key)}, nil
}

// Register adds every tool to server. crack_vigenere tunes from base and logs
// to logger.
func Register(server *mcp.Server, base config.Config, logger *slog.Logger) {
	mcp.AddTool(server, MetadataCrackVigenere, NewCrackVigenere(base, logger))
	mcp.AddTool(server, MetadataVigenereEncode, VigenereEncode)
	mcp.AddTool(server, MetadataVigenereDecode, VigenereDecode)
}
