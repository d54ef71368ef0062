// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigcrack/vigcrack/internal/cipher"
	"github.com/vigcrack/vigcrack/internal/config"
	"github.com/vigcrack/vigcrack/internal/tool"
)

// execute runs the root command with args and stdin, returning stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func encryptedSpeech(t *testing.T, key string) (cipher.Text, cipher.Text) {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", "gettysburg.txt"))
	require.NoError(t, err)
	k, err := cipher.ParseKey(key)
	require.NoError(t, err)
	plain := cipher.Normalize(raw)
	return plain, cipher.EncodeText(plain, k)
}

func TestEncodeDecode(t *testing.T) {
	stdout, _, err := execute(t, "Attack at dawn!", "encode", "--key", "LEMON")
	require.NoError(t, err)
	assert.Equal(t, "LXFOPVEFRNHR\n", stdout)

	stdout, _, err = execute(t, "lxfop vefrn hr", "decode", "-k", "lemon")
	require.NoError(t, err)
	assert.Equal(t, "ATTACKATDAWN\n", stdout)
}

func TestEncode_Errors(t *testing.T) {
	t.Run("missing key flag", func(t *testing.T) {
		_, _, err := execute(t, "abc", "encode")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key")
	})

	t.Run("bad key", func(t *testing.T) {
		_, _, err := execute(t, "abc", "encode", "--key", "L3MON")
		require.ErrorIs(t, err, cipher.ErrInvalidKey)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "", "decode", "--key", "A", filepath.Join(t.TempDir(), "absent.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open input")
	})
}

func TestCrack_File(t *testing.T) {
	plain, ciphertext := encryptedSpeech(t, "LEMON")
	path := writeFile(t, "secret.txt", string(ciphertext))

	stdout, stderr, err := execute(t, "", "crack", path, "--seed", "1", "--max-stride", "40", "--plaintext", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, stderr, "best stride: 5 (IOC ")
	assert.Equal(t, "key: LEMON (11, 4, 12, 14, 13)\n"+string(plain)+"\n", stdout)
}

func TestCrack_StdinYAMLWithConfig(t *testing.T) {
	_, ciphertext := encryptedSpeech(t, "QUEENLY")
	cfgPath := writeFile(t, "vigcrack.yaml", "seed: 8\nmax_stride: 40\nlog_level: debug\n")

	stdout, stderr, err := execute(t, "ciphertext: "+string(ciphertext)+"\n", "crack", "--config", cfgPath, "--verbose")
	require.NoError(t, err)

	assert.Equal(t, "key: QUEENLY (16, 20, 4, 4, 13, 11, 24)\n", stdout)
	assert.Contains(t, stderr, "column 6: Y shift=24")
	assert.Contains(t, stderr, "stride scored")
}

func TestCrack_Errors(t *testing.T) {
	t.Run("missing file is fatal", func(t *testing.T) {
		_, _, err := execute(t, "", "crack", filepath.Join(t.TempDir(), "absent.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open input")
	})

	t.Run("invalid flag value", func(t *testing.T) {
		_, _, err := execute(t, "LXFOPVEFRNHR", "crack", "--samples=-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("invalid config file", func(t *testing.T) {
		cfgPath := writeFile(t, "bad.yaml", "threshold: 0\n")
		_, _, err := execute(t, "LXFOPVEFRNHR", "crack", "--config", cfgPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("yaml without ciphertext", func(t *testing.T) {
		path := writeFile(t, "doc.yaml", "key: LEMON\n")
		_, _, err := execute(t, "", "crack", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no ciphertext field")
	})
}

func TestServe_InvalidConfig(t *testing.T) {
	cfgPath := writeFile(t, "bad.yaml", "samples: 0\n")
	_, _, err := execute(t, "", "serve", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestNewServer_UsesLoadedConfig(t *testing.T) {
	_, ciphertext := encryptedSpeech(t, "LEMON")
	cfg, err := config.Load(writeFile(t, "vigcrack.yaml", "threshold: 50\nmax_stride: 9\nseed: 3\n"))
	require.NoError(t, err)

	var logs bytes.Buffer
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := newServer(cfg, newLogger(&logs, cfg)).Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "vigcrack-test", Version: "v0.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "crack_vigenere",
		Arguments: map[string]any{"content": string(ciphertext)},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var output tool.OutputCrackVigenere
	require.NoError(t, json.Unmarshal(raw, &output))
	assert.Equal(t, 9, output.Scanned, "max_stride from the config file bounds the scan")
	assert.Equal(t, 5, output.Stride)
	assert.Equal(t, "LEMON", output.Key)
	assert.Contains(t, logs.String(), "key recovered")
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "yaml", formatFromPath("a/b.YAML"))
	assert.Equal(t, "yaml", formatFromPath("c.yml"))
	assert.Equal(t, "json", formatFromPath("c.json"))
	assert.Equal(t, "", formatFromPath("c.txt"))
	assert.Equal(t, "", formatFromPath("stdin"))
}
