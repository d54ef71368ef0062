// SPDX-License-Identifier: Apache-2.0

package analysis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vigcrack/vigcrack/internal/cipher"
)

// speech returns the Gettysburg Address from testdata.
func speech(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "gettysburg.txt"))
	require.NoError(t, err)
	return string(data)
}

// encrypt normalizes the plaintext and encodes it with key.
func encrypt(t *testing.T, plaintext, key string) (cipher.Text, cipher.Text) {
	t.Helper()
	k, err := cipher.ParseKey(key)
	require.NoError(t, err)
	plain := cipher.Normalize([]byte(plaintext))
	return plain, cipher.EncodeText(plain, k)
}

// scriptedSampler replays values and records every bound it was asked for.
type scriptedSampler struct {
	values []int
	bounds []int
}

func (s *scriptedSampler) IntN(n int) int {
	v := s.values[len(s.bounds)%len(s.values)]
	s.bounds = append(s.bounds, n)
	return v % n
}
