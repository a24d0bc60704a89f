// SPDX-License-Identifier: MIT

package input_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairalign/costtable"
	"github.com/katalvlaran/pairalign/input"
)

func TestRead(t *testing.T) {
	in, err := input.Read(strings.NewReader("3 2\n3\nAGGGCT\nAGGCA\n  TTAGGC extra"))
	require.NoError(t, err)
	assert.Equal(t, costtable.Penalties{Mismatch: 3, Gap: 2}, in.Penalties)
	assert.Equal(t, [][]byte{[]byte("AGGGCT"), []byte("AGGCA"), []byte("TTAGGC")}, in.Sequences)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", input.ErrTruncated},
		{"no gap", "3", input.ErrTruncated},
		{"no k", "3 2", input.ErrTruncated},
		{"short", "3 2 3 AC GT", input.ErrTruncated},
		{"letters", "x 2 2 A C", input.ErrBadNumber},
		{"negative", "3 -2 2 A C", input.ErrBadNumber},
		{"negative k", "3 2 -1", input.ErrBadNumber},
		{"gap sentinel", "3 2 2 A_C GT", input.ErrGapInInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := input.Read(strings.NewReader(tc.text))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRead_GapSentinelIsCosttableError(t *testing.T) {
	_, err := input.Read(strings.NewReader("1 1 2 __ A"))
	assert.ErrorIs(t, err, costtable.ErrGapInInput)
}

func TestReadPair(t *testing.T) {
	p, x, y, err := input.ReadPair(strings.NewReader("1 2 AGGGCT AGGCA"))
	require.NoError(t, err)
	assert.Equal(t, costtable.Penalties{Mismatch: 1, Gap: 2}, p)
	assert.Equal(t, []byte("AGGGCT"), x)
	assert.Equal(t, []byte("AGGCA"), y)

	_, _, _, err = input.ReadPair(strings.NewReader("1 2 AGGGCT"))
	assert.ErrorIs(t, err, input.ErrTruncated)

	_, _, _, err = input.ReadPair(strings.NewReader("1 2 A_ C"))
	assert.ErrorIs(t, err, input.ErrGapInInput)
}

const fastaText = `>seq1 first
AGGG
CT
>seq2
AGGCA
>seq3
TTAGGC
`

func TestReadFASTA(t *testing.T) {
	seqs, err := input.ReadFASTA(strings.NewReader(fastaText))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("AGGGCT"), []byte("AGGCA"), []byte("TTAGGC")}, seqs)

	recs, err := input.ReadFASTARecords(strings.NewReader(fastaText))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "seq1", recs[0].ID)
	assert.Equal(t, "seq3", recs[2].ID)
}

func TestReadFASTA_GapSentinel(t *testing.T) {
	_, err := input.ReadFASTA(strings.NewReader(">a\nAC_T\n"))
	assert.ErrorIs(t, err, input.ErrGapInInput)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(plain, []byte("1 2 AC GT"), 0o600))

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("1 2 AC GT"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	gz := filepath.Join(dir, "in.dat")
	require.NoError(t, os.WriteFile(gz, buf.Bytes(), 0o600))

	for _, path := range []string{plain, gz} {
		rc, err := input.Open(path, nil)
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "1 2 AC GT", string(b), path)
	}

	rc, err := input.Open("-", strings.NewReader("stdin"))
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "stdin", string(b))

	_, err = input.Open(filepath.Join(dir, "missing"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
