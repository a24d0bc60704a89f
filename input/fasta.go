// SPDX-License-Identifier: MIT

package input

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/katalvlaran/pairalign/costtable"
)

// Record is one FASTA entry.
type Record struct {
	ID  string
	Seq []byte
}

// ReadFASTARecords reads every record from r in file order.
func ReadFASTARecords(r io.Reader) ([]Record, error) {
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	var out []Record
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("input: fasta record %d: unexpected sequence type %T", len(out), sc.Seq())
		}
		b := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			b[i] = byte(l)
		}
		if err := costtable.CheckSequence(b); err != nil {
			return nil, fmt.Errorf("input: fasta record %q: %w", s.Name(), err)
		}
		out = append(out, Record{ID: s.Name(), Seq: b})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("input: fasta: %w", err)
	}
	return out, nil
}

// ReadFASTA returns the sequences of every record in r.
func ReadFASTA(r io.Reader) ([][]byte, error) {
	recs, err := ReadFASTARecords(r)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(recs))
	for i, rec := range recs {
		out[i] = rec.Seq
	}
	return out, nil
}

type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens path for reading; "-" is stdin. Gzip input is detected by
// magic number or a .gz suffix and decompressed transparently.
func Open(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" || path == "" {
		return io.NopCloser(stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	var sig [2]byte
	n, _ := io.ReadFull(fh, sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, fmt.Errorf("input: %s: %w", path, err)
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, fmt.Errorf("input: %s: %w", path, err)
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
