// Package fasta contains code for reading FASTA files and their "samtools
// faidx" indexes (*.fai).  See http://www.htslib.org/doc/faidx.html.
// Briefly, FASTA files consist of a number of named sequences that may be
// interrupted by newlines.  For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appear after a space are ignored.
// For example, '>chr1 A viral sequence' becomes 'chr1'.
package fasta

import (
	"bytes"
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Sizes maps every sequence in a FASTA file to its length.  It is the
// only view of a FASTA file needed when computing per-sequence coverage
// denominators, so it can be built from the fai index alone without
// touching the sequence data.
type Sizes struct {
	lengths  map[string]uint64
	seqNames []string
}

// ReadSizes builds the size table for the FASTA file at fastaPath, which
// may be on any filesystem registered with base/file.
//
// If "<fastaPath>.fai" already exists it is used instead of the FASTA
// itself.  Otherwise the FASTA is scanned once and the resulting index is
// saved next to it for reuse by later runs; failure to save is logged and
// ignored.  Gzip-compressed FASTA files are scanned transparently, but no
// index is saved for them because fai offsets address the uncompressed
// byte stream.
func ReadSizes(ctx context.Context, fastaPath string) (*Sizes, error) {
	indexPath := fastaPath + ".fai"
	if _, err := file.Stat(ctx, indexPath); err == nil {
		return readIndexedSizes(ctx, indexPath)
	}
	indexBytes, err := indexFasta(ctx, fastaPath)
	if err != nil {
		return nil, err
	}
	sizes, err := newSizes(bytes.NewReader(indexBytes))
	if err != nil {
		return nil, errors.Wrap(err, fastaPath)
	}
	if fileio.DetermineType(fastaPath) != fileio.Gzip {
		if err := writeIndexFile(ctx, indexPath, indexBytes); err != nil {
			log.Error.Printf("saving fasta index %s: %v", indexPath, err)
		}
	}
	return sizes, nil
}

// Len returns the length of the named sequence.
func (s *Sizes) Len(seqName string) (uint64, error) {
	n, ok := s.lengths[seqName]
	if !ok {
		return 0, errors.Errorf("sequence not found: %s", seqName)
	}
	return n, nil
}

// NumSeqs returns the number of sequences in the table.
func (s *Sizes) NumSeqs() int {
	return len(s.seqNames)
}

// SeqNames returns the names of all sequences, in the order of appearance
// in the FASTA file.
func (s *Sizes) SeqNames() []string {
	return s.seqNames
}

func newSizes(index io.Reader) (*Sizes, error) {
	entries, err := parseIndex(index)
	if err != nil {
		return nil, err
	}
	s := &Sizes{lengths: make(map[string]uint64, len(entries))}
	for _, ent := range entries {
		s.lengths[ent.name] = ent.length
		s.seqNames = append(s.seqNames, ent.name)
	}
	return s, nil
}

func readIndexedSizes(ctx context.Context, indexPath string) (sizes *Sizes, err error) {
	var in file.File
	if in, err = file.Open(ctx, indexPath); err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	if sizes, err = newSizes(in.Reader(ctx)); err != nil {
		return nil, errors.Wrap(err, indexPath)
	}
	return sizes, nil
}

// indexFasta scans the FASTA file at fastaPath and returns its fai index
// contents.
func indexFasta(ctx context.Context, fastaPath string) (indexBytes []byte, err error) {
	var in file.File
	if in, err = file.Open(ctx, fastaPath); err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(fastaPath) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err = GenerateIndex(&buf, reader); err != nil {
		return nil, errors.Wrap(err, fastaPath)
	}
	return buf.Bytes(), nil
}

func writeIndexFile(ctx context.Context, indexPath string, indexBytes []byte) (err error) {
	var out file.File
	if out, err = file.Create(ctx, indexPath); err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	_, err = out.Writer(ctx).Write(indexBytes)
	return err
}
