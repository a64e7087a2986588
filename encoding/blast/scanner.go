package blast

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

var errEOF = errors.New("eof")

// Scanner provides a convenient interface for reading tabular hit data.
// The Scan method parses the next hit line into a Record, returning a
// boolean indicating whether the scan succeeded.  Blank lines and comment
// lines starting with '#' (as emitted by blast+ -outfmt 7) are skipped.
// Scanners are not threadsafe.
type Scanner struct {
	b    *bufio.Scanner
	err  error
	line int
}

// NewScanner constructs a new Scanner that reads tabular hit lines from
// the provided reader.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{b: bufio.NewScanner(r)}
}

// Scan parses the next hit into the provided record.  Scan returns a
// boolean indicating whether the scan succeeded.  Once Scan returns
// false, it never returns true again.  Upon completion, the user should
// check the Err method to determine whether scanning stopped because of
// an error or because the end of the stream was reached.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	for {
		if !s.b.Scan() {
			if s.err = s.b.Err(); s.err == nil {
				s.err = errEOF
			}
			return false
		}
		s.line++
		line := strings.TrimSuffix(s.b.Text(), "\r")
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if err := parseRecord(line, rec); err != nil {
			s.err = errors.Wrapf(err, "line %d", s.line)
			return false
		}
		return true
	}
}

// Err returns the scanning error, if any.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

func parseRecord(line string, rec *Record) (err error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 12 {
		return errors.Errorf("got %d fields, want 12", len(fields))
	}
	atoi := func(col int) int {
		if err != nil {
			return 0
		}
		v, e := strconv.Atoi(fields[col])
		if e != nil {
			err = errors.Errorf("bad integer %q in column %d", fields[col], col+1)
		}
		return v
	}
	atof := func(col int) float64 {
		if err != nil {
			return 0
		}
		v, e := strconv.ParseFloat(fields[col], 64)
		if e != nil {
			err = errors.Errorf("bad number %q in column %d", fields[col], col+1)
		}
		return v
	}
	rec.Query = fields[0]
	rec.Subject = fields[1]
	rec.PctID = atof(2)
	rec.HitLen = atoi(3)
	rec.NMismatch = atoi(4)
	rec.NGaps = atoi(5)
	rec.QStart = atoi(6)
	rec.QStop = atoi(7)
	rec.SStart = atoi(8)
	rec.SStop = atoi(9)
	rec.EValue = atof(10)
	rec.BitScore = atof(11)
	return err
}

// ReadAll reads hit records from r until EOF.
func ReadAll(r io.Reader) ([]Record, error) {
	var (
		scanner = NewScanner(r)
		recs    []Record
		rec     Record
	)
	for scanner.Scan(&rec) {
		recs = append(recs, rec)
	}
	return recs, scanner.Err()
}

// ReadFile reads all hit records from the file at the given path, which
// may be on any filesystem registered with base/file.  Gzip-compressed
// inputs are decompressed transparently based on the path suffix.
func ReadFile(ctx context.Context, path string) (recs []Record, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return nil, err
		}
	}
	if recs, err = ReadAll(reader); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return recs, nil
}
