package blast

import (
	"io"
	"strconv"

	"github.com/grailbio/base/tsv"
)

// Writer writes hit records as 12-column tabular lines.  The caller must
// call Flush after the last record to guarantee everything reaches the
// underlying writer.
type Writer struct {
	w *tsv.Writer
}

// NewWriter constructs a new Writer that writes hit records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: tsv.NewWriter(w)}
}

// Write writes one record as a tab-separated line.
func (w *Writer) Write(rec *Record) error {
	w.w.WriteString(rec.Query)
	w.w.WriteString(rec.Subject)
	w.w.WriteString(strconv.FormatFloat(rec.PctID, 'f', 2, 64))
	w.w.WriteInt64(int64(rec.HitLen))
	w.w.WriteInt64(int64(rec.NMismatch))
	w.w.WriteInt64(int64(rec.NGaps))
	w.w.WriteInt64(int64(rec.QStart))
	w.w.WriteInt64(int64(rec.QStop))
	w.w.WriteInt64(int64(rec.SStart))
	w.w.WriteInt64(int64(rec.SStop))
	w.w.WriteString(strconv.FormatFloat(rec.EValue, 'g', -1, 64))
	w.w.WriteString(strconv.FormatFloat(rec.BitScore, 'f', 1, 64))
	return w.w.EndLine()
}

// Flush flushes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
