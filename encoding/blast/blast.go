// Package blast contains code for reading and writing BLAST tabular hit
// files (the 12-column "-m8" format of legacy blastall, also produced by
// blast+ as "-outfmt 6" and by aligners such as BLAT with -out=blast8).
// Each line describes one local alignment segment:
//
// query subject pctid hitlen nmismatch ngaps qstart qstop sstart sstop evalue bitscore
//
// Coordinates are 1-based and inclusive.  Start may exceed stop on either
// axis to indicate a minus-strand alignment.
package blast

// Record is a single alignment segment between a query and a subject
// sequence.
type Record struct {
	Query     string
	Subject   string
	PctID     float64
	HitLen    int
	NMismatch int
	NGaps     int
	QStart    int
	QStop     int
	SStart    int
	SStop     int
	EValue    float64
	BitScore  float64
}

// QuerySpan returns the query interval normalized so that start <= stop.
// Both bounds are 1-based and inclusive.
func (r Record) QuerySpan() (start, stop int) {
	if r.QStart > r.QStop {
		return r.QStop, r.QStart
	}
	return r.QStart, r.QStop
}

// SubjectSpan returns the subject interval normalized so that start <=
// stop.  Both bounds are 1-based and inclusive.
func (r Record) SubjectSpan() (start, stop int) {
	if r.SStart > r.SStop {
		return r.SStop, r.SStart
	}
	return r.SStart, r.SStop
}
