package benchmark

import (
	"sort"

	"github.com/grailbio/asmbench/encoding/blast"
	"github.com/grailbio/asmbench/interval"
)

// queryAggregate accumulates the hit counts of one query.  covered sums
// the raw query span of every hit without overlap correction, so it can
// exceed the query length when hits overlap; that is the intended
// lightweight behavior for the EST summary, where hits are not
// redundancy filtered.
type queryAggregate struct {
	query      string
	covered    uint64
	alignLen   int
	mismatches int
	gaps       int
}

func (a *queryAggregate) record(rec blast.Record) {
	start, stop := rec.QuerySpan()
	a.covered += uint64(stop - start + 1)
	a.alignLen += rec.HitLen
	a.mismatches += rec.NMismatch
	a.gaps += rec.NGaps
}

// groupByQuery reduces hits to one aggregate per query.  The aggregates
// are ordered by query id; recs itself is not modified.
func groupByQuery(recs []blast.Record) []queryAggregate {
	sorted := make([]blast.Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Query < sorted[j].Query })
	var aggs []queryAggregate
	for _, rec := range sorted {
		if len(aggs) == 0 || aggs[len(aggs)-1].query != rec.Query {
			aggs = append(aggs, queryAggregate{query: rec.Query})
		}
		aggs[len(aggs)-1].record(rec)
	}
	return aggs
}

// subjectSpans collects the subject-axis spans of recs keyed by subject
// id.
func subjectSpans(recs []blast.Record) map[string][]interval.Span {
	bySubject := make(map[string][]interval.Span)
	for _, rec := range recs {
		start, stop := rec.SubjectSpan()
		bySubject[rec.Subject] = append(bySubject[rec.Subject], interval.Span{Start: start, Stop: stop})
	}
	return bySubject
}
