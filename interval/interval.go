/*Package interval implements interval-union operations on the closed
  1-based coordinate spans used by BLAST tabular output.
  (Note the 'union'.  Overlapping spans are merged, not tracked
  separately; covered-base totals never count a position twice.)
*/
package interval

import "sort"

// Span is a closed 1-based interval.  Spans derived from alignment hits
// are normalized so that Start <= Stop regardless of strand.
type Span struct {
	Start int
	Stop  int
}

// Len returns the number of positions the span covers.
func (s Span) Len() uint64 {
	return uint64(s.Stop - s.Start + 1)
}

// UnionLength returns the number of distinct positions covered by the
// union of spans.  spans is sorted in place.
func UnionLength(spans []Span) uint64 {
	if len(spans) == 0 {
		return 0
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].Stop < spans[j].Stop
	})
	var total uint64
	cur := spans[0]
	for _, s := range spans[1:] {
		if s.Start > cur.Stop {
			total += cur.Len()
			cur = s
			continue
		}
		if s.Stop > cur.Stop {
			cur.Stop = s.Stop
		}
	}
	return total + cur.Len()
}
