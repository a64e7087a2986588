// Package supermap reduces a set of local alignments to a non-redundant
// subset.  For every sequence on a chosen axis (query or subject), it
// retains the set of mutually non-overlapping hits that maximizes the
// total bit score, discarding the redundant overlapping fragments that
// BLAST-style aligners report around the same region.  Aggregating the
// retained hits therefore never counts an aligned base twice on the
// filtered axis.
package supermap

import (
	"sort"

	"github.com/grailbio/asmbench/encoding/blast"
)

// Direction selects the axis on which hits are deduplicated.
type Direction int

const (
	// Query filters overlaps per query sequence.
	Query Direction = iota
	// Ref filters overlaps per subject sequence.
	Ref
)

// String returns the lowercase direction name, as used in artifact file
// suffixes.
func (d Direction) String() string {
	switch d {
	case Query:
		return "query"
	case Ref:
		return "ref"
	}
	return "unknown"
}

func (d Direction) axis(rec blast.Record) (id string, start, stop int) {
	if d == Query {
		start, stop = rec.QuerySpan()
		return rec.Query, start, stop
	}
	start, stop = rec.SubjectSpan()
	return rec.Subject, start, stop
}

// Filter returns the non-redundant subset of recs for the given
// direction.  Hits are grouped by the direction's sequence id, and each
// group is reduced to the subset of pairwise non-overlapping hits with
// the highest total bit score.  Spans are closed intervals, so two hits
// sharing even a single base count as overlapping.  The result is sorted
// by (sequence id, span start), keeping each sequence's hits contiguous;
// recs itself is not modified.
func Filter(recs []blast.Record, dir Direction) []blast.Record {
	type item struct {
		index       int
		start, stop int
		score       float64
	}
	groups := make(map[string][]item)
	for i, rec := range recs {
		id, start, stop := dir.axis(rec)
		groups[id] = append(groups[id], item{index: i, start: start, stop: stop, score: rec.BitScore})
	}
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []blast.Record
	for _, id := range ids {
		items := groups[id]
		sort.Slice(items, func(i, j int) bool {
			if items[i].stop != items[j].stop {
				return items[i].stop < items[j].stop
			}
			if items[i].start != items[j].start {
				return items[i].start < items[j].start
			}
			return items[i].index < items[j].index
		})
		n := len(items)
		// prev[i] is the number of items, in stop order, that end strictly
		// before items[i] starts.  They are exactly the items compatible
		// with taking items[i].
		prev := make([]int, n)
		for i := range items {
			lo, hi := 0, i
			for lo < hi {
				mid := (lo + hi) / 2
				if items[mid].stop < items[i].start {
					lo = mid + 1
				} else {
					hi = mid
				}
			}
			prev[i] = lo
		}
		// opt[i] is the best total score over the first i items.
		opt := make([]float64, n+1)
		for i := 1; i <= n; i++ {
			if keep := items[i-1].score + opt[prev[i-1]]; keep > opt[i-1] {
				opt[i] = keep
			} else {
				opt[i] = opt[i-1]
			}
		}
		var chosen []int
		for i := n; i > 0; {
			if keep := items[i-1].score + opt[prev[i-1]]; keep > opt[i-1] {
				chosen = append(chosen, i-1)
				i = prev[i-1]
			} else {
				i--
			}
		}
		// chosen is in decreasing stop order; the spans are disjoint, so
		// reversing it sorts the group by start.
		for j := len(chosen) - 1; j >= 0; j-- {
			out = append(out, recs[items[chosen[j]].index])
		}
	}
	return out
}
