package benchmark

import (
	"fmt"
	"io"

	"github.com/grailbio/asmbench/encoding/blast"
	"github.com/grailbio/asmbench/encoding/fasta"
)

// QueryDetail is one per-query detail line recorded when Opts.List is
// set.
type QueryDetail struct {
	Query    string
	Identity float64
	Coverage float64
}

// identityTotals pools mismatch, gap, and aligned-length counts across
// every mapped query.  Its denominator is the pooled aligned length.
type identityTotals struct {
	mismatches int
	gaps       int
	alignLen   int
}

func (tot *identityTotals) record(agg queryAggregate) {
	tot.mismatches += agg.mismatches
	tot.gaps += agg.gaps
	tot.alignLen += agg.alignLen
}

func (tot identityTotals) identity() float64 {
	return Identity(tot.mismatches, tot.gaps, tot.alignLen)
}

// coverageTotals pools covered bases across every mapped query against
// the combined length of those same queries.  Unlike the mapped/valid
// percentages, unmapped queries do not contribute to this denominator;
// the two populations must not be conflated.
type coverageTotals struct {
	covered   uint64
	querySize uint64
}

func (tot *coverageTotals) record(agg queryAggregate, size uint64) {
	tot.covered += agg.covered
	tot.querySize += size
}

func (tot coverageTotals) coverage() float64 {
	return Coverage(tot.covered, tot.querySize)
}

// ESTResult summarizes how completely a query set maps to an assembly.
type ESTResult struct {
	MinIdentity int
	MinCoverage int
	// TotalQueries counts every sequence in the size table, mapped or
	// not.
	TotalQueries int
	// Mapped counts queries with at least one hit.
	Mapped int
	// Valid counts mapped queries whose identity and coverage both
	// strictly exceed the cutoffs.
	Valid int
	// Details has one entry per mapped query, ordered by query id.  It is
	// only populated when Opts.List is set.
	Details []QueryDetail

	identity identityTotals
	coverage coverageTotals
}

// ESTSummary evaluates each query's pooled hits against the cutoffs in
// opts.  Every query named by a hit must be present in sizes; an unknown
// query id is an error, not a skip, since it would corrupt the coverage
// denominators.
func ESTSummary(recs []blast.Record, sizes *fasta.Sizes, opts Opts) (ESTResult, error) {
	res := ESTResult{
		MinIdentity:  opts.MinIdentity,
		MinCoverage:  opts.MinCoverage,
		TotalQueries: sizes.NumSeqs(),
	}
	for _, agg := range groupByQuery(recs) {
		size, err := sizes.Len(agg.query)
		if err != nil {
			return ESTResult{}, err
		}
		res.Mapped++
		identity := Identity(agg.mismatches, agg.gaps, agg.alignLen)
		coverage := Coverage(agg.covered, size)
		if opts.List {
			res.Details = append(res.Details, QueryDetail{
				Query:    agg.query,
				Identity: identity,
				Coverage: coverage,
			})
		}
		if identity > float64(opts.MinIdentity) && coverage > float64(opts.MinCoverage) {
			res.Valid++
		}
		res.identity.record(agg)
		res.coverage.record(agg, size)
	}
	return res, nil
}

// WriteList writes one tab-separated "query identity coverage" line per
// Details entry.
func (r *ESTResult) WriteList(w io.Writer) {
	for _, d := range r.Details {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\n", d.Query, d.Identity, d.Coverage)
	}
}

// WriteSummary writes the human-readable summary.
func (r *ESTResult) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "Cutoff: %d%% identity, %d%% coverage\n", r.MinIdentity, r.MinCoverage)
	fmt.Fprintf(w, "Identity: %d mismatches, %d gaps, %d aligned bases\n",
		r.identity.mismatches, r.identity.gaps, r.identity.alignLen)
	fmt.Fprintf(w, "Total mapped: %d (%s of %d)\n", r.Mapped, percent(r.Mapped, r.TotalQueries), r.TotalQueries)
	fmt.Fprintf(w, "Total valid: %d (%s of %d)\n", r.Valid, percent(r.Valid, r.TotalQueries), r.TotalQueries)
	fmt.Fprintf(w, "Overall identity: %.1f%%\n", r.identity.identity())
	fmt.Fprintf(w, "Coverage: %d bases covered, %d bases in mapped queries\n",
		r.coverage.covered, r.coverage.querySize)
	fmt.Fprintf(w, "Coverage: %.1f%%\n", r.coverage.coverage())
}

func percent(count, total int) string {
	if total == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", float64(count)*100/float64(total))
}
