// Package benchmark evaluates de-novo assemblies against a known
// sequence set using precomputed alignment hits.  ESTSummary reports how
// completely a query set maps under identity and coverage cutoffs;
// RNASeqBench classifies contig contiguity, reference completeness, and
// chimerism over redundancy-filtered hits.
package benchmark

// Opts configures the classification thresholds.
type Opts struct {
	// MinIdentity is the identity percentage a query must strictly exceed
	// for its mapping to be called valid.
	MinIdentity int
	// MinCoverage is the coverage percentage a query must strictly exceed
	// for its mapping to be called valid.
	MinCoverage int
	// WellCoveredRatio is the covered percentage of a reference length at
	// or above which a sequence counts as well covered.
	WellCoveredRatio float64
	// PartialCoveredRatio is the covered percentage of a reference length
	// at or above which a sequence counts as partially covered.
	PartialCoveredRatio float64
	// List records a per-query identity/coverage detail line for every
	// mapped query.
	List bool
}

// DefaultOpts is the default option values.
var DefaultOpts = Opts{
	MinIdentity:         95,
	MinCoverage:         90,
	WellCoveredRatio:    80,
	PartialCoveredRatio: 50,
}
