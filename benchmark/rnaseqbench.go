package benchmark

import (
	"fmt"
	"io"

	"github.com/grailbio/asmbench/encoding/blast"
	"github.com/grailbio/asmbench/encoding/fasta"
	"github.com/grailbio/asmbench/interval"
)

// RNASeqResult summarizes contig contiguity and reference completeness
// for an RNA-seq assembly.  The metric bands follow Martin et al. 2010
// (the Rnnotator paper): a sequence is well covered when hits span at
// least WellCoveredRatio of the reference length and partially covered
// at PartialCoveredRatio.
type RNASeqResult struct {
	// RefSet is the display name of the reference set, normally the FASTA
	// path the size table came from.
	RefSet       string
	KnownRefs    int
	WellRatio    float64
	PartialRatio float64
	// WellCoveredContigs and PartialCoveredContigs count contigs whose
	// hits to some single reference sequence reach the respective band.
	WellCoveredContigs    int
	PartialCoveredContigs int
	// WellCoveredRefs and PartialCoveredRefs count reference sequences
	// reaching the bands, pooling hits from all contigs.
	WellCoveredRefs    int
	PartialCoveredRefs int
	// Chimeras counts contigs whose filtered hits still touch two or more
	// distinct reference sequences.
	Chimeras int
}

// RNASeqBench classifies an RNA-seq assembly against a reference gene
// set.  queryFiltered must hold the query-direction non-redundant hits
// and refFiltered the subject-direction ones; aggregating raw unfiltered
// hits here would overstate both coverage and chimerism, so the caller
// is expected to run both through the redundancy filter first.  Every
// subject id must resolve in sizes.
func RNASeqBench(queryFiltered, refFiltered []blast.Record, sizes *fasta.Sizes, opts Opts) (RNASeqResult, error) {
	res := RNASeqResult{
		KnownRefs:    sizes.NumSeqs(),
		WellRatio:    opts.WellCoveredRatio,
		PartialRatio: opts.PartialCoveredRatio,
	}
	well, partial, chimeras, err := contigBands(queryFiltered, sizes, opts)
	if err != nil {
		return RNASeqResult{}, err
	}
	res.WellCoveredContigs = len(well)
	res.PartialCoveredContigs = len(partial)
	res.Chimeras = chimeras

	rwell, rpartial, err := refBands(refFiltered, sizes, opts)
	if err != nil {
		return RNASeqResult{}, err
	}
	res.WellCoveredRefs = len(rwell)
	res.PartialCoveredRefs = len(rpartial)
	return res, nil
}

// contigBands groups hits by contig and classifies each contig by its
// best-covered reference sequence.  The bands are evaluated per
// (contig, subject) pair: a contig enters a band as soon as any one
// subject's covered fraction reaches it.  A contig with hits to more
// than one distinct subject is a chimera regardless of the bands.
func contigBands(recs []blast.Record, sizes *fasta.Sizes, opts Opts) (well, partial map[string]bool, chimeras int, err error) {
	perContig := make(map[string]map[string][]interval.Span)
	for _, rec := range recs {
		bySubject := perContig[rec.Query]
		if bySubject == nil {
			bySubject = make(map[string][]interval.Span)
			perContig[rec.Query] = bySubject
		}
		start, stop := rec.SubjectSpan()
		bySubject[rec.Subject] = append(bySubject[rec.Subject], interval.Span{Start: start, Stop: stop})
	}

	well = make(map[string]bool)
	partial = make(map[string]bool)
	for contig, bySubject := range perContig {
		if len(bySubject) > 1 {
			chimeras++
		}
		for subject, spans := range bySubject {
			size, e := sizes.Len(subject)
			if e != nil {
				return nil, nil, 0, e
			}
			ratio := Coverage(interval.UnionLength(spans), size)
			if ratio >= opts.WellCoveredRatio {
				well[contig] = true
			}
			if ratio >= opts.PartialCoveredRatio {
				partial[contig] = true
			}
		}
	}
	return well, partial, chimeras, nil
}

// refBands classifies each reference sequence by the bases its hits
// cover, pooled over every record regardless of contig.
func refBands(recs []blast.Record, sizes *fasta.Sizes, opts Opts) (well, partial map[string]bool, err error) {
	well = make(map[string]bool)
	partial = make(map[string]bool)
	for subject, spans := range subjectSpans(recs) {
		size, e := sizes.Len(subject)
		if e != nil {
			return nil, nil, e
		}
		ratio := Coverage(interval.UnionLength(spans), size)
		if ratio >= opts.WellCoveredRatio {
			well[subject] = true
		}
		if ratio >= opts.PartialCoveredRatio {
			partial[subject] = true
		}
	}
	return well, partial, nil
}

// WriteSummary writes the human-readable summary.
func (r *RNASeqResult) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "Reference set: `%s`, %d transcripts\n", r.RefSet, r.KnownRefs)
	fmt.Fprintf(w, "A total of %d contigs map to >=%g%% of a reference transcript\n",
		r.WellCoveredContigs, r.WellRatio)
	fmt.Fprintf(w, "A total of %d contigs map to >=%g%% of a reference transcript\n",
		r.PartialCoveredContigs, r.PartialRatio)
	fmt.Fprintf(w, "A total of %d reference transcripts (%s) are covered to >=%g%%\n",
		r.WellCoveredRefs, percent(r.WellCoveredRefs, r.KnownRefs), r.WellRatio)
	fmt.Fprintf(w, "A total of %d reference transcripts (%s) are covered to >=%g%%\n",
		r.PartialCoveredRefs, percent(r.PartialCoveredRefs, r.KnownRefs), r.PartialRatio)
	fmt.Fprintf(w, "Chimeras: %d\n", r.Chimeras)
}
