package benchmark

// Identity returns the identity percentage of an alignment aggregate:
// 100 minus the combined mismatch and gap rate over the aligned length.
// A zero aligned length yields 0 instead of a division failure; a query
// can legitimately have no informative aligned bases in pathological
// inputs and still be reported.
func Identity(mismatches, gaps, alignLen int) float64 {
	if alignLen == 0 {
		return 0
	}
	return 100 - float64(mismatches+gaps)*100/float64(alignLen)
}

// Coverage returns covered as a percentage of total.  A zero total
// yields 0.  The total is expected to come from a size table lookup,
// which fails loudly on unknown sequence ids before this point, so a
// zero here means a genuinely empty sequence rather than a missed
// lookup.
func Coverage(covered, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(covered) * 100 / float64(total)
}
