package main

import (
	"context"
	"io"

	"github.com/grailbio/asmbench/benchmark"
	"github.com/grailbio/asmbench/encoding/blast"
	"github.com/grailbio/asmbench/encoding/fasta"
	"github.com/grailbio/base/log"
)

func estsummary(ctx context.Context, blastPath, fastaPath string, opts benchmark.Opts, list, summary io.Writer) error {
	recs, err := blast.ReadFile(ctx, blastPath)
	if err != nil {
		return err
	}
	sizes, err := fasta.ReadSizes(ctx, fastaPath)
	if err != nil {
		return err
	}
	log.Debug.Printf("%s: %d hits, %d query sequences", blastPath, len(recs), sizes.NumSeqs())
	res, err := benchmark.ESTSummary(recs, sizes, opts)
	if err != nil {
		return err
	}
	if opts.List {
		res.WriteList(list)
	}
	res.WriteSummary(summary)
	return nil
}
