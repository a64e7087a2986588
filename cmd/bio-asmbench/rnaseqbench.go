package main

import (
	"context"
	"io"

	"github.com/grailbio/asmbench/benchmark"
	"github.com/grailbio/asmbench/encoding/fasta"
	"github.com/grailbio/asmbench/supermap"
)

func rnaseqbench(ctx context.Context, blastPath, fastaPath string, opts benchmark.Opts, summary io.Writer) error {
	queryHits, err := supermap.Load(ctx, blastPath, supermap.Query, supermap.FileCache{})
	if err != nil {
		return err
	}
	refHits, err := supermap.Load(ctx, blastPath, supermap.Ref, supermap.FileCache{})
	if err != nil {
		return err
	}
	sizes, err := fasta.ReadSizes(ctx, fastaPath)
	if err != nil {
		return err
	}
	res, err := benchmark.RNASeqBench(queryHits, refHits, sizes, opts)
	if err != nil {
		return err
	}
	res.RefSet = fastaPath
	res.WriteSummary(summary)
	return nil
}
