package main

// bio-asmbench scores a de-novo assembly against a known sequence set
// using precomputed BLAST tabular (-m 8) hits.
//
// Example 1: report how completely an EST set maps to an assembly.
//
//    bio-asmbench estsummary -list est.blast est.fasta
//
// Example 2: score an RNA-seq assembly against a reference gene set.
//
//    bio-asmbench rnaseqbench contigs.blast genes.fasta

import (
	"os"

	"github.com/grailbio/asmbench/benchmark"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"
)

func newCmdEstsummary() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "estsummary",
		Short:    "Report how completely a query set maps to an assembly",
		ArgsName: "blastpath fastapath",
	}
	opts := benchmark.DefaultOpts
	cmd.Flags.IntVar(&opts.MinIdentity, "iden", opts.MinIdentity,
		"Identity percentage a query must exceed for its mapping to be valid")
	cmd.Flags.IntVar(&opts.MinCoverage, "cov", opts.MinCoverage,
		"Coverage percentage a query must exceed for its mapping to be valid")
	cmd.Flags.BoolVar(&opts.List, "list", false,
		"Write one query/identity/coverage line per mapped query to stdout")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return env.UsageErrorf("estsummary takes blastpath fastapath, but got %v", argv)
		}
		return estsummary(vcontext.Background(), argv[0], argv[1], opts, os.Stdout, os.Stderr)
	})
	return cmd
}

func newCmdRnaseqbench() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "rnaseqbench",
		Short:    "Score an RNA-seq assembly against a reference gene set",
		ArgsName: "blastpath fastapath",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return env.UsageErrorf("rnaseqbench takes blastpath fastapath, but got %v", argv)
		}
		return rnaseqbench(vcontext.Background(), argv[0], argv[1], benchmark.DefaultOpts, os.Stderr)
	})
	return cmd
}

func main() {
	shutdown := grail.Init()
	defer shutdown()
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-asmbench",
			Short:    "Benchmark de-novo assemblies against known sequence sets",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdEstsummary(),
				newCmdRnaseqbench(),
			},
		})
}
