package benchmark

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/asmbench/encoding/blast"
	"github.com/grailbio/asmbench/encoding/fasta"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func parseHits(t *testing.T, data string) []blast.Record {
	recs, err := blast.ReadAll(strings.NewReader(data))
	assert.NoError(t, err)
	return recs
}

// testSizes plants a precomputed index next to a FASTA path that does
// not exist, so ReadSizes must take the indexed path.
func testSizes(t *testing.T, dir, fai string) *fasta.Sizes {
	fastaPath := filepath.Join(dir, "ref.fasta")
	assert.NoError(t, ioutil.WriteFile(fastaPath+".fai", []byte(fai), 0644))
	sizes, err := fasta.ReadSizes(vcontext.Background(), fastaPath)
	assert.NoError(t, err)
	return sizes
}

const estHits = `est1	chr1	95.00	60	2	1	1	60	1000	1059	1e-20	100.0
est1	chr1	100.00	40	0	0	61	100	1100	1139	1e-10	80.0
est2	chr2	90.00	100	10	0	1	100	5000	5099	1e-30	120.0
`

const estFai = "est1\t100\t0\t60\t61\n" +
	"est2\t200\t62\t60\t61\n" +
	"est3\t150\t130\t60\t61\n"

func TestESTSummary(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	sizes := testSizes(t, tempDir, estFai)

	opts := DefaultOpts
	opts.List = true
	res, err := ESTSummary(parseHits(t, estHits), sizes, opts)
	assert.NoError(t, err)
	expect.EQ(t, res.TotalQueries, 3)
	expect.EQ(t, res.Mapped, 2)
	expect.EQ(t, res.Valid, 1)
	expect.EQ(t, res.Details, []QueryDetail{
		{Query: "est1", Identity: 97.0, Coverage: 100.0},
		{Query: "est2", Identity: 90.0, Coverage: 50.0},
	})

	var list bytes.Buffer
	res.WriteList(&list)
	expect.EQ(t, list.String(), "est1\t97.0\t100.0\nest2\t90.0\t50.0\n")

	var summary bytes.Buffer
	res.WriteSummary(&summary)
	expect.EQ(t, summary.String(),
		"Cutoff: 95% identity, 90% coverage\n"+
			"Identity: 12 mismatches, 1 gaps, 200 aligned bases\n"+
			"Total mapped: 2 (66.7% of 3)\n"+
			"Total valid: 1 (33.3% of 3)\n"+
			"Overall identity: 93.5%\n"+
			"Coverage: 200 bases covered, 300 bases in mapped queries\n"+
			"Coverage: 66.7%\n")
}

func TestESTSummaryNoList(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	sizes := testSizes(t, tempDir, estFai)

	res, err := ESTSummary(parseHits(t, estHits), sizes, DefaultOpts)
	assert.NoError(t, err)
	expect.EQ(t, res.Mapped, 2)
	expect.EQ(t, res.Valid, 1)
	expect.EQ(t, len(res.Details), 0)
}

func TestESTSummaryNoHits(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	sizes := testSizes(t, tempDir, estFai)

	res, err := ESTSummary(nil, sizes, DefaultOpts)
	assert.NoError(t, err)
	expect.EQ(t, res.TotalQueries, 3)
	expect.EQ(t, res.Mapped, 0)
	expect.EQ(t, res.Valid, 0)

	var summary bytes.Buffer
	res.WriteSummary(&summary)
	expect.EQ(t, summary.String(),
		"Cutoff: 95% identity, 90% coverage\n"+
			"Identity: 0 mismatches, 0 gaps, 0 aligned bases\n"+
			"Total mapped: 0 (0.0% of 3)\n"+
			"Total valid: 0 (0.0% of 3)\n"+
			"Overall identity: 0.0%\n"+
			"Coverage: 0 bases covered, 0 bases in mapped queries\n"+
			"Coverage: 0.0%\n")
}

func TestESTSummaryUnknownQuery(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	sizes := testSizes(t, tempDir, estFai)

	_, err := ESTSummary(parseHits(t, "mystery\tchr1\t95.00\t50\t0\t0\t1\t50\t1\t50\t1e-10\t25.0\n"), sizes, DefaultOpts)
	assert.NotNil(t, err)
	assert.HasSubstr(t, err.Error(), "sequence not found: mystery")
}

func TestESTSummaryOverlappingHits(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	sizes := testSizes(t, tempDir, "est4\t100\t0\t60\t61\n")

	// The hits overlap on the query: [1,80] and [21,100] sum to 160
	// covered bases against a length of 100.  Raw hits are not redundancy
	// filtered, so coverage past 100% is reported as is.
	hits := `est4	chr1	100.00	80	0	0	1	80	1	80	1e-20	50.0
est4	chr1	100.00	80	0	0	21	100	101	180	1e-20	50.0
`
	opts := DefaultOpts
	opts.List = true
	res, err := ESTSummary(parseHits(t, hits), sizes, opts)
	assert.NoError(t, err)
	expect.EQ(t, res.Details, []QueryDetail{{Query: "est4", Identity: 100.0, Coverage: 160.0}})
	expect.EQ(t, res.Valid, 1)
}

func TestESTSummaryZeroAlignLen(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	sizes := testSizes(t, tempDir, "est5\t50\t0\t60\t61\n")

	opts := DefaultOpts
	opts.List = true
	res, err := ESTSummary(parseHits(t, "est5\tchr1\t0.00\t0\t0\t0\t1\t50\t1\t50\t1e-05\t10.0\n"), sizes, opts)
	assert.NoError(t, err)
	expect.EQ(t, res.Details, []QueryDetail{{Query: "est5", Identity: 0.0, Coverage: 100.0}})
	expect.EQ(t, res.Valid, 0)
}

func TestPercent(t *testing.T) {
	expect.EQ(t, percent(1, 4), "25.0%")
	expect.EQ(t, percent(0, 3), "0.0%")
	expect.EQ(t, percent(2, 3), "66.7%")
	expect.EQ(t, percent(2, 0), "N/A")
}
