package blast

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

const hits = `EST001	scaffold_1	98.86	350	3	1	1	350	10250	10599	2e-57	212.0
EST001	scaffold_1	97.50	120	2	1	431	550	10800	10919	3e-21	88.5
EST002	scaffold_4	100.00	500	0	0	500	1	20499	20000	0	990.1
`

func stringScanner(s string) *Scanner {
	return NewScanner(strings.NewReader(s))
}

func scanErr(s string) error {
	scan := stringScanner(s)
	var rec Record
	for scan.Scan(&rec) {
	}
	return scan.Err()
}

func TestScanner(t *testing.T) {
	s := stringScanner(hits)
	var rec Record
	if !s.Scan(&rec) {
		t.Fatal(s.Err())
	}
	expect.EQ(t, rec, Record{
		Query:     "EST001",
		Subject:   "scaffold_1",
		PctID:     98.86,
		HitLen:    350,
		NMismatch: 3,
		NGaps:     1,
		QStart:    1,
		QStop:     350,
		SStart:    10250,
		SStop:     10599,
		EValue:    2e-57,
		BitScore:  212.0,
	})
	var n int
	for s.Scan(&rec) {
		n++
	}
	expect.EQ(t, n, 2)
	expect.NoError(t, s.Err())
}

func TestScannerSkipsCommentsAndBlanks(t *testing.T) {
	in := "# BLASTN 2.2.26\n# Query: EST002\n\n" + hits
	recs, err := ReadAll(strings.NewReader(in))
	expect.NoError(t, err)
	expect.EQ(t, len(recs), 3)
}

func TestScannerErrors(t *testing.T) {
	err := scanErr("EST001\tscaffold_1\t98.86\n")
	assert.NotNil(t, err)
	assert.HasSubstr(t, err.Error(), "want 12")

	err = scanErr(strings.Replace(hits, "350\t3", "x\t3", 1))
	assert.NotNil(t, err)
	assert.HasSubstr(t, err.Error(), "bad integer")

	err = scanErr(hits + "EST003\tscaffold_9\n")
	assert.NotNil(t, err)
	assert.HasSubstr(t, err.Error(), "line 4")
}

func TestSpans(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(hits))
	assert.NoError(t, err)

	start, stop := recs[0].QuerySpan()
	expect.EQ(t, start, 1)
	expect.EQ(t, stop, 350)

	// The third hit is on the minus strand on both axes.
	start, stop = recs[2].QuerySpan()
	expect.EQ(t, start, 1)
	expect.EQ(t, stop, 500)
	start, stop = recs[2].SubjectSpan()
	expect.EQ(t, start, 20000)
	expect.EQ(t, stop, 20499)
}

func TestWriterRoundTrip(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(hits))
	assert.NoError(t, err)
	b := new(bytes.Buffer)
	w := NewWriter(b)
	for i := range recs {
		assert.NoError(t, w.Write(&recs[i]))
	}
	assert.NoError(t, w.Flush())
	expect.EQ(t, b.String(), hits)
}

func TestReadFile(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	plain := filepath.Join(tempDir, "hits.blast")
	assert.NoError(t, ioutil.WriteFile(plain, []byte(hits), 0644))

	gzPath := filepath.Join(tempDir, "hits.blast.gz")
	f, err := os.Create(gzPath)
	assert.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(hits))
	assert.NoError(t, err)
	assert.NoError(t, gz.Close())
	assert.NoError(t, f.Close())

	want, err := ReadAll(strings.NewReader(hits))
	assert.NoError(t, err)
	for _, path := range []string{plain, gzPath} {
		recs, err := ReadFile(ctx, path)
		assert.NoError(t, err)
		expect.EQ(t, recs, want)
	}

	_, err = ReadFile(ctx, filepath.Join(tempDir, "nonexistent.blast"))
	expect.NotNil(t, err)
}
