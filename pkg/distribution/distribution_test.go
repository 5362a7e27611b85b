package distribution

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/optable/bucketstat/pkg/strategy"
	"github.com/optable/bucketstat/pkg/table"
	"github.com/optable/bucketstat/test/vectors"
)

func fill(t *testing.T, c strategy.Config, n int) *table.Table {
	t.Helper()
	s, err := strategy.New(c)
	if err != nil {
		t.Fatal(err)
	}
	tbl := table.New(s)
	d := s.Dimensions()
	if d == 0 {
		d = 3
	}
	for v := range vectors.Mix(vectors.Common(n/10, d, 1, true), n-n/10, d, 2, true) {
		if err := tbl.Insert(v); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

func TestScatterSorted(t *testing.T) {
	configs := []strategy.Config{
		{Kind: strategy.KindMixing, Buckets: 1000},
		{Kind: strategy.KindProjection, HashSize: 6, Dimensions: 3},
	}
	for _, c := range configs {
		tbl := fill(t, c, 2000)
		pts := Scatter(tbl)
		if len(pts) != tbl.BucketCount() {
			t.Fatalf("%s: want %d points, got %d", tbl.Kind(), tbl.BucketCount(), len(pts))
		}
		for i := 1; i < len(pts); i++ {
			if pts[i-1].ID.Compare(pts[i].ID) >= 0 {
				t.Fatalf("%s: points %d and %d out of order: %v, %v", tbl.Kind(), i-1, i, pts[i-1].ID, pts[i].ID)
			}
		}
	}
}

func TestScatterBitStringOrder(t *testing.T) {
	tbl := fill(t, strategy.Config{Kind: strategy.KindProjection, HashSize: 4, Dimensions: 3}, 500)
	pts := Scatter(tbl)
	for i := 1; i < len(pts); i++ {
		if pts[i-1].ID.String() >= pts[i].ID.String() {
			t.Fatalf("bit strings out of lexicographic order: %s, %s", pts[i-1].ID, pts[i].ID)
		}
	}
}

func TestHistogramRoundTrip(t *testing.T) {
	tbl := fill(t, strategy.Config{Kind: strategy.KindDigest, Buckets: 300}, 3000)
	bars := Histogram(tbl)

	var inserts, buckets uint64
	for i, b := range bars {
		if i > 0 && bars[i-1].Count >= b.Count {
			t.Fatalf("bars out of order: %d then %d", bars[i-1].Count, b.Count)
		}
		inserts += b.Count * b.Buckets
		buckets += b.Buckets
	}
	if inserts != tbl.TotalInserts() {
		t.Fatalf("histogram accounts for %d inserts, want %d", inserts, tbl.TotalInserts())
	}
	if buckets != uint64(tbl.BucketCount()) {
		t.Fatalf("histogram accounts for %d buckets, want %d", buckets, tbl.BucketCount())
	}
}

func TestTextSink(t *testing.T) {
	s, _ := strategy.NewIdentity(10, 1)
	tbl := table.New(s)
	for _, p := range []float64{3, 1, 3, 7, 3, 1} {
		tbl.Insert(strategy.Vector{p})
	}

	sink := TextSink{Dir: t.TempDir()}
	if err := Export(sink, tbl, "unit"); err != nil {
		t.Fatal(err)
	}

	exportTests := []struct {
		view string
		want string
	}{
		{"scatter", "1 : 2\n3 : 3\n7 : 1\n"},
		{"bar", "1 : 1\n2 : 1\n3 : 1\n"},
	}
	for _, tt := range exportTests {
		path := sink.Path(tt.view, "identity", "unit")
		if !strings.HasSuffix(path, tt.view+"_identity_unit.txt") {
			t.Fatalf("unexpected file name %s", path)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != tt.want {
			t.Errorf("%s: want %q, got %q", tt.view, tt.want, string(got))
		}
	}
}

type failingSink struct{}

var errSink = errors.New("sink failed")

func (failingSink) WriteScatter(string, string, []Point) error { return errSink }
func (failingSink) WriteHistogram(string, string, []Bar) error { return nil }

func TestExportPropagatesSinkErrors(t *testing.T) {
	s, _ := strategy.NewIdentity(10, 1)
	tbl := table.New(s)
	tbl.Insert(strategy.Vector{1})
	if err := Export(failingSink{}, tbl, "x"); !errors.Is(err, errSink) {
		t.Fatalf("want errSink, got %v", err)
	}
	if err := Export(TextSink{Dir: "/nonexistent/dir"}, tbl, "x"); err == nil {
		t.Fatalf("want an error writing to a missing directory")
	}
}
