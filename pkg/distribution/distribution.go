// Package distribution turns a populated bucket table into report ready
// views and hands them to a reporting sink.
package distribution

import (
	"cmp"
	"slices"

	"github.com/optable/bucketstat/pkg/strategy"
)

// Source is the read only view of a bucket table the exporter needs.
type Source interface {
	Counts(fn func(id strategy.ID, count uint64))
	Kind() string
}

// Point is one bucket and its count.
type Point struct {
	ID    strategy.ID
	Count uint64
}

// Bar is the number of buckets holding exactly Count items.
type Bar struct {
	Count   uint64
	Buckets uint64
}

// Scatter returns every populated bucket sorted by ID.
func Scatter(t Source) []Point {
	var pts []Point
	t.Counts(func(id strategy.ID, count uint64) {
		pts = append(pts, Point{ID: id, Count: count})
	})
	slices.SortFunc(pts, func(a, b Point) int {
		return a.ID.Compare(b.ID)
	})
	return pts
}

// Histogram returns, for every count value present in t, how many buckets
// hold exactly that count, sorted by count value.
func Histogram(t Source) []Bar {
	bars := make(map[uint64]uint64)
	t.Counts(func(_ strategy.ID, count uint64) {
		bars[count]++
	})

	out := make([]Bar, 0, len(bars))
	for count, n := range bars {
		out = append(out, Bar{Count: count, Buckets: n})
	}
	slices.SortFunc(out, func(a, b Bar) int {
		return cmp.Compare(a.Count, b.Count)
	})
	return out
}

// Sink renders views. Implementations own serialization and naming.
type Sink interface {
	WriteScatter(kind, name string, pts []Point) error
	WriteHistogram(kind, name string, bars []Bar) error
}

// Export writes both views of t to sink under name.
func Export(sink Sink, t Source, name string) error {
	if err := sink.WriteScatter(t.Kind(), name, Scatter(t)); err != nil {
		return err
	}
	return sink.WriteHistogram(t.Kind(), name, Histogram(t))
}
