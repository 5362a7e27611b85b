// Package table accumulates bucket occupancy counts for vectors hashed by a
// strategy.
package table

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-logr/logr"
	"github.com/optable/bucketstat/pkg/strategy"
)

var (
	ErrIncompatible = errors.New("table: tables do not share a strategy")
	ErrNoDistinct   = errors.New("table: distinct tracking is not enabled")
)

// Table maps bucket IDs to occupancy counts. Buckets are created on their
// first insert, so every stored count is at least 1 and the counts sum to
// the number of inserts.
//
// A Table is not safe for concurrent use; see Sharded.
type Table struct {
	s        strategy.Strategy
	counts   map[strategy.ID]uint64
	inserts  uint64
	dims     int
	distinct *bloom.BloomFilter
	logger   logr.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithDistinct tracks the inserted vectors themselves in a bloom filter
// sized for expected vectors at false positive rate fpRate, so that the
// number of distinct inputs can be estimated next to the bucket counts.
func WithDistinct(expected uint, fpRate float64) Option {
	return func(t *Table) {
		t.distinct = bloom.NewWithEstimates(expected, fpRate)
	}
}

// WithLogger sets the logger used to trace inserts at verbosity 2.
func WithLogger(logger logr.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// New returns an empty Table over s.
func New(s strategy.Strategy, opts ...Option) *Table {
	t := &Table{
		s:      s,
		counts: make(map[strategy.ID]uint64),
		dims:   s.Dimensions(),
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// hash checks the vector length against the table dimensionality and
// hashes v. Tables over strategies that accept any length adopt the length
// of the first inserted vector.
func (t *Table) hash(v strategy.Vector) (strategy.ID, error) {
	if t.dims > 0 && len(v) != t.dims {
		return strategy.ID{}, &strategy.DimensionError{Want: t.dims, Got: len(v)}
	}
	return t.s.Hash(v)
}

// Insert hashes v and increments the count of its bucket.
func (t *Table) Insert(v strategy.Vector) error {
	id, err := t.hash(v)
	if err != nil {
		return err
	}
	if t.dims == 0 {
		t.dims = len(v)
	}

	t.counts[id]++
	t.inserts++
	if t.distinct != nil {
		t.distinct.Add(v.Bytes())
	}
	t.logger.V(2).Info("inserted", "bucket", id.String(), "count", t.counts[id])

	return nil
}

// Lookup returns the count of the bucket v hashes to, 0 when that bucket
// was never populated. Distinct vectors sharing a bucket share its count.
func (t *Table) Lookup(v strategy.Vector) (uint64, error) {
	id, err := t.hash(v)
	if err != nil {
		return 0, err
	}
	return t.counts[id], nil
}

// BucketCount returns the number of buckets holding at least one insert.
func (t *Table) BucketCount() int {
	return len(t.counts)
}

// TotalInserts returns the number of successful inserts.
func (t *Table) TotalInserts() uint64 {
	return t.inserts
}

// DistinctInserts estimates the number of distinct vectors inserted.
func (t *Table) DistinctInserts() (uint64, error) {
	if t.distinct == nil {
		return 0, ErrNoDistinct
	}
	return uint64(t.distinct.ApproximatedSize()), nil
}

// Counts calls fn for every populated bucket, in no particular order.
func (t *Table) Counts(fn func(id strategy.ID, count uint64)) {
	for id, n := range t.counts {
		fn(id, n)
	}
}

// Capacity returns the size of the strategy's output space.
func (t *Table) Capacity() *big.Int {
	return t.s.Capacity()
}

// Kind returns the strategy label.
func (t *Table) Kind() string {
	return t.s.Kind()
}

// Merge adds the counts of o into t. Both tables must be built over
// strategies of the same kind and capacity.
func (t *Table) Merge(o *Table) error {
	if t.s.Kind() != o.s.Kind() || t.s.Capacity().Cmp(o.s.Capacity()) != 0 {
		return fmt.Errorf("%w: %s over %v and %s over %v", ErrIncompatible,
			t.s.Kind(), t.s.Capacity(), o.s.Kind(), o.s.Capacity())
	}
	if t.dims != 0 && o.dims != 0 && t.dims != o.dims {
		return fmt.Errorf("%w: %d and %d dimensions", ErrIncompatible, t.dims, o.dims)
	}
	if (t.distinct == nil) != (o.distinct == nil) {
		return fmt.Errorf("%w: distinct tracking differs", ErrIncompatible)
	}
	if t.distinct != nil {
		if err := t.distinct.Merge(o.distinct); err != nil {
			return fmt.Errorf("%w: %v", ErrIncompatible, err)
		}
	}

	for id, n := range o.counts {
		t.counts[id] += n
	}
	t.inserts += o.inserts
	if t.dims == 0 {
		t.dims = o.dims
	}

	return nil
}
