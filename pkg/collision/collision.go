// Package collision derives collision statistics from populated bucket
// tables.
package collision

import (
	"errors"
	"math/big"

	"github.com/optable/bucketstat/pkg/strategy"
)

var ErrEmptyTable = errors.New("collision: table has no populated bucket")

// Counter is the read only view of a bucket table the analyzer needs.
type Counter interface {
	Counts(fn func(id strategy.ID, count uint64))
	BucketCount() int
	TotalInserts() uint64
	Capacity() *big.Int
}

// Stats summarises how a table's inserts spread over its buckets.
type Stats struct {
	Inserts uint64
	// Buckets is the number of populated buckets.
	Buckets uint64
	// Colliding is the number of buckets holding more than one insert.
	Colliding uint64
	// Collisions counts inserts that landed in an already populated
	// bucket, Inserts - Buckets.
	Collisions uint64
	// Capacity is the size of the bucket space, num_buckets or 2^hash_size.
	Capacity *big.Int

	CollisionRatePerUsedBucket float64
	CollisionRatePerCapacity   float64
	UtilizationRatio           float64

	MaxBucket strategy.ID
	MaxCount  uint64
}

// Analyze computes the statistics of t.
func Analyze(t Counter) (Stats, error) {
	if t.BucketCount() == 0 {
		return Stats{}, ErrEmptyTable
	}

	st := Stats{
		Inserts:  t.TotalInserts(),
		Buckets:  uint64(t.BucketCount()),
		Capacity: t.Capacity(),
	}
	t.Counts(func(id strategy.ID, count uint64) {
		if count > 1 {
			st.Colliding++
		}
		if count > st.MaxCount || (count == st.MaxCount && id.Compare(st.MaxBucket) < 0) {
			st.MaxBucket, st.MaxCount = id, count
		}
	})
	st.Collisions = st.Inserts - st.Buckets

	capacity, _ := new(big.Float).SetInt(st.Capacity).Float64()
	st.CollisionRatePerUsedBucket = float64(st.Colliding) / float64(st.Buckets)
	st.CollisionRatePerCapacity = float64(st.Colliding) / capacity
	st.UtilizationRatio = capacity / float64(st.Buckets)

	return st, nil
}
