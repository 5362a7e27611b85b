package collision

import (
	"fmt"
	"math"

	"github.com/optable/bucketstat/pkg/strategy"
	"github.com/optable/bucketstat/pkg/table"
)

// PredictionStats reports how many predicted positions share a bucket.
type PredictionStats struct {
	N          int
	Buckets    int
	Unique     int
	Collisions int
	Ratio      float64
}

// Predictions bucketizes the positions predicted by a learned index into
// int(N/loadFactor) buckets and counts the predictions that share a key
// with an earlier one. Normalized predictions are positions in [0, N) and
// are keyed by int(p/loadFactor); otherwise they are fractions in [0, 1)
// and are keyed by int(buckets*p). Keys are counted as computed, so
// predictions outside the expected range never merge with in range ones.
func Predictions(preds []float64, loadFactor float64, normalized bool) (PredictionStats, error) {
	if len(preds) == 0 {
		return PredictionStats{}, ErrEmptyTable
	}
	if !(loadFactor > 0) || math.IsInf(loadFactor, 0) {
		return PredictionStats{}, fmt.Errorf("%w: load factor %v must be positive and finite", strategy.ErrInvalidConfiguration, loadFactor)
	}

	n := len(preds)
	buckets := int(float64(n) / loadFactor)

	// the identity capacity is never reported, it only has to stay
	// positive when int(N/loadFactor) is 0
	var (
		s   *strategy.Identity
		err error
	)
	if normalized {
		s, err = strategy.NewIdentityLoadFactor(max(buckets, 1), loadFactor)
	} else {
		s, err = strategy.NewIdentity(max(buckets, 1), float64(buckets))
	}
	if err != nil {
		return PredictionStats{}, err
	}
	t := table.New(s)
	for _, p := range preds {
		if err := t.Insert(strategy.Vector{p}); err != nil {
			return PredictionStats{}, err
		}
	}

	unique := t.BucketCount()
	return PredictionStats{
		N:          n,
		Buckets:    buckets,
		Unique:     unique,
		Collisions: n - unique,
		Ratio:      float64(n-unique) / float64(n),
	}, nil
}
