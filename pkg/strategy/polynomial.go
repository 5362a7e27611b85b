package strategy

import (
	"fmt"
	"math"
	"math/big"

	"github.com/optable/bucketstat/internal/prg"
)

// DefaultPolynomialSeed is the seed of the coefficient generator when the
// caller does not pick one.
const DefaultPolynomialSeed = 137

// Polynomial evaluates sum_i coef^(D-i-1) * v[i] with a single random
// coefficient drawn at construction, and buckets |sum| modulo the bucket
// count.
//
// A zero coefficient is a legal draw. Every term but the last then
// vanishes (0^0 is 1), so buckets depend on the last coordinate only and
// collapse to bucket 0 whenever it is 0. This is how the scheme behaves,
// not an error.
type Polynomial struct {
	buckets int
	dims    int
	coef    float64
}

// NewPolynomial returns a Polynomial strategy over dims dimensions whose
// coefficient is drawn uniformly from [0, buckets] by a generator seeded
// with seed.
func NewPolynomial(buckets, dims int, seed uint64) (*Polynomial, error) {
	if buckets <= 0 {
		return nil, fmt.Errorf("%w: bucket count %d must be positive", ErrInvalidConfiguration, buckets)
	}
	if dims <= 0 {
		return nil, fmt.Errorf("%w: dimensions %d must be positive", ErrInvalidConfiguration, dims)
	}

	rng := prg.New(seed)
	return &Polynomial{
		buckets: buckets,
		dims:    dims,
		coef:    float64(rng.IntN(buckets + 1)),
	}, nil
}

// Coefficient returns the coefficient drawn at construction.
func (p *Polynomial) Coefficient() int {
	return int(p.coef)
}

func (p *Polynomial) Hash(v Vector) (ID, error) {
	if err := checkDimensions(p.dims, v); err != nil {
		return ID{}, err
	}

	var num float64
	for i := 0; i < p.dims; i++ {
		num += math.Pow(p.coef, float64(p.dims-i-1)) * v[i]
	}
	if math.IsInf(num, 0) || math.IsNaN(num) {
		return ID{}, fmt.Errorf("%w: coefficient %d over %d dimensions", ErrNonFinite, int(p.coef), p.dims)
	}

	return Numeric(uint64(math.Mod(math.Abs(num), float64(p.buckets)))), nil
}

func (p *Polynomial) Capacity() *big.Int { return big.NewInt(int64(p.buckets)) }
func (p *Polynomial) Dimensions() int    { return p.dims }
func (p *Polynomial) Kind() string       { return "poly" }
