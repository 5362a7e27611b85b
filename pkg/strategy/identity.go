package strategy

import (
	"fmt"
	"math"
	"math/big"
)

// Identity buckets one dimensional vectors holding an already computed
// position, such as the prediction of a learned index. The key of a
// position p is p / loadFactor, or p * scale, truncated toward zero. Keys
// are not reduced into the bucket range: a position outside it keeps a
// key of its own, negative positions included.
type Identity struct {
	buckets    int
	scale      float64
	loadFactor float64
}

// NewIdentity returns an Identity strategy over buckets buckets keying
// positions by p * scale.
func NewIdentity(buckets int, scale float64) (*Identity, error) {
	if buckets <= 0 {
		return nil, fmt.Errorf("%w: bucket count %d must be positive", ErrInvalidConfiguration, buckets)
	}
	if !(scale >= 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: scale %v must be non negative and finite", ErrInvalidConfiguration, scale)
	}

	return &Identity{buckets: buckets, scale: scale}, nil
}

// NewIdentityLoadFactor returns an Identity strategy over buckets buckets
// keying positions by p / loadFactor.
func NewIdentityLoadFactor(buckets int, loadFactor float64) (*Identity, error) {
	if buckets <= 0 {
		return nil, fmt.Errorf("%w: bucket count %d must be positive", ErrInvalidConfiguration, buckets)
	}
	if !(loadFactor > 0) || math.IsInf(loadFactor, 0) {
		return nil, fmt.Errorf("%w: load factor %v must be positive and finite", ErrInvalidConfiguration, loadFactor)
	}

	return &Identity{buckets: buckets, loadFactor: loadFactor}, nil
}

func (s *Identity) Hash(v Vector) (ID, error) {
	if err := checkDimensions(1, v); err != nil {
		return ID{}, err
	}

	p := v[0]
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ID{}, fmt.Errorf("%w: position %v", ErrNonFinite, p)
	}
	var x float64
	if s.loadFactor > 0 {
		x = math.Trunc(p / s.loadFactor)
	} else {
		x = math.Trunc(p * s.scale)
	}
	// int64 conversion is undefined past ±2^63
	if math.IsInf(x, 0) || x >= 1<<63 || x < -(1<<63) {
		return ID{}, fmt.Errorf("%w: key of position %v outside the int64 range", ErrNonFinite, p)
	}
	return Signed(int64(x)), nil
}

func (s *Identity) Capacity() *big.Int { return big.NewInt(int64(s.buckets)) }
func (s *Identity) Dimensions() int    { return 1 }
func (s *Identity) Kind() string       { return "identity" }
