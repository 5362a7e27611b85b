package strategy

import (
	"fmt"
	"math/big"

	"github.com/bits-and-blooms/bitset"
	"github.com/optable/bucketstat/internal/prg"
)

// Projection is a locality sensitive hash. It draws hashSize random
// hyperplanes with standard normal coordinates and emits one bit per
// hyperplane, 1 when the vector lies on its positive side.
type Projection struct {
	size   int
	dims   int
	planes [][]float64
}

// NewProjection returns a Projection strategy producing hashSize bit IDs
// for vectors of dims dimensions. The hyperplane matrix is drawn row by row
// from a generator seeded with seed.
func NewProjection(hashSize, dims int, seed uint64) (*Projection, error) {
	if hashSize <= 0 {
		return nil, fmt.Errorf("%w: hash size %d must be positive", ErrInvalidConfiguration, hashSize)
	}
	if dims <= 0 {
		return nil, fmt.Errorf("%w: dimensions %d must be positive", ErrInvalidConfiguration, dims)
	}

	rng := prg.New(seed)
	planes := make([][]float64, hashSize)
	for i := range planes {
		planes[i] = make([]float64, dims)
		for j := range planes[i] {
			planes[i][j] = rng.NormFloat64()
		}
	}

	return &Projection{size: hashSize, dims: dims, planes: planes}, nil
}

// Projections returns a copy of the hashSize x dims hyperplane matrix.
func (p *Projection) Projections() [][]float64 {
	out := make([][]float64, len(p.planes))
	for i, plane := range p.planes {
		out[i] = append([]float64(nil), plane...)
	}
	return out
}

// Signs returns the hyperplane sign bits of v, bit i set when v lies on
// the positive side of hyperplane i.
func (p *Projection) Signs(v Vector) (*bitset.BitSet, error) {
	if err := checkDimensions(p.dims, v); err != nil {
		return nil, err
	}

	signs := bitset.New(uint(p.size))
	for i, plane := range p.planes {
		var dot float64
		for j, x := range v {
			dot += x * plane[j]
		}
		if dot > 0 {
			signs.Set(uint(i))
		}
	}
	return signs, nil
}

func (p *Projection) Hash(v Vector) (ID, error) {
	signs, err := p.Signs(v)
	if err != nil {
		return ID{}, err
	}

	bits := make([]byte, p.size)
	for i := range bits {
		if signs.Test(uint(i)) {
			bits[i] = '1'
		} else {
			bits[i] = '0'
		}
	}
	return Bits(string(bits)), nil
}

// Capacity is 2^hashSize.
func (p *Projection) Capacity() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(p.size))
}

func (p *Projection) HashSize() int   { return p.size }
func (p *Projection) Dimensions() int { return p.dims }
func (p *Projection) Kind() string    { return "lsh" }
