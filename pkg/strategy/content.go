package strategy

import (
	"fmt"
	"math/big"

	"github.com/optable/bucketstat/internal/hash"
)

// DefaultMixingSeed is the seed the collision experiments have always used
// for murmur3.
const DefaultMixingSeed = 1

// MixingConfig configures a Mixing strategy.
type MixingConfig struct {
	Buckets int
	// Hasher is one of the hash.Murmur3 ... hash.XXH3 constants.
	Hasher int
	Seed   uint64
	Format Format
	// Dimensions, when positive, is enforced on every vector.
	Dimensions int
}

// Mixing hashes the canonical text of a vector with a seeded non
// cryptographic hash and reduces it modulo the bucket count.
type Mixing struct {
	c MixingConfig
	h hash.Hasher
}

// NewMixing returns a Mixing strategy.
func NewMixing(c MixingConfig) (*Mixing, error) {
	if c.Buckets <= 0 {
		return nil, fmt.Errorf("%w: bucket count %d must be positive", ErrInvalidConfiguration, c.Buckets)
	}
	if c.Dimensions < 0 {
		return nil, fmt.Errorf("%w: dimensions %d must not be negative", ErrInvalidConfiguration, c.Dimensions)
	}
	h, err := hash.New(c.Hasher, c.Seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return &Mixing{c: c, h: h}, nil
}

func (m *Mixing) Hash(v Vector) (ID, error) {
	if err := checkDimensions(m.c.Dimensions, v); err != nil {
		return ID{}, err
	}
	return Numeric(hash.Mod(m.h, Canonical(v, m.c.Format), uint64(m.c.Buckets))), nil
}

func (m *Mixing) Capacity() *big.Int { return big.NewInt(int64(m.c.Buckets)) }
func (m *Mixing) Dimensions() int    { return m.c.Dimensions }
func (m *Mixing) Kind() string       { return hash.Name(m.c.Hasher) }

// DigestConfig configures a Digest strategy.
type DigestConfig struct {
	Buckets int
	// Digest is one of the hash.MD5, hash.Blake3, hash.Blake2b constants.
	Digest     int
	Format     Format
	Dimensions int
}

// Digest hashes the canonical text of a vector with a cryptographic
// digest, reads the digest as a big endian integer and reduces it modulo
// the bucket count. It takes no seed.
type Digest struct {
	c       DigestConfig
	d       hash.Digest
	buckets *big.Int
}

// NewDigest returns a Digest strategy.
func NewDigest(c DigestConfig) (*Digest, error) {
	if c.Buckets <= 0 {
		return nil, fmt.Errorf("%w: bucket count %d must be positive", ErrInvalidConfiguration, c.Buckets)
	}
	if c.Dimensions < 0 {
		return nil, fmt.Errorf("%w: dimensions %d must not be negative", ErrInvalidConfiguration, c.Dimensions)
	}
	d, err := hash.NewDigest(c.Digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return &Digest{c: c, d: d, buckets: big.NewInt(int64(c.Buckets))}, nil
}

func (d *Digest) Hash(v Vector) (ID, error) {
	if err := checkDimensions(d.c.Dimensions, v); err != nil {
		return ID{}, err
	}
	sum := new(big.Int).SetBytes(d.d.Sum(Canonical(v, d.c.Format)))
	return Numeric(sum.Mod(sum, d.buckets).Uint64()), nil
}

func (d *Digest) Capacity() *big.Int { return new(big.Int).Set(d.buckets) }
func (d *Digest) Dimensions() int    { return d.c.Dimensions }
func (d *Digest) Kind() string       { return hash.DigestName(d.c.Digest) }
