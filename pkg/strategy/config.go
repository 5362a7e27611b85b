package strategy

import (
	"fmt"

	"github.com/optable/bucketstat/internal/hash"
)

// Strategy kinds accepted by Config.
const (
	KindMixing     = "mixing"
	KindDigest     = "digest"
	KindPolynomial = "polynomial"
	KindProjection = "projection"
	KindIdentity   = "identity"
)

// Config describes any strategy. It is the shape experiments are written
// in; fields that do not apply to Kind are ignored.
type Config struct {
	Kind string `yaml:"kind"`
	// Label names the strategy in reports, its Kind() when empty.
	Label string `yaml:"label"`
	// Hash names the mixer of a mixing strategy ("murmur3", "xxh3", ...)
	// or the digest of a digest strategy ("md5", "blake3", "blake2b").
	Hash       string  `yaml:"hash"`
	Buckets    int     `yaml:"buckets"`
	HashSize   int     `yaml:"hash_size"`
	Dimensions int     `yaml:"dimensions"`
	Seed       *uint64 `yaml:"seed"`
	Floats     bool    `yaml:"floats"`
	// Scale multiplies identity positions. LoadFactor divides them
	// instead; at most one of the two may be set.
	Scale      float64 `yaml:"scale"`
	LoadFactor float64 `yaml:"load_factor"`
}

func (c Config) seed(def uint64) uint64 {
	if c.Seed != nil {
		return *c.Seed
	}
	return def
}

func (c Config) format() Format {
	if c.Floats {
		return FormatFixed
	}
	return FormatInteger
}

// New creates the strategy described by c.
func New(c Config) (Strategy, error) {
	switch c.Kind {
	case KindMixing:
		name := c.Hash
		if name == "" {
			name = "murmur3"
		}
		t, err := hash.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		return wrap(NewMixing(MixingConfig{
			Buckets:    c.Buckets,
			Hasher:     t,
			Seed:       c.seed(DefaultMixingSeed),
			Format:     c.format(),
			Dimensions: c.Dimensions,
		}))
	case KindDigest:
		name := c.Hash
		if name == "" {
			name = "md5"
		}
		t, err := hash.LookupDigest(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		return wrap(NewDigest(DigestConfig{
			Buckets:    c.Buckets,
			Digest:     t,
			Format:     c.format(),
			Dimensions: c.Dimensions,
		}))
	case KindPolynomial:
		return wrap(NewPolynomial(c.Buckets, c.Dimensions, c.seed(DefaultPolynomialSeed)))
	case KindProjection:
		return wrap(NewProjection(c.HashSize, c.Dimensions, c.seed(0)))
	case KindIdentity:
		if c.LoadFactor != 0 {
			if c.Scale != 0 {
				return nil, fmt.Errorf("%w: identity takes a scale or a load factor, not both", ErrInvalidConfiguration)
			}
			return wrap(NewIdentityLoadFactor(c.Buckets, c.LoadFactor))
		}
		scale := c.Scale
		if scale == 0 {
			scale = 1
		}
		return wrap(NewIdentity(c.Buckets, scale))
	default:
		return nil, fmt.Errorf("%w: unknown strategy kind %q", ErrInvalidConfiguration, c.Kind)
	}
}

// wrap keeps a failed constructor from returning a typed nil Strategy.
func wrap[T Strategy](s T, err error) (Strategy, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
