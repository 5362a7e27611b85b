package hash

import (
	"crypto/md5"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/minio/highwayhash"
	"github.com/optable/bucketstat/internal/prg"
	"github.com/shivakar/metrohash"
	"github.com/twmb/murmur3"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

const (
	// SaltLength is the length of the salt derived from a seed for
	// hashers keyed by bytes rather than by an integer seed.
	SaltLength = 32
)

// non cryptographic mixers
const (
	Murmur3 = iota
	Murmur3x64
	Metro
	Highway
	XXHash
	XXH3
)

// cryptographic digests
const (
	MD5 = iota
	Blake3
	Blake2b
)

var (
	ErrUnknownHash   = fmt.Errorf("cannot create a hasher of unknown hash type")
	ErrUnknownDigest = fmt.Errorf("cannot create a digest of unknown digest type")
)

var hashNames = map[string]int{
	"murmur3":    Murmur3,
	"murmur3x64": Murmur3x64,
	"metro":      Metro,
	"highway":    Highway,
	"xxhash":     XXHash,
	"xxh3":       XXH3,
}

var digestNames = map[string]int{
	"md5":     MD5,
	"blake3":  Blake3,
	"blake2b": Blake2b,
}

// Hasher implements different non cryptographic hashing functions
type Hasher interface {
	Hash64([]byte) uint64
}

// signed is satisfied by hashers whose natural output is a signed
// integer sign-extended into the uint64 returned by Hash64.
type signed interface {
	signed() bool
}

// New creates a hasher of type t seeded with seed
func New(t int, seed uint64) (Hasher, error) {
	switch t {
	case Murmur3:
		return murmur32{seed: uint32(seed)}, nil
	case Murmur3x64:
		return murmur64{seed: seed}, nil
	case Metro:
		return metro{salt: prg.Bytes(seed, SaltLength)}, nil
	case Highway:
		return highway{key: prg.Bytes(seed, SaltLength)}, nil
	case XXHash:
		return xxhash64{seed: seed}, nil
	case XXH3:
		return xxh3x64{seed: seed}, nil
	default:
		return nil, ErrUnknownHash
	}
}

// Lookup returns the hasher type registered under name.
func Lookup(name string) (int, error) {
	if t, ok := hashNames[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHash, name)
}

// Name returns the registered name of hasher type t.
func Name(t int) string {
	for k, v := range hashNames {
		if v == t {
			return k
		}
	}
	return "unknown"
}

// Mod reduces the hash of p into [0, n). Signed hashers are reduced with a
// floored modulo so that negative outputs wrap into the range instead of
// being reinterpreted as huge unsigned values.
func Mod(h Hasher, p []byte, n uint64) uint64 {
	v := h.Hash64(p)
	if s, ok := h.(signed); ok && s.signed() {
		m := int64(v) % int64(n)
		if m < 0 {
			m += int64(n)
		}
		return uint64(m)
	}
	return v % n
}

// 32 bit murmur3, output is the signed interpretation of the sum, the
// same value mmh3.hash reports.
type murmur32 struct {
	seed uint32
}

func (m murmur32) Hash64(p []byte) uint64 {
	return uint64(int64(int32(murmur3.SeedSum32(m.seed, p))))
}

func (murmur32) signed() bool { return true }

type murmur64 struct {
	seed uint64
}

func (m murmur64) Hash64(p []byte) uint64 {
	return murmur3.SeedSum64(m.seed, p)
}

// Metro Hash implementation of Hasher, salted by prefix
type metro struct {
	salt []byte
}

func (m metro) Hash64(p []byte) uint64 {
	h := metrohash.NewMetroHash64()
	h.Write(m.salt)
	h.Write(p)
	return h.Sum64()
}

type highway struct {
	key []byte
}

func (h highway) Hash64(p []byte) uint64 {
	return highwayhash.Sum64(p, h.key)
}

type xxhash64 struct {
	seed uint64
}

func (x xxhash64) Hash64(p []byte) uint64 {
	d := xxhash.NewWithSeed(x.seed)
	d.Write(p)
	return d.Sum64()
}

type xxh3x64 struct {
	seed uint64
}

func (x xxh3x64) Hash64(p []byte) uint64 {
	return xxh3.HashSeed(p, x.seed)
}

// Digest implements cryptographic digests used as big integer hashes
type Digest interface {
	Sum([]byte) []byte
}

// NewDigest creates a digest of type t
func NewDigest(t int) (Digest, error) {
	switch t {
	case MD5:
		return md5Digest{}, nil
	case Blake3:
		return blake3Digest{}, nil
	case Blake2b:
		return blake2bDigest{}, nil
	default:
		return nil, ErrUnknownDigest
	}
}

// LookupDigest returns the digest type registered under name.
func LookupDigest(name string) (int, error) {
	if t, ok := digestNames[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDigest, name)
}

// DigestName returns the registered name of digest type t.
func DigestName(t int) string {
	for k, v := range digestNames {
		if v == t {
			return k
		}
	}
	return "unknown"
}

type md5Digest struct{}

func (md5Digest) Sum(p []byte) []byte {
	s := md5.Sum(p)
	return s[:]
}

type blake3Digest struct{}

func (blake3Digest) Sum(p []byte) []byte {
	s := blake3.Sum256(p)
	return s[:]
}

type blake2bDigest struct{}

func (blake2bDigest) Sum(p []byte) []byte {
	s := blake2b.Sum256(p)
	return s[:]
}
