// Package strategy maps input vectors onto bucket identifiers. Every
// strategy is immutable after construction and safe for concurrent use.
package strategy

import (
	"encoding/binary"
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

var (
	ErrInvalidConfiguration = errors.New("strategy: invalid configuration")
	ErrDimensionMismatch    = errors.New("strategy: vector dimension mismatch")
	ErrNonFinite            = errors.New("strategy: hash value is not finite")
)

// Vector is an ordered sequence of numeric values. Integer inputs are
// carried as integral float64 values.
type Vector []float64

// Bytes returns the raw IEEE 754 encoding of v, used where an exact
// identity of the vector is needed rather than its canonical text.
func (v Vector) Bytes() []byte {
	b := make([]byte, 8*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint64(b[8*i:], math.Float64bits(x))
	}
	return b
}

// ID identifies a bucket. Numeric IDs are produced by strategies with a
// bucket count, signed IDs by the identity strategy and bit string IDs by
// the projection strategy. IDs are comparable and can be used as map keys.
type ID struct {
	n    uint64
	neg  bool
	bits string
	set  bool
}

// Numeric returns the ID of bucket n.
func Numeric(n uint64) ID {
	return ID{n: n}
}

// Signed returns the ID of key k. Signed(k) equals Numeric(uint64(k)) for
// k >= 0.
func Signed(k int64) ID {
	return ID{n: uint64(k), neg: k < 0}
}

// Bits returns a bit string ID. s is expected to hold only '0' and '1'.
func Bits(s string) ID {
	return ID{bits: s, set: true}
}

// IsBits reports whether id is a bit string ID.
func (id ID) IsBits() bool {
	return id.set
}

// Value returns the bucket number of a numeric ID.
func (id ID) Value() uint64 {
	return id.n
}

// Int returns the key of a signed ID.
func (id ID) Int() int64 {
	return int64(id.n)
}

func (id ID) String() string {
	switch {
	case id.set:
		return id.bits
	case id.neg:
		return strconv.FormatInt(int64(id.n), 10)
	}
	return strconv.FormatUint(id.n, 10)
}

// Compare orders IDs. Numeric IDs compare by value, negative keys first,
// bit string IDs lexicographically, and numeric IDs sort before bit
// string IDs.
func (id ID) Compare(o ID) int {
	switch {
	case id.set && o.set:
		return strings.Compare(id.bits, o.bits)
	case id.set:
		return 1
	case o.set:
		return -1
	case id.neg != o.neg:
		if id.neg {
			return -1
		}
		return 1
	case id.n < o.n:
		return -1
	case id.n > o.n:
		return 1
	default:
		return 0
	}
}

// Strategy is a pure function from a vector to a bucket.
type Strategy interface {
	// Hash returns the bucket of v.
	Hash(v Vector) (ID, error)
	// Capacity is the size of the output space.
	Capacity() *big.Int
	// Dimensions is the dimensionality enforced by Hash, 0 when any
	// length is accepted.
	Dimensions() int
	// Kind labels the strategy for reports.
	Kind() string
}

func checkDimensions(want int, v Vector) error {
	if want > 0 && len(v) != want {
		return &DimensionError{Want: want, Got: len(v)}
	}
	return nil
}

// DimensionError reports a vector of the wrong length. It matches
// ErrDimensionMismatch with errors.Is.
type DimensionError struct {
	Want, Got int
}

func (e *DimensionError) Error() string {
	return "strategy: vector dimension mismatch: want " + strconv.Itoa(e.Want) + ", got " + strconv.Itoa(e.Got)
}

func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
