package prg

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/zeebo/blake3"
)

// Generate fills dst with pseudorandom bytes expanded from seed using a
// deterministic random bit generator (DRBG) as specified by NIST
// Special Publication 800-90A Revision 1. Blake3 is used here.
func Generate(dst []byte, seed []byte, h *blake3.Hasher) error {
	// reset internal state
	h.Reset()
	if _, err := h.Write(seed); err != nil {
		return err
	}

	drbg := h.Digest()

	_, err := drbg.Read(dst)

	return err
}

// Bytes returns n pseudorandom bytes derived from a 64-bit seed.
func Bytes(seed uint64, n int) []byte {
	var s [8]byte
	binary.LittleEndian.PutUint64(s[:], seed)

	dst := make([]byte, n)
	// blake3 digests never fail to read
	_ = Generate(dst, s[:], blake3.New())
	return dst
}

// Source is a math/rand/v2 Source backed by the blake3 XOF stream of a
// 64-bit seed. Two sources built from the same seed produce the same
// sequence, and sources never share state.
type Source struct {
	drbg *blake3.Digest
	buf  [8]byte
}

// NewSource returns a Source seeded with seed.
func NewSource(seed uint64) *Source {
	var s [8]byte
	binary.LittleEndian.PutUint64(s[:], seed)

	h := blake3.New()
	h.Write(s[:])
	return &Source{drbg: h.Digest()}
}

// Uint64 implements rand.Source.
func (s *Source) Uint64() uint64 {
	s.drbg.Read(s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}

// New returns a *rand.Rand drawing from a fresh Source seeded with seed.
// The returned generator is not safe for concurrent use.
func New(seed uint64) *rand.Rand {
	return rand.New(NewSource(seed))
}
