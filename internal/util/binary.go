package util

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/alecthomas/unsafeslice"
	"github.com/edsrzf/mmap-go"
)

// ReadBinary maps the file at path and decodes it as consecutive vectors of
// dims little endian float64 values.
func ReadBinary(path string, dims int) ([][]float64, error) {
	if dims <= 0 {
		return nil, fmt.Errorf("dimensions %d must be positive", dims)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 {
		return nil, nil
	}
	if fi.Size()%int64(8*dims) != 0 {
		return nil, fmt.Errorf("%s: size %d is not a multiple of %d byte vectors", path, fi.Size(), 8*dims)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer m.Unmap()

	// the mapping is page aligned
	words := unsafeslice.Uint64SliceFromByteSlice(m)
	out := make([][]float64, len(words)/dims)
	for i := range out {
		v := make([]float64, dims)
		for j := range v {
			v[j] = math.Float64frombits(littleEndian(words[i*dims+j]))
		}
		out[i] = v
	}
	return out, nil
}

// WriteBinary writes v as little endian float64 values.
func WriteBinary(w io.Writer, v []float64) error {
	var b [8]byte
	for _, x := range v {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(x))
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// littleEndian converts a word read in native order from little endian
// bytes.
func littleEndian(w uint64) uint64 {
	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], w)
	return binary.LittleEndian.Uint64(b[:])
}
