package util

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// SafeReadLine blocks until a whole line can be read or
// r returns an error.
// ***warning: expects lines to be \n separated***
func SafeReadLine(r *bufio.Reader) (line []byte, err error) {
	line, err = r.ReadBytes('\n')
	// strip the \n and an optional \r
	line = bytes.TrimRight(line, "\r\n")
	return
}

// ParseVector parses a comma separated line of numbers.
func ParseVector(line []byte) ([]float64, error) {
	fields := bytes.Split(line, []byte{','})
	v := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(string(bytes.TrimSpace(f)), 64)
		if err != nil {
			return nil, err
		}
		v[i] = x
	}
	return v, nil
}

// Exhaust all the vectors in r,
// The format of a vector is x0,x1,...,xn\n
// Blank and whitespace only lines are skipped. The first malformed line or read error stops
// the stream and is sent on the error channel, which is closed once the
// vector channel is closed.
func Exhaust(r io.Reader) (<-chan []float64, <-chan error) {
	// make the output channels
	var vectors = make(chan []float64)
	var errs = make(chan error, 1)
	// wrap r in a bufio reader
	src := bufio.NewReader(r)
	go func() {
		defer close(errs)
		defer close(vectors)
		for n := 1; ; n++ {
			line, err := SafeReadLine(src)
			if line = bytes.TrimSpace(line); len(line) != 0 {
				v, perr := ParseVector(line)
				if perr != nil {
					errs <- fmt.Errorf("line %d: %w", n, perr)
					return
				}
				vectors <- v
			}
			if err != nil {
				if err != io.EOF {
					errs <- err
				}
				return
			}
		}
	}()

	return vectors, errs
}
