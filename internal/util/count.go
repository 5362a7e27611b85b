package util

import (
	"bufio"
	"bytes"
	"io"
)

// maxLine bounds the length of a single vector line.
const maxLine = 16 << 20

// Count counts the number of vectors in a text file, that is the number
// of non blank lines
func Count(r io.Reader) (int64, error) {
	var n int64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLine)
	for scanner.Scan() {
		if len(bytes.TrimSpace(scanner.Bytes())) != 0 {
			n++
		}
	}
	if err := scanner.Err(); err != nil {
		return n, err
	}

	return n, nil
}
