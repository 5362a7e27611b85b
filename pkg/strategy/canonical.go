package strategy

import (
	"strconv"
)

// Format selects how vector values are rendered before content hashing.
type Format uint8

const (
	// FormatInteger renders values in their shortest decimal form, "3" for 3.0.
	FormatInteger Format = iota
	// FormatFixed renders values with exactly 10 decimal places. Values that
	// agree to 10 decimal places produce the same text and the same bucket.
	FormatFixed
)

const fixedPrecision = 10

// Canonical renders v as comma separated text in format f.
func Canonical(v Vector, f Format) []byte {
	b := make([]byte, 0, len(v)*(fixedPrecision+4))
	for i, x := range v {
		if i > 0 {
			b = append(b, ',')
		}
		switch f {
		case FormatFixed:
			b = strconv.AppendFloat(b, x, 'f', fixedPrecision, 64)
		default:
			if x == 0 {
				// fold negative zero
				x = 0
			}
			b = strconv.AppendFloat(b, x, 'f', -1, 64)
		}
	}
	return b
}
