package vectors

import (
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/optable/bucketstat/internal/prg"
	"github.com/optable/bucketstat/pkg/strategy"
)

// Range bounds the values of generated vectors to [-Range, Range).
const Range = 1000

// Common generates the n vectors of dimension d that every mix repeats.
// Vectors hold integral values when integral is set.
func Common(n, d int, seed uint64, integral bool) []strategy.Vector {
	rng := prg.New(seed)
	common := make([]strategy.Vector, n)
	for i := range common {
		common[i] = draw(rng, d, integral)
	}
	return common
}

// Mix streams the common vectors and n fresh ones drawn from seed, in no
// particular order, and then closes the channel.
func Mix(common []strategy.Vector, n, d int, seed uint64, integral bool) <-chan strategy.Vector {
	c1 := commons(common)
	c2 := freshes(n, d, seed, integral)
	return mixes(c1, c2)
}

// Format renders v as one comma separated line terminated by \n.
func Format(v strategy.Vector) []byte {
	var out []byte
	for i, x := range v {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendFloat(out, x, 'g', -1, 64)
	}
	return append(out, '\n')
}

func draw(rng *rand.Rand, d int, integral bool) strategy.Vector {
	v := make(strategy.Vector, d)
	for j := range v {
		if integral {
			v[j] = float64(rng.IntN(2*Range) - Range)
		} else {
			v[j] = (rng.Float64()*2 - 1) * Range
		}
	}
	return v
}

// commons writes every vector of common to a channel and then closes it
func commons(common []strategy.Vector) <-chan strategy.Vector {
	out := make(chan strategy.Vector)
	go func() {
		defer close(out)
		for _, v := range common {
			out <- v
		}
	}()
	return out
}

// freshes writes total fresh vectors to a channel and then closes it
func freshes(total, d int, seed uint64, integral bool) <-chan strategy.Vector {
	out := make(chan strategy.Vector)
	go func() {
		defer close(out)
		rng := prg.New(seed)
		for i := 0; i < total; i++ {
			out <- draw(rng, d, integral)
		}
	}()
	return out
}

// mixes reads c1 & c2 to exhaustion, writes to a single channel
// and then closes it
func mixes(c1, c2 <-chan strategy.Vector) <-chan strategy.Vector {
	var ws sync.WaitGroup
	out := make(chan strategy.Vector)
	ws.Add(2)
	f := func(c <-chan strategy.Vector) {
		defer ws.Done()
		for v := range c {
			out <- v
		}
	}
	// fan in c1 & c2
	go f(c1)
	go f(c2)
	go func() {
		ws.Wait()
		close(out)
	}()

	return out
}
