package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/optable/bucketstat/internal/util"
	"github.com/optable/bucketstat/test/vectors"
)

// generate n vectors of d dimensions, a tenth of them repeated, and write
// them as text lines, or as little endian float64 when the output file
// name ends in .f64
//
// example:
//  1,-437,902
//  -12,77,5
//  1,-437,902

const (
	usage = `%s cardinality (%d) dimensions (%d) repeated (cardinality/10) output_file (%s) floats (false)

example:
 %s 100000 8 1000 vectors.f64 true
`
	defaultCardinality = 100000
	defaultDimensions  = 3
	defaultOutput      = "vectors.txt"
)

type config struct {
	cardinality int
	dimensions  int
	common      int
	output      string
	floats      bool
}

func formatUsage() string {
	name := os.Args[0]
	return fmt.Sprintf(usage, name, defaultCardinality, defaultDimensions, defaultOutput, name)
}

// global conf
var conf config

func formatArgs() string {
	return fmt.Sprintf("generating %d vectors of %d dimensions with %d repeated to %s",
		conf.cardinality, conf.dimensions, conf.common, conf.output)
}

func atoi(i int, def int) int {
	if len(os.Args) <= i {
		return def
	}
	v, err := strconv.Atoi(os.Args[i])
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func init() {
	// we have default values for everything
	conf.cardinality = atoi(1, defaultCardinality)
	conf.dimensions = atoi(2, defaultDimensions)
	conf.common = atoi(3, conf.cardinality/10)
	conf.output = defaultOutput
	if len(os.Args) > 4 {
		conf.output = os.Args[4]
	}
	if len(os.Args) > 5 {
		floats, err := strconv.ParseBool(os.Args[5])
		if err != nil {
			log.Fatal(err)
		}
		conf.floats = floats
	}
	if conf.common > conf.cardinality/2 {
		log.Fatalf("%d repeated vectors do not fit twice in %d", conf.common, conf.cardinality)
	}
}

func main() {
	println(formatUsage())
	println(formatArgs())
	common := vectors.Common(conf.common, conf.dimensions, 1, !conf.floats)
	in := vectors.Mix(append(common, common...), conf.cardinality-2*conf.common, conf.dimensions, 2, !conf.floats)

	f, err := os.Create(conf.output)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	binary := strings.HasSuffix(conf.output, ".f64")
	for v := range in {
		if binary {
			err = util.WriteBinary(w, v)
		} else {
			_, err = w.Write(vectors.Format(v))
		}
		if err != nil {
			log.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}
