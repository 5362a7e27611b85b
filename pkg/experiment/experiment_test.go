package experiment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/optable/bucketstat/pkg/distribution"
	"github.com/optable/bucketstat/pkg/log"
	"github.com/optable/bucketstat/pkg/strategy"
	"github.com/optable/bucketstat/test/vectors"
)

const experimentYAML = `
name: uniform
workers: 4
distinct: true
strategies:
  - kind: mixing
    buckets: 1000
  - kind: mixing
    hash: xxh3
    buckets: 1000
    seed: 7
  - kind: digest
    hash: md5
    buckets: 1000
  - kind: polynomial
    buckets: 1000
    dimensions: 3
  - kind: projection
    hash_size: 8
    dimensions: 3
    seed: 3
`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(experimentYAML))
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "uniform" || c.Workers != 4 || !c.Distinct || len(c.Strategies) != 5 {
		t.Fatalf("unexpected config %+v", c)
	}
	if s := c.Strategies[1]; s.Hash != "xxh3" || s.Seed == nil || *s.Seed != 7 {
		t.Fatalf("unexpected strategy %+v", s)
	}
	if c.Strategies[0].Seed != nil {
		t.Fatalf("absent seed must stay nil")
	}
}

func TestLoadInvalid(t *testing.T) {
	invalid := []string{
		"name: empty\n",
		"workers: -1\nstrategies:\n  - kind: mixing\n    buckets: 1\n",
		"strategies:\n  - kind: mixing\n    bucket: 10\n",
		"strategies: [",
	}
	for _, in := range invalid {
		if _, err := Load(strings.NewReader(in)); !errors.Is(err, ErrInvalidExperiment) {
			t.Errorf("Load(%q): want ErrInvalidExperiment, got %v", in, err)
		}
	}

	c := &Config{Name: "x"}
	if err := c.Validate(); err == nil {
		t.Errorf("want an error without strategies")
	}
	c.Strategies = []strategy.Config{{Kind: strategy.KindMixing, Buckets: 10}}
	if err := c.Validate(); err != nil || c.Workers != defaultWorkers {
		t.Errorf("want defaults filled in, got %v and %d workers", err, c.Workers)
	}
}

func TestRun(t *testing.T) {
	c, err := Load(strings.NewReader(experimentYAML))
	if err != nil {
		t.Fatal(err)
	}
	var in []strategy.Vector
	for v := range vectors.Mix(vectors.Common(200, 3, 1, true), 1800, 3, 2, true) {
		in = append(in, v)
	}

	dir := t.TempDir()
	ctx := log.ContextWithLogger(context.Background(), log.GetLogger(0))
	results, err := Run(ctx, c, in, distribution.TextSink{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}

	wantKinds := []string{"murmur3", "xxh3", "md5", "poly", "lsh"}
	if len(results) != len(wantKinds) {
		t.Fatalf("want %d results, got %d", len(wantKinds), len(results))
	}
	for i, r := range results {
		if r.Kind != wantKinds[i] || r.Label != r.Kind {
			t.Errorf("result %d: want kind %s, got %s", i, wantKinds[i], r.Kind)
		}
		if r.Stats.Inserts != 2000 {
			t.Errorf("%s: want 2000 inserts, got %d", r.Kind, r.Stats.Inserts)
		}
		if r.Distinct < 1900 || r.Distinct > 2100 {
			t.Errorf("%s: want about 2000 distinct vectors, got %d", r.Kind, r.Distinct)
		}
		for _, view := range []string{"scatter", "bar"} {
			if _, err := os.Stat(filepath.Join(dir, view+"_"+r.Kind+"_uniform.txt")); err != nil {
				t.Errorf("%s: missing %s report: %v", r.Kind, view, err)
			}
		}
	}
	if got := results[4].Stats.Capacity.Int64(); got != 256 {
		t.Errorf("lsh: want capacity 256, got %d", got)
	}
}

func TestRunSameKind(t *testing.T) {
	in := []strategy.Vector{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {1, 2, 3}}
	c := &Config{Name: "run", Workers: 1, Strategies: []strategy.Config{
		{Kind: strategy.KindMixing, Buckets: 100},
		{Kind: strategy.KindMixing, Buckets: 7},
	}}
	if _, err := Run(context.Background(), c, in, nil); !errors.Is(err, ErrInvalidExperiment) {
		t.Fatalf("want ErrInvalidExperiment for two strategies labeled murmur3, got %v", err)
	}

	c.Strategies[0].Label = "murmur3-100"
	c.Strategies[1].Label = "murmur3-7"
	sink := distribution.TextSink{Dir: t.TempDir()}
	results, err := Run(context.Background(), c, in, sink)
	if err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(sink.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Fatalf("want 4 report files, got %d", len(entries))
	}
	for _, r := range results {
		if r.Kind != "murmur3" {
			t.Errorf("%s: want kind murmur3, got %s", r.Label, r.Kind)
		}
		got, err := os.ReadFile(sink.Path("scatter", r.Label, "run"))
		if err != nil {
			t.Fatal(err)
		}
		var want strings.Builder
		for _, p := range distribution.Scatter(r.Table) {
			fmt.Fprintf(&want, "%s : %d\n", p.ID, p.Count)
		}
		if string(got) != want.String() {
			t.Errorf("%s: want scatter %q, got %q", r.Label, want.String(), string(got))
		}
	}
}

func TestRunErrors(t *testing.T) {
	c := &Config{Name: "bad", Workers: 2, Strategies: []strategy.Config{{Kind: strategy.KindProjection, HashSize: 4, Dimensions: 3}}}
	in := []strategy.Vector{{1, 2, 3}, {1, 2}, {4, 5, 6}, {7, 8, 9}}
	if _, err := Run(context.Background(), c, in, nil); !errors.Is(err, strategy.ErrDimensionMismatch) {
		t.Fatalf("want ErrDimensionMismatch, got %v", err)
	}

	c.Strategies[0].HashSize = 0
	if _, err := Run(context.Background(), c, in, nil); !errors.Is(err, strategy.ErrInvalidConfiguration) {
		t.Fatalf("want ErrInvalidConfiguration, got %v", err)
	}
}
