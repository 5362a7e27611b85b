// Package experiment runs a set of hashing strategies over the same input
// vectors and collects their collision statistics.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/optable/bucketstat/pkg/collision"
	"github.com/optable/bucketstat/pkg/distribution"
	"github.com/optable/bucketstat/pkg/log"
	"github.com/optable/bucketstat/pkg/strategy"
	"github.com/optable/bucketstat/pkg/table"
	"gopkg.in/yaml.v3"
)

const (
	defaultName    = "run"
	defaultWorkers = 1
	defaultFPRate  = 0.001
)

var ErrInvalidExperiment = errors.New("experiment: invalid configuration")

// Config describes an experiment.
type Config struct {
	Name string `yaml:"name"`
	// Workers is the number of goroutines hashing into each table.
	Workers int `yaml:"workers"`
	// Distinct enables the estimation of distinct input vectors.
	Distinct   bool              `yaml:"distinct"`
	Strategies []strategy.Config `yaml:"strategies"`
}

// Load decodes a YAML experiment from r and fills in defaults.
func Load(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExperiment, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate fills in defaults and checks that c can run.
func (c *Config) Validate() error {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Workers == 0 {
		c.Workers = defaultWorkers
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must be positive", ErrInvalidExperiment, c.Workers)
	}
	if len(c.Strategies) == 0 {
		return fmt.Errorf("%w: no strategy", ErrInvalidExperiment)
	}
	return nil
}

// Result is the outcome of one strategy.
type Result struct {
	Kind string
	// Label names the reports of the strategy.
	Label    string
	Table    *table.Table
	Stats    collision.Stats
	Distinct uint64
}

// Run hashes vectors with every strategy of c. When sink is not nil both
// distribution views of every table are written to it.
func Run(ctx context.Context, c *Config, vectors []strategy.Vector, sink distribution.Sink) ([]Result, error) {
	logger := log.GetLoggerFromContextWithName(ctx, "experiment").WithValues("name", c.Name)

	strategies, labels, err := build(c.Strategies)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(strategies))
	for i, s := range strategies {
		logger.V(1).Info("hashing", "strategy", s.Kind(), "capacity", s.Capacity().String(), "vectors", len(vectors))

		opts := []table.Option{table.WithLogger(logger.WithName("table"))}
		if c.Distinct {
			opts = append(opts, table.WithDistinct(uint(max(len(vectors), 1)), defaultFPRate))
		}
		sh, err := table.NewSharded(s, c.Workers, opts...)
		if err != nil {
			return nil, err
		}
		sctx, cancel := context.WithCancel(ctx)
		t, err := sh.Insert(sctx, stream(sctx, vectors))
		// releases the feeder when a shard failed
		cancel()
		if err != nil {
			return nil, fmt.Errorf("strategy %d (%s): %w", i, s.Kind(), err)
		}

		st, err := collision.Analyze(t)
		if err != nil {
			return nil, fmt.Errorf("strategy %d (%s): %w", i, s.Kind(), err)
		}
		r := Result{Kind: s.Kind(), Label: labels[i], Table: t, Stats: st}
		if c.Distinct {
			if r.Distinct, err = t.DistinctInserts(); err != nil {
				return nil, err
			}
		}
		logger.Info("collisions", "strategy", r.Label,
			"inserts", st.Inserts, "buckets", st.Buckets, "colliding", st.Colliding,
			"per used bucket", st.CollisionRatePerUsedBucket,
			"per capacity", st.CollisionRatePerCapacity,
			"utilization", st.UtilizationRatio)

		if sink != nil {
			if err := distribution.Export(sink, labeled{t, r.Label}, c.Name); err != nil {
				return nil, fmt.Errorf("exporting %s: %w", r.Label, err)
			}
		}
		results = append(results, r)
	}

	return results, nil
}

// build creates every strategy of configs and the label its reports are
// written under. Labels must be unique within an experiment.
func build(configs []strategy.Config) ([]strategy.Strategy, []string, error) {
	strategies := make([]strategy.Strategy, len(configs))
	labels := make([]string, len(configs))
	seen := make(map[string]int, len(configs))
	for i, sc := range configs {
		s, err := strategy.New(sc)
		if err != nil {
			return nil, nil, fmt.Errorf("strategy %d: %w", i, err)
		}
		label := sc.Label
		if label == "" {
			label = s.Kind()
		}
		if j, ok := seen[label]; ok {
			return nil, nil, fmt.Errorf("%w: strategies %d and %d are both labeled %q", ErrInvalidExperiment, j, i, label)
		}
		seen[label] = i
		strategies[i], labels[i] = s, label
	}
	return strategies, labels, nil
}

// labeled reports a table under its strategy label.
type labeled struct {
	*table.Table
	label string
}

func (l labeled) Kind() string { return l.label }

func stream(ctx context.Context, vectors []strategy.Vector) <-chan strategy.Vector {
	out := make(chan strategy.Vector)
	go func() {
		defer close(out)
		for _, v := range vectors {
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
