package table

import (
	"context"
	"fmt"

	"github.com/optable/bucketstat/pkg/strategy"
	"golang.org/x/sync/errgroup"
)

// Sharded inserts vectors on several goroutines. Each goroutine owns a
// private Table, and the shards are merged into one Table once the input
// is exhausted, so no bucket count is ever shared between goroutines.
type Sharded struct {
	s      strategy.Strategy
	shards int
	opts   []Option
}

// NewSharded returns a Sharded inserter running shards goroutines. opts
// are applied to every shard and to the merged table.
func NewSharded(s strategy.Strategy, shards int, opts ...Option) (*Sharded, error) {
	if shards <= 0 {
		return nil, fmt.Errorf("%w: shard count %d must be positive", strategy.ErrInvalidConfiguration, shards)
	}
	return &Sharded{s: s, shards: shards, opts: opts}, nil
}

// Insert drains vectors and returns the merged table. The first hashing
// error, or the cancellation of ctx, stops every shard and is returned.
func (sh *Sharded) Insert(ctx context.Context, vectors <-chan strategy.Vector) (*Table, error) {
	g, ctx := errgroup.WithContext(ctx)
	tables := make([]*Table, sh.shards)

	for i := range tables {
		t := New(sh.s, sh.opts...)
		tables[i] = t
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case v, ok := <-vectors:
					if !ok {
						return nil
					}
					if err := t.Insert(v); err != nil {
						return err
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := New(sh.s, sh.opts...)
	for _, t := range tables {
		if err := merged.Merge(t); err != nil {
			return nil, err
		}
	}
	return merged, nil
}
