package rhyme

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AnalyseBatch analyses independent groups of lines concurrently. Results
// are returned in the order of groups. The first failure cancels the
// remaining work and is returned.
func (a *Analyser) AnalyseBatch(ctx context.Context, groups [][]string) ([]*Result, error) {
	out := make([]*Result, len(groups))
	err := a.fanOut(ctx, len(groups), func(i int) error {
		res, err := a.analyse(groups[i])
		if err != nil {
			return err
		}
		out[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DetectSchemes detects the rhyme scheme of several poems concurrently.
// Letter assignment within a poem stays sequential.
func (a *Analyser) DetectSchemes(ctx context.Context, poems [][]string) ([]*Scheme, error) {
	out := make([]*Scheme, len(poems))
	err := a.fanOut(ctx, len(poems), func(i int) error {
		s, err := a.detectScheme(poems[i])
		if err != nil {
			return err
		}
		out[i] = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// fanOut runs fn for every index in [0, n) with at most a.concurrency calls
// in flight, or the default when unset. Indices not yet started when ctx is
// done are skipped.
func (a *Analyser) fanOut(ctx context.Context, n int, fn func(i int) error) error {
	limit := a.concurrency
	if limit < 1 {
		limit = defaultConcurrency
	}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i := 0; i < n; i++ {
		if egCtx.Err() != nil {
			break
		}
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
