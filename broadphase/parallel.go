// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package broadphase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const (
	// chunksPerWorker is how many ranges each worker gets on average.
	chunksPerWorker = 4
	// defaultGrain is the smallest range handed to a goroutine.
	defaultGrain = 512
)

// parallelSweep runs sweepRange over [start, end) split into contiguous
// chunks. Every chunk reads the whole set up to limit and writes only to
// its own buffer; buffers are concatenated after the join. Chunks not yet
// started when ctx is done are skipped and the ctx error is returned.
func parallelSweep(ctx context.Context, set *SortedSet, start, end, limit, workers, grain int) ([]Pair, error) {
	n := end - start
	if n <= 0 {
		return nil, ctx.Err()
	}
	chunks := min(workers*chunksPerWorker, (n+grain-1)/grain)
	if chunks <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return sweepRange(set, start, end, limit, nil), nil
	}

	results := make([][]Pair, chunks)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k := range results {
		k := k
		lo := start + n*k/chunks
		hi := start + n*(k+1)/chunks
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[k] = sweepRange(set, lo, hi, limit, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	out := make([]Pair, 0, total)
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}
