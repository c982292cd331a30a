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

// Йоу, чат! Тут батчі. Коробок може бути сотні тисяч, а пар - десятки
// мільйонів, тому за один виклик обробляємо тільки вікно первинних
// коробок [Settled, Settled+BatchSize). Партнерів шукаємо по всьому
// набору, тож кожна пара знаходиться рівно в одному батчі: в тому,
// де лежить її перший елемент в порядку сортування.

package broadphase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cursor is the batching progress: volumes [0, Settled) of the sorted
// set have been swept as primaries. Only the first Total volumes take
// part in the sweep.
type Cursor struct {
	Settled int
	Total   int
}

// NewCursor starts a batch run over the first total volumes of set.
// total <= 0 or beyond the set size means the whole set.
func NewCursor(set *SortedSet, total int) Cursor {
	if total <= 0 || total > set.Len() {
		total = set.Len()
	}
	return Cursor{Total: total}
}

// Done reports whether every volume has been settled.
func (c Cursor) Done() bool { return c.Settled >= c.Total }

func (c Cursor) check(set *SortedSet) error {
	if c.Total < 0 || c.Total > set.Len() || c.Settled < 0 || c.Settled > c.Total {
		return fmt.Errorf("%w: settled %d, total %d, set size %d",
			ErrInvalidCursor, c.Settled, c.Total, set.Len())
	}
	return nil
}

// AdvanceBatch sweeps the next window of primaries and returns its pairs
// with the advanced cursor. Windows without pairs are skipped, so an
// empty result means the cursor is done. On error the cursor is
// returned unchanged.
func (s *Sweeper) AdvanceBatch(set *SortedSet, cur Cursor) ([]Pair, Cursor, error) {
	return s.advance(context.Background(), set, cur)
}

func (s *Sweeper) advance(ctx context.Context, set *SortedSet, cur Cursor) ([]Pair, Cursor, error) {
	if err := cur.check(set); err != nil {
		return nil, cur, err
	}
	window := s.config.BatchSize
	if window <= 0 {
		window = cur.Total - cur.Settled
	}
	if err := s.config.checkBudget(min(window, cur.Total-cur.Settled)); err != nil {
		return nil, cur, err
	}

	next := cur
	for !next.Done() {
		end := min(next.Settled+window, next.Total)
		pairs, err := parallelSweep(ctx, set, next.Settled, end, next.Total, s.config.Workers, s.grain)
		if err != nil {
			return nil, cur, err
		}
		next.Settled = end
		if len(pairs) > 0 {
			return pairs, next, nil
		}
	}
	return nil, next, nil
}

// Drain runs AdvanceBatch until the cursor is done and hands every
// non-empty batch to fn. fn errors are checked between batches; ctx is
// also checked between the chunks of a batch, and a batch cut short is
// dropped whole. It returns the number of pairs produced.
func (s *Sweeper) Drain(ctx context.Context, set *SortedSet, total int, fn func([]Pair) error) (int, error) {
	log := s.log.With(zap.String("run", uuid.NewString()))
	progress := s.config.ProgressLog.Sometimes()
	start := time.Now()

	cur := NewCursor(set, total)
	count, batches := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			log.Info("Batch run stopped", zap.Int("settled", cur.Settled), zap.Error(err))
			return count, err
		}
		pairs, next, err := s.advance(ctx, set, cur)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Batch run stopped", zap.Int("settled", cur.Settled), zap.Error(err))
			}
			return count, err
		}
		cur = next
		if len(pairs) == 0 {
			break
		}
		count += len(pairs)
		batches++
		progress.Do(func() {
			log.Info("Batch progress",
				zap.Int("settled", cur.Settled),
				zap.Int("total", cur.Total),
				zap.Int("pairs", count),
			)
		})
		if err := fn(pairs); err != nil {
			return count, err
		}
	}

	log.Info("Batch run done",
		zap.Int("volumes", cur.Total),
		zap.Int("batches", batches),
		zap.Int("pairs", count),
		zap.Duration("elapsed", time.Since(start)),
	)
	return count, nil
}
