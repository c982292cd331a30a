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
	"time"

	"go.uber.org/zap"
)

// Sweeper runs sort-and-sweep with a fixed worker pool size and batch
// settings. It holds no per-sweep state and may be shared.
type Sweeper struct {
	log    *zap.Logger
	config Config
	axis   int
	grain  int
}

// NewSweeper validates config and returns a Sweeper. A nil logger is
// replaced by a no-op one.
func NewSweeper(log *zap.Logger, config Config) (*Sweeper, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	axis, _ := config.Axis()
	return &Sweeper{
		log:    log,
		config: config,
		axis:   axis,
		grain:  defaultGrain,
	}, nil
}

// Config returns the validated settings.
func (s *Sweeper) Config() Config { return s.config }

// Prepare validates and sorts boxes for a self sweep.
// The caller's slice is not modified.
func (s *Sweeper) Prepare(boxes []AABB) (*SortedSet, error) {
	return s.prepare(boxes)
}

// PrepareCross validates and sorts two collections for a cross sweep.
func (s *Sweeper) PrepareCross(a, b []AABB) (*SortedSet, error) {
	return s.prepare(a, b)
}

func (s *Sweeper) prepare(groups ...[]AABB) (*SortedSet, error) {
	start := time.Now()
	set, err := newSortedSet(s.axis, groups...)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Sorted volumes",
		zap.Int("count", set.Len()),
		zap.Int("axis", set.axis),
		zap.Bool("cross", set.cross),
		zap.Duration("elapsed", time.Since(start)),
	)
	return set, nil
}

// SortAndSweep finds every admissible overlapping pair within boxes in
// one unbounded pass and returns the axis it swept along.
func (s *Sweeper) SortAndSweep(boxes []AABB) (axis int, pairs []Pair, err error) {
	set, err := s.Prepare(boxes)
	if err != nil {
		return AxisAuto, nil, err
	}
	pairs, err = s.sweepAll(set)
	return set.axis, pairs, err
}

// SortAndSweepCross finds every admissible overlapping pair with one
// volume from a and one from b. Pairs are oriented (a.ID, b.ID).
func (s *Sweeper) SortAndSweepCross(a, b []AABB) (axis int, pairs []Pair, err error) {
	set, err := s.PrepareCross(a, b)
	if err != nil {
		return AxisAuto, nil, err
	}
	pairs, err = s.sweepAll(set)
	return set.axis, pairs, err
}

func (s *Sweeper) sweepAll(set *SortedSet) ([]Pair, error) {
	start := time.Now()
	pairs, err := parallelSweep(context.Background(), set, 0, set.Len(), set.Len(), s.config.Workers, s.grain)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Sweep done",
		zap.Int("volumes", set.Len()),
		zap.Int("pairs", len(pairs)),
		zap.Int("workers", s.config.Workers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pairs, nil
}
