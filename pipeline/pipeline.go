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

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"ScalableCCD/broadphase"
	"ScalableCCD/mesh"
	"ScalableCCD/report"
)

// ErrVerify is returned when the sweep and the BVH query disagree.
var ErrVerify = errors.New("sweep does not match BVH query")

type Pipeline struct {
	log *zap.Logger

	config  Config
	sweeper *broadphase.Sweeper
}

// Result holds the candidate pairs of one time step.
type Result struct {
	// VF pairs are (vertex, face), EE pairs are (edge, edge).
	VF, EE []broadphase.Pair
	// Sweep axes chosen for VF and EE.
	AxisVF, AxisEE int

	Vertices, Edges, Faces int
	Reports                []report.Result
}

// Global returns every pair in one id space: vertices first, then
// edges, then faces. This is how the reference pair lists number them.
func (r *Result) Global() []broadphase.Pair {
	out := make([]broadphase.Pair, 0, len(r.VF)+len(r.EE))
	for _, p := range r.EE {
		out = append(out, broadphase.Pair{A: p.A + r.Vertices, B: p.B + r.Vertices})
	}
	offset := r.Vertices + r.Edges
	for _, p := range r.VF {
		out = append(out, broadphase.Pair{A: p.A, B: p.B + offset})
	}
	return out
}

func New(log *zap.Logger, config Config) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	sweeper, err := broadphase.NewSweeper(log.Named("broadphase"), config.Sweep)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		log: log.Named("pipeline"),

		config:  config,
		sweeper: sweeper,
	}, nil
}

// Run loads the two mesh snapshots and runs RunBoxes on them.
func (p *Pipeline) Run(ctx context.Context, path0, path1 string) (*Result, error) {
	boxes, err := mesh.LoadBoxes(p.log.Named("mesh"), path0, path1, p.config.Inflation)
	if err != nil {
		return nil, err
	}
	return p.RunBoxes(ctx, boxes)
}

// RunBoxes runs the vertex-face and the edge-edge sweep through the
// batch loop, optionally verifies them and compares the result with
// every configured ground truth file. Missing ground truth files are
// logged and skipped.
func (p *Pipeline) RunBoxes(ctx context.Context, boxes *mesh.Boxes) (*Result, error) {
	start := time.Now()
	r := &Result{
		Vertices: len(boxes.Vertices),
		Edges:    len(boxes.Edges),
		Faces:    len(boxes.Faces),
	}

	vf, err := p.sweeper.PrepareCross(boxes.Vertices, boxes.Faces)
	if err != nil {
		return nil, fmt.Errorf("vertex-face: %w", err)
	}
	r.AxisVF = vf.Axis()
	if r.VF, err = p.drain(ctx, vf); err != nil {
		return nil, fmt.Errorf("vertex-face: %w", err)
	}

	ee, err := p.sweeper.Prepare(boxes.Edges)
	if err != nil {
		return nil, fmt.Errorf("edge-edge: %w", err)
	}
	r.AxisEE = ee.Axis()
	if r.EE, err = p.drain(ctx, ee); err != nil {
		return nil, fmt.Errorf("edge-edge: %w", err)
	}

	p.log.Info("Broad phase done",
		zap.Int("vf", len(r.VF)),
		zap.Int("ee", len(r.EE)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if p.config.Verify {
		if err := p.verify(boxes, r); err != nil {
			return r, err
		}
	}

	if len(p.config.GroundTruth) > 0 {
		global := r.Global()
		log := p.log.Named("report")
		for _, path := range p.config.GroundTruth {
			res, err := report.Check(log, path, global, true)
			if errors.Is(err, os.ErrNotExist) {
				log.Warn("Ground truth does not exist", zap.String("file", path))
				continue
			} else if err != nil {
				return r, err
			}
			r.Reports = append(r.Reports, res)
		}
	}
	return r, nil
}

func (p *Pipeline) drain(ctx context.Context, set *broadphase.SortedSet) ([]broadphase.Pair, error) {
	var pairs []broadphase.Pair
	_, err := p.sweeper.Drain(ctx, set, p.config.Limit, func(batch []broadphase.Pair) error {
		pairs = append(pairs, batch...)
		return nil
	})
	return pairs, err
}

// verify re-runs both queries with the BVH. A limit restricts the sweep
// to a prefix of the sorted order, which the tree does not know about.
func (p *Pipeline) verify(boxes *mesh.Boxes, r *Result) error {
	if p.config.Limit > 0 {
		p.log.Warn("Skip verification with a volume limit", zap.Int("limit", p.config.Limit))
		return nil
	}
	start := time.Now()
	vf, err := broadphase.TreeOverlapsCross(boxes.Vertices, boxes.Faces)
	if err != nil {
		return err
	}
	ee, err := broadphase.TreeOverlaps(boxes.Edges)
	if err != nil {
		return err
	}
	for _, c := range []struct {
		name       string
		got, truth []broadphase.Pair
	}{
		{"vf", r.VF, vf},
		{"ee", r.EE, ee},
	} {
		res := report.Compare(c.got, c.truth, false)
		if !res.Complete() || len(c.got) != len(c.truth) {
			return fmt.Errorf("%w: %s sweep has %d pairs, BVH has %d, %s",
				ErrVerify, c.name, len(c.got), len(c.truth), res)
		}
	}
	p.log.Info("Verified with BVH", zap.Duration("elapsed", time.Since(start)))
	return nil
}
