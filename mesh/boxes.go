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

package mesh

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"ScalableCCD/broadphase"
)

const none = broadphase.NoVertex

// Boxes are the swept volumes of one time step. IDs are the primitive's
// index within its own class.
type Boxes struct {
	Vertices []broadphase.AABB
	Edges    []broadphase.AABB
	Faces    []broadphase.AABB
}

// Build encloses every primitive at t0 and t1 and widens the boxes by
// inflation. Both snapshots must have the same vertex count and faces.
func Build(t0, t1 *Mesh, inflation float64) (*Boxes, error) {
	if len(t0.Vertices) != len(t1.Vertices) {
		return nil, fmt.Errorf("%w: %d vs %d vertices", ErrMismatch, len(t0.Vertices), len(t1.Vertices))
	}
	if len(t0.Faces) != len(t1.Faces) {
		return nil, fmt.Errorf("%w: %d vs %d faces", ErrMismatch, len(t0.Faces), len(t1.Faces))
	}
	for i := range t0.Faces {
		if t0.Faces[i] != t1.Faces[i] {
			return nil, fmt.Errorf("%w: face %d is %v at t0 and %v at t1", ErrMismatch, i, t0.Faces[i], t1.Faces[i])
		}
	}
	if err := t0.Validate(); err != nil {
		return nil, err
	}

	edges := t0.Edges()
	b := &Boxes{
		Vertices: make([]broadphase.AABB, len(t0.Vertices)),
		Edges:    make([]broadphase.AABB, len(edges)),
		Faces:    make([]broadphase.AABB, len(t0.Faces)),
	}
	var err error
	for i := range t0.Vertices {
		b.Vertices[i], err = swept(i, [3]int{i, none, none}, inflation, t0, t1)
		if err != nil {
			return nil, err
		}
	}
	for i, e := range edges {
		b.Edges[i], err = swept(i, [3]int{e[0], e[1], none}, inflation, t0, t1)
		if err != nil {
			return nil, err
		}
	}
	for i, f := range t0.Faces {
		b.Faces[i], err = swept(i, f, inflation, t0, t1)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func swept(id int, vids [3]int, inflation float64, t0, t1 *Mesh) (broadphase.AABB, error) {
	var pts [6]broadphase.Vec3
	n := 0
	for _, v := range vids {
		if v == none {
			break
		}
		pts[n], pts[n+1] = t0.Vertices[v], t1.Vertices[v]
		n += 2
	}
	box, err := broadphase.FromPoints(id, vids, pts[:n]...)
	if err != nil {
		return box, err
	}
	if inflation > 0 {
		box = box.Inflate(inflation)
	}
	return box, nil
}

// LoadBoxes loads two snapshots and builds their swept volumes.
func LoadBoxes(log *zap.Logger, path0, path1 string, inflation float64) (*Boxes, error) {
	start := time.Now()
	t0, err := Load(path0)
	if err != nil {
		return nil, err
	}
	t1, err := Load(path1)
	if err != nil {
		return nil, err
	}
	b, err := Build(t0, t1, inflation)
	if err != nil {
		return nil, fmt.Errorf("build boxes for %s and %s: %w", path0, path1, err)
	}
	log.Info("Loaded mesh",
		zap.String("t0", path0),
		zap.String("t1", path1),
		zap.Int("vertices", len(b.Vertices)),
		zap.Int("edges", len(b.Edges)),
		zap.Int("faces", len(b.Faces)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return b, nil
}
