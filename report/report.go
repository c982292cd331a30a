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

// Package report checks produced overlap pairs against a ground truth
// pair list. It only reads results and never feeds back into a sweep.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"ScalableCCD/broadphase"
)

// Result is how many ground truth pairs were found.
type Result struct {
	Name  string
	Found int
	Total int
	// Missing holds the ground truth pairs that were not produced.
	Missing []broadphase.Pair
}

// Complete reports whether every ground truth pair was found.
func (r Result) Complete() bool { return r.Found == r.Total }

func (r Result) String() string {
	return fmt.Sprintf("Contains %d/%d TP", r.Found, r.Total)
}

// LoadGroundTruth reads a JSON array of [a, b] integer pairs.
func LoadGroundTruth(path string) ([]broadphase.Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ground truth: %w", err)
	}
	var raw [][2]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ground truth %s: %w", path, err)
	}
	pairs := make([]broadphase.Pair, len(raw))
	for i, p := range raw {
		pairs[i] = broadphase.Pair{A: p[0], B: p[1]}
	}
	return pairs, nil
}

// Compare counts the distinct ground truth pairs present in found.
// With unordered set, (a, b) and (b, a) are the same pair.
func Compare(found, truth []broadphase.Pair, unordered bool) Result {
	key := func(p broadphase.Pair) broadphase.Pair {
		if unordered && p.A > p.B {
			p.A, p.B = p.B, p.A
		}
		return p
	}
	have := make(map[broadphase.Pair]struct{}, len(found))
	for _, p := range found {
		have[key(p)] = struct{}{}
	}

	var r Result
	seen := make(map[broadphase.Pair]struct{}, len(truth))
	for _, p := range truth {
		k := key(p)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		r.Total++
		if _, ok := have[k]; ok {
			r.Found++
		} else {
			r.Missing = append(r.Missing, p)
		}
	}
	return r
}

// Check loads the ground truth at path, compares and logs the result.
func Check(log *zap.Logger, path string, found []broadphase.Pair, unordered bool) (Result, error) {
	truth, err := LoadGroundTruth(path)
	if err != nil {
		return Result{Name: path}, err
	}
	r := Compare(found, truth, unordered)
	r.Name = path

	fields := []zap.Field{
		zap.String("file", path),
		zap.Int("found", r.Found),
		zap.Int("total", r.Total),
	}
	if r.Complete() {
		log.Info(r.String(), fields...)
	} else {
		log.Warn(r.String(), append(fields, zap.Int("missing", len(r.Missing)))...)
	}
	return r, nil
}
