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
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_Validate(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, DefaultWorkers(), c.Workers)
	assert.LessOrEqual(t, c.Workers, MaxWorkers)

	c = Config{Workers: 1000}
	require.NoError(t, c.Validate())
	assert.Equal(t, MaxWorkers, c.Workers)

	for name, bad := range map[string]Config{
		"workers":   {Workers: -1},
		"batch":     {BatchSize: -3},
		"budget":    {MemoryBudgetMB: -1},
		"sort axis": {SortAxis: "w"},
	} {
		assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig, name)
	}
}

func TestConfig_Axis(t *testing.T) {
	for in, want := range map[string]int{
		"":     AxisAuto,
		"auto": AxisAuto,
		"x":    0,
		" Y ":  1,
		"z":    2,
		"2":    2,
	} {
		c := Config{SortAxis: in}
		got, err := c.Axis()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestBatchBytes(t *testing.T) {
	assert.Zero(t, BatchBytes(0))
	assert.Equal(t, 10*BatchBytes(1), BatchBytes(10))
	assert.Greater(t, BatchBytes(1), int64(pairsPerVolume*16))
}

func TestConfig_TOML(t *testing.T) {
	const data = `
workers = 3
batch-size = 1000
sort-axis = "y"
memory-budget-mb = 256

[progress-log]
every = "500ms"
`
	var c Config
	meta, err := toml.Decode(data, &c)
	require.NoError(t, err)
	assert.Empty(t, meta.Undecoded())
	assert.Equal(t, Config{
		Workers:        3,
		BatchSize:      1000,
		SortAxis:       "y",
		MemoryBudgetMB: 256,
		ProgressLog:    Limiter{Every: Duration{500 * time.Millisecond}},
	}, c)
}

func TestConfig_YAML(t *testing.T) {
	const data = `
workers: 2
batch-size: 10
sort-axis: z
progress-log:
  every: 1m
`
	var c Config
	require.NoError(t, yaml.Unmarshal([]byte(data), &c))
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, 10, c.BatchSize)
	assert.Equal(t, "z", c.SortAxis)
	assert.Equal(t, time.Minute, c.ProgressLog.Every.Duration)
}

func TestLimiter_Sometimes(t *testing.T) {
	every := Limiter{}.Sometimes()
	n := 0
	for i := 0; i < 5; i++ {
		every.Do(func() { n++ })
	}
	assert.Equal(t, 5, n)

	slow := Limiter{Every: Duration{time.Hour}}.Sometimes()
	n = 0
	for i := 0; i < 5; i++ {
		slow.Do(func() { n++ })
	}
	assert.Equal(t, 1, n)
}
