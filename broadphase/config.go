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

// Налаштування sweep. Поля з тегами `toml`/`yaml` читаються з конфіг
// файлу, решту можна перебити прапорцями командного рядка.

package broadphase

import (
	"fmt"
	"runtime"
	"strings"
	"time"
	"unsafe"

	"golang.org/x/time/rate"
)

const (
	// MaxWorkers caps the pool so big machines are not oversubscribed.
	MaxWorkers = 64
	// AxisAuto lets the sweeper pick the axis from the data.
	AxisAuto = -1

	// pairsPerVolume is the expected output per primary volume used for
	// the memory estimate. Cloth scenes give 35 to 38.
	pairsPerVolume = 36
)

// Config - налаштування sweep
type Config struct {
	// Кількість воркерів, 0 = min(кількість ядер, MaxWorkers)
	Workers int `toml:"workers" yaml:"workers"`

	// Скільки первинних об'ємів обробляє один батч, 0 = все за раз
	BatchSize int `toml:"batch-size" yaml:"batch-size"`

	// Вісь sweep: "auto", "x", "y" або "z"
	SortAxis string `toml:"sort-axis" yaml:"sort-axis"`

	// Ліміт пам'яті на один батч в мегабайтах, 0 = без ліміту
	MemoryBudgetMB int `toml:"memory-budget-mb" yaml:"memory-budget-mb"`

	// Як часто писати в лог прогрес батчів
	ProgressLog Limiter `toml:"progress-log" yaml:"progress-log"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		SortAxis:    "auto",
		ProgressLog: Limiter{Every: Duration{2 * time.Second}},
	}
}

// DefaultWorkers is min(NumCPU, MaxWorkers).
func DefaultWorkers() int {
	return min(runtime.NumCPU(), MaxWorkers)
}

// Validate checks the config and fills defaults.
func (c *Config) Validate() error {
	switch {
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d < 0", ErrInvalidConfig, c.Workers)
	case c.Workers == 0:
		c.Workers = DefaultWorkers()
	case c.Workers > MaxWorkers:
		c.Workers = MaxWorkers
	}
	if c.BatchSize < 0 {
		return fmt.Errorf("%w: batch-size %d < 0", ErrInvalidConfig, c.BatchSize)
	}
	if c.MemoryBudgetMB < 0 {
		return fmt.Errorf("%w: memory-budget-mb %d < 0", ErrInvalidConfig, c.MemoryBudgetMB)
	}
	if _, err := c.Axis(); err != nil {
		return err
	}
	return c.checkBudget(c.BatchSize)
}

// Axis returns the forced sweep axis or AxisAuto.
func (c *Config) Axis() (int, error) {
	switch strings.ToLower(strings.TrimSpace(c.SortAxis)) {
	case "", "auto":
		return AxisAuto, nil
	case "x", "0":
		return 0, nil
	case "y", "1":
		return 1, nil
	case "z", "2":
		return 2, nil
	}
	return AxisAuto, fmt.Errorf("%w: unknown sort-axis %q", ErrInvalidConfig, c.SortAxis)
}

// BatchBytes estimates the memory one batch of n primaries needs.
func BatchBytes(n int) int64 {
	per := int64(unsafe.Sizeof(AABB{})) + pairsPerVolume*int64(unsafe.Sizeof(Pair{}))
	return int64(n) * per
}

// checkBudget fails with ErrBatchTooLarge if n primaries do not fit.
func (c *Config) checkBudget(n int) error {
	if c.MemoryBudgetMB == 0 || n == 0 {
		return nil
	}
	budget := int64(c.MemoryBudgetMB) << 20
	if need := BatchBytes(n); need > budget {
		return fmt.Errorf("%w: %d volumes need ~%d MiB, budget is %d MiB",
			ErrBatchTooLarge, n, need>>20, c.MemoryBudgetMB)
	}
	return nil
}

// Limiter - як часто можна виконувати дію
// Наприклад "2s" = не частіше ніж раз на дві секунди
type Limiter struct {
	Every Duration `toml:"every" yaml:"every"`
}

// Sometimes перетворює налаштування в rate.Sometimes.
// Нульовий інтервал означає "кожного разу".
func (l Limiter) Sometimes() *rate.Sometimes {
	if l.Every.Duration <= 0 {
		return &rate.Sometimes{Every: 1}
	}
	return &rate.Sometimes{Interval: l.Every.Duration}
}

// Duration - обгортка навколо time.Duration для конфіг файлів
type Duration struct {
	time.Duration
}

// UnmarshalText перетворює текст з конфігу в time.Duration
// Наприклад "5s" -> 5 секунд
func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

// MarshalText is the inverse of UnmarshalText.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
