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

// Йоу, чат! Зараз розберемо конфігурацію broad phase!
// Тут зберігаються всі налаштування які можна змінити

package pipeline

import (
	"fmt"
	"math"

	"ScalableCCD/broadphase"
)

// Config - головна структура з налаштуваннями
// Поля з тегом `toml` читаються з конфіг файлу
type Config struct {
	// На скільки розширювати кожну коробку з усіх боків
	// Для CCD з мінімальною відстанню це і є ця відстань
	Inflation float64 `toml:"inflation" yaml:"inflation"`

	// Скільки перших об'ємів (в порядку сортування) брати участь
	// в кожному sweep, 0 = всі. Те саме що -n в командному рядку
	Limit int `toml:"limit" yaml:"limit"`

	// Перевірити результат sweep через BVH дерево
	// Повільно, тільки для відладки
	Verify bool `toml:"verify" yaml:"verify"`

	// JSON файли з парами [[a, b], ...] для порівняння
	GroundTruth []string `toml:"ground-truth" yaml:"ground-truth"`

	// Налаштування самого sweep
	Sweep broadphase.Config `toml:"sweep" yaml:"sweep"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	return Config{Sweep: broadphase.DefaultConfig()}
}

// Validate checks the config and fills sweep defaults.
func (c *Config) Validate() error {
	if c.Inflation < 0 || math.IsNaN(c.Inflation) || math.IsInf(c.Inflation, 0) {
		return fmt.Errorf("%w: inflation %g", broadphase.ErrInvalidConfig, c.Inflation)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit %d < 0", broadphase.ErrInvalidConfig, c.Limit)
	}
	return c.Sweep.Validate()
}
