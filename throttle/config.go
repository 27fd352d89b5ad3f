// find-motion - estimate block motion between grayscale video frames
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package throttle

import (
	"errors"
	"time"
)

type ThrottlerConfig struct {
	BucketSize int64         `yaml:"throttle-bucket"`
	Refill     time.Duration `yaml:"throttle-refill"`
}

func DefaultThrottlerConfig() ThrottlerConfig {
	return ThrottlerConfig{
		BucketSize: 4,
		Refill:     30 * time.Second,
	}
}

func (conf *ThrottlerConfig) Validate() error {
	if conf.BucketSize < 1 {
		return errors.New("throttle-bucket should be at least 1")
	}
	if conf.Refill <= 0 {
		return errors.New("throttle-refill should be positive")
	}
	return nil
}
