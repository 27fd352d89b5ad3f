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

// Package loglimiter keeps a busy service from flooding the journal with
// the same failure over and over.
package loglimiter

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/TheCacophonyProject/find-motion/status"
)

// New returns a LogLimiter which logs a repeated message at most once per
// interval.
func New(interval time.Duration) *LogLimiter {
	return NewWithClock(interval, status.SystemClock{})
}

func NewWithClock(interval time.Duration, clock status.Clock) *LogLimiter {
	return &LogLimiter{
		interval: interval,
		clock:    clock,
	}
}

// LogLimiter suppresses a message seen again within the interval. When
// the message is next let through, the number of suppressed copies is
// appended.
type LogLimiter struct {
	mu            sync.Mutex
	interval      time.Duration
	clock         status.Clock
	previousEntry string
	previousTime  time.Time
	suppressed    int
}

func (limiter *LogLimiter) Printf(format string, v ...interface{}) {
	limiter.Print(fmt.Sprintf(format, v...))
}

func (limiter *LogLimiter) Print(s string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := limiter.clock.Now()
	if s == limiter.previousEntry {
		if now.Sub(limiter.previousTime) < limiter.interval {
			limiter.suppressed++
			return
		}
		if limiter.suppressed > 0 {
			log.Printf("%s (repeated %d times)", s, limiter.suppressed)
			limiter.previousTime = now
			limiter.suppressed = 0
			return
		}
	}

	log.Print(s)
	limiter.previousTime = now
	limiter.previousEntry = s
	limiter.suppressed = 0
}
