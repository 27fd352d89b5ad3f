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
	"log"
	"time"

	"github.com/juju/ratelimit"
)

func NewThrottler(config *ThrottlerConfig, listener ThrottledEventListener) *Throttler {
	return NewThrottlerWithClock(config, listener, new(realClock))
}

func NewThrottlerWithClock(
	config *ThrottlerConfig,
	listener ThrottledEventListener,
	clock ratelimit.Clock,
) *Throttler {
	// The token bucket tracks the number of estimations that can run
	// before requests are refused.
	bucket := ratelimit.NewBucketWithClock(config.Refill, config.BucketSize, clock)

	if listener == nil {
		listener = new(nullListener)
	}

	return &Throttler{
		bucket:   bucket,
		listener: listener,
	}
}

// Throttler refuses estimation requests once they arrive faster than
// the configured refill rate for longer than the bucket allows. Each
// estimation keeps a CPU busy for a long time on small devices.
type Throttler struct {
	bucket   *ratelimit.Bucket
	listener ThrottledEventListener
}

type ThrottledEventListener interface {
	WhenThrottled()
}

type nullListener struct{}

func (lis *nullListener) WhenThrottled() {}

// Allow takes a token for one estimation, returning false if none is
// available.
func (throttler *Throttler) Allow() bool {
	if throttler.bucket.TakeAvailable(1) > 0 {
		return true
	}
	log.Print("estimation throttled")
	throttler.listener.WhenThrottled()
	return false
}

// Available returns the number of estimations that could run now.
func (throttler *Throttler) Available() int64 {
	return throttler.bucket.Available()
}

// realClock implements ratelimit.Clock in terms of standard time functions.
type realClock struct{}

// Now implements Clock.Now by calling time.Now.
func (realClock) Now() time.Time {
	return time.Now()
}

// Sleep implements Clock.Sleep by calling time.Sleep.
func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
