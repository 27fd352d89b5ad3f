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

// Package status provides the signalling and timing ports used around a
// motion estimation run.
package status

import (
	"fmt"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
)

// Signal shows whether a computation is in progress, e.g. with an LED.
type Signal interface {
	On() error
	Off() error
}

// NoSignal is a Signal that does nothing.
type NoSignal struct{}

func (NoSignal) On() error  { return nil }
func (NoSignal) Off() error { return nil }

// NewGPIOSignal looks up the named GPIO pin. host.Init must have been
// called first.
func NewGPIOSignal(pinName string) (*GPIOSignal, error) {
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("unable to load status pin %q", pinName)
	}
	return &GPIOSignal{pin: pin}, nil
}

// GPIOSignal drives a pin high while a computation runs.
type GPIOSignal struct {
	pin gpio.PinOut
}

func (s *GPIOSignal) On() error {
	if err := s.pin.Out(gpio.High); err != nil {
		return fmt.Errorf("failed to set status pin high: %v", err)
	}
	return nil
}

func (s *GPIOSignal) Off() error {
	if err := s.pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("failed to set status pin low: %v", err)
	}
	return nil
}

// Clock gives the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock using time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// NewStopwatch returns a Stopwatch started at the current time of clock.
func NewStopwatch(clock Clock) *Stopwatch {
	return &Stopwatch{
		clock: clock,
		last:  clock.Now(),
	}
}

// Stopwatch measures the time between successive laps.
type Stopwatch struct {
	clock Clock
	last  time.Time
}

// Lap returns the time since the previous lap (or since the stopwatch
// was created) and starts a new lap.
func (s *Stopwatch) Lap() time.Duration {
	now := s.clock.Now()
	d := now.Sub(s.last)
	s.last = now
	return d
}
