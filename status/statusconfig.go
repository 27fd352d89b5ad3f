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

package status

import (
	"log"

	"periph.io/x/periph/host"
)

type StatusConfig struct {
	LEDPin string `yaml:"led-pin"`
}

func DefaultStatusConfig() StatusConfig {
	return StatusConfig{
		LEDPin: "",
	}
}

// NewSignal returns the Signal configured by conf. Without an LED pin
// no hardware is touched.
func NewSignal(conf StatusConfig) (Signal, error) {
	if conf.LEDPin == "" {
		return NoSignal{}, nil
	}

	log.Print("host initialisation")
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	signal, err := NewGPIOSignal(conf.LEDPin)
	if err != nil {
		return nil, err
	}
	// Start from a known state.
	if err := signal.Off(); err != nil {
		return nil, err
	}
	return signal, nil
}
