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

package frame

import (
	"fmt"
	"math"

	cptv "github.com/TheCacophonyProject/go-cptv"
	"github.com/TheCacophonyProject/go-cptv/cptvframe"
)

// ReadCPTVPair reads frames index and index+1 from a CPTV thermal
// recording, normalising each one to 8 bits.
func ReadCPTVPair(filename string, index int) (*Frame, *Frame, error) {
	if index < 0 {
		return nil, nil, fmt.Errorf("frame index %d: %w", index, ErrInvalidArgument)
	}
	reader, err := cptv.NewFileReader(filename)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	thermal := cptvframe.NewFrame(reader)
	for i := 0; i < index; i++ {
		if err := reader.ReadFrame(thermal); err != nil {
			return nil, nil, fmt.Errorf("skipping to frame %d: %w", index, err)
		}
	}

	if err := reader.ReadFrame(thermal); err != nil {
		return nil, nil, fmt.Errorf("reading frame %d: %w", index, err)
	}
	prev := FromThermal(thermal.Pix)

	if err := reader.ReadFrame(thermal); err != nil {
		return nil, nil, fmt.Errorf("reading frame %d: %w", index+1, err)
	}
	curr := FromThermal(thermal.Pix)

	return prev, curr, nil
}

// FromThermal scales 16-bit thermal readings into an 8-bit frame using
// the min and max of the readings. A flat input maps to all zeros.
func FromThermal(pix [][]uint16) *Frame {
	height := len(pix)
	width := 0
	if height > 0 {
		width = len(pix[0])
	}
	f := New(width, height)

	// Max and min are needed for normalization of the frame
	var valMax uint16
	var valMin uint16 = math.MaxUint16
	for _, row := range pix {
		for _, val := range row {
			valMax = maxUint16(valMax, val)
			valMin = minUint16(valMin, val)
		}
	}
	if valMax <= valMin {
		return f
	}

	span := uint32(valMax - valMin)
	for y, row := range pix {
		for x, val := range row {
			f.Pix[y*width+x] = uint8(uint32(val-valMin) * math.MaxUint8 / span)
		}
	}
	return f
}

func maxUint16(a, b uint16) uint16 {
	if a > b {
		return a
	}
	return b
}

func minUint16(a, b uint16) uint16 {
	if a < b {
		return a
	}
	return b
}
