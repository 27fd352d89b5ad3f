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

// Package stats summarises the vector magnitudes of a motion field.
//
// Magnitudes are approximate: they come from ApproxSqrt, which matches
// math.Sqrt to within about 0.2%.
package stats

import (
	"fmt"
	"math"

	"github.com/TheCacophonyProject/find-motion/frame"
	"github.com/TheCacophonyProject/find-motion/motion"
)

const (
	invSqrtMagic = 0x5F375A86
	newtonSteps  = 3
)

// Statistics summarises the magnitudes of every vector in a field,
// including the zero vectors of the unestimated margin.
//
// Min starts at zero and only moves down, so it is always reported as
// zero. Existing consumers compare against this value.
type Statistics struct {
	Mean float32
	Min  float32
	Max  float32
}

// ApproxSqrt returns an approximation of sqrt(x) for x >= 0, computed as
// the reciprocal of a bit-level inverse square root estimate refined by
// three Newton-Raphson steps. ApproxSqrt(0) is a tiny positive number
// rather than zero.
func ApproxSqrt(x float32) float32 {
	xhalf := 0.5 * x
	i := int32(math.Float32bits(x))
	i = invSqrtMagic - (i >> 1)
	y := math.Float32frombits(uint32(i))
	for n := 0; n < newtonSteps; n++ {
		// Explicit conversions round each product, stopping the compiler
		// from fusing them into FMA instructions on some architectures.
		y = float32(y * float32(1.5-float32(xhalf*y*y)))
	}
	return 1 / y
}

// Magnitude returns the approximate length of v.
func Magnitude(v motion.Vector) float32 {
	x, y := int(v.X), int(v.Y)
	return ApproxSqrt(float32(x*x + y*y))
}

// Compute reduces every vector of field to the mean, min and max
// magnitude. It fails for a nil or empty field.
func Compute(field *motion.Field) (Statistics, error) {
	if field == nil || field.Len() == 0 {
		return Statistics{}, fmt.Errorf("empty motion field: %w", frame.ErrInvalidArgument)
	}

	var s Statistics
	var total float32
	for _, v := range field.Vectors {
		length := Magnitude(v)
		if length < s.Min {
			s.Min = length
		}
		if length > s.Max {
			s.Max = length
		}
		total += length
	}
	s.Mean = total / float32(field.Len())
	return s, nil
}
