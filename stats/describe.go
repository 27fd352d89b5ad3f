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

package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/TheCacophonyProject/find-motion/frame"
	"github.com/TheCacophonyProject/find-motion/motion"
)

// Description holds exact statistics over the estimated cells of a
// field only, leaving out the zero margin.
type Description struct {
	Count  int
	Mean   float64
	StdDev float64
	Median float64
	Max    float64
}

// Describe computes a Description of field using exact magnitudes. A
// field without estimated cells gives a zero Description.
func Describe(field *motion.Field) (Description, error) {
	if field == nil || field.Len() == 0 {
		return Description{}, fmt.Errorf("empty motion field: %w", frame.ErrInvalidArgument)
	}

	var lengths []float64
	for row := 0; row < field.Rows; row++ {
		for col := 0; col < field.Cols; col++ {
			if !field.Estimated(col, row) {
				continue
			}
			v := field.At(col, row)
			lengths = append(lengths, math.Hypot(float64(v.X), float64(v.Y)))
		}
	}
	if len(lengths) == 0 {
		return Description{}, nil
	}

	sort.Float64s(lengths)
	mean, stdDev := stat.MeanStdDev(lengths, nil)
	if len(lengths) == 1 {
		stdDev = 0
	}
	return Description{
		Count:  len(lengths),
		Mean:   mean,
		StdDev: stdDev,
		Median: stat.Quantile(0.5, stat.Empirical, lengths, nil),
		Max:    floats.Max(lengths),
	}, nil
}
