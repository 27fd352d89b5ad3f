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

// Package report prints motion fields and their statistics as text.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/TheCacophonyProject/find-motion/motion"
	"github.com/TheCacophonyProject/find-motion/pipeline"
	"github.com/TheCacophonyProject/find-motion/stats"
)

const fieldWidth = 7

// WriteField prints every vector of field as a right aligned "x,y"
// token, one grid row per line.
func WriteField(w io.Writer, field *motion.Field) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("\nThe motion vector field is as follows:\n\n")
	for row := 0; row < field.Rows; row++ {
		for col := 0; col < field.Cols; col++ {
			v := field.At(col, row)
			token := strconv.Itoa(int(v.X)) + "," + strconv.Itoa(int(v.Y))
			fmt.Fprintf(bw, "%*s", fieldWidth, token)
		}
		bw.WriteByte('\n')
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// WriteSummary prints the magnitude statistics and stage timings of a run.
func WriteSummary(w io.Writer, result *pipeline.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "The motion vectors have a mean of %4.1f pixels.\n", result.Stats.Mean)
	fmt.Fprintf(bw, "The motion vectors range between %4.1f and %4.1f pixels.\n",
		result.Stats.Min, result.Stats.Max)
	fmt.Fprintf(bw, "It took %d milliseconds to filter the two images.\n",
		result.FilterTime.Milliseconds())
	fmt.Fprintf(bw, "It took %d milliseconds to estimate the motion field.\n",
		result.EstimateTime.Milliseconds())
	return bw.Flush()
}

// WriteDescription prints exact statistics over the estimated cells.
func WriteDescription(w io.Writer, d stats.Description) error {
	bw := bufio.NewWriter(w)
	if d.Count == 0 {
		bw.WriteString("No motion vectors were estimated.\n")
		return bw.Flush()
	}
	fmt.Fprintf(bw, "Of %d estimated motion vectors:\n", d.Count)
	fmt.Fprintf(bw, "  mean length   %6.2f pixels\n", d.Mean)
	fmt.Fprintf(bw, "  std deviation %6.2f pixels\n", d.StdDev)
	fmt.Fprintf(bw, "  median length %6.2f pixels\n", d.Median)
	fmt.Fprintf(bw, "  max length    %6.2f pixels\n", d.Max)
	return bw.Flush()
}
