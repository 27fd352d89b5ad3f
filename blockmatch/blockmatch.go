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

// Package blockmatch finds where a block of one frame came from in the
// previous frame using an exhaustive search.
package blockmatch

import "math"

const (
	// BlockSize is the edge length of a matched block.
	BlockSize = 16

	// Displacements searched in each axis are [MinDisplacement, MaxDisplacement].
	MinDisplacement = -BlockSize
	MaxDisplacement = BlockSize - 1
)

// Result is the best displacement found for a block and its cost.
type Result struct {
	DX, DY int
	Cost   int
}

// SAD returns the sum of absolute differences between the BlockSize
// square of prev anchored at (px, py) and the one of curr anchored at
// (cx, cy). Both buffers are row-major with the given width. The caller
// must keep every read inside the buffers.
func SAD(prev, curr []uint8, width, px, py, cx, cy int) int {
	sad := 0
	for y := 0; y < BlockSize; y++ {
		p := prev[(py+y)*width+px:]
		c := curr[(cy+y)*width+cx:]
		for x := 0; x < BlockSize; x++ {
			sad += absDiff(p[x], c[x])
		}
	}
	return sad
}

// Match searches every displacement in the window around (posX, posY)
// for the block of prev that best matches the block of curr at
// (posX, posY). Rows of the window are visited top to bottom and each
// row left to right; on equal cost the later candidate wins.
func Match(posX, posY int, prev, curr []uint8, width int) Result {
	best := Result{Cost: math.MaxInt}
	for mvy := MinDisplacement; mvy <= MaxDisplacement; mvy++ {
		for mvx := MinDisplacement; mvx <= MaxDisplacement; mvx++ {
			cost := SAD(prev, curr, width, posX+mvx, posY+mvy, posX, posY)
			if cost <= best.Cost {
				best = Result{DX: mvx, DY: mvy, Cost: cost}
			}
		}
	}
	return best
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
