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

// Package median implements an in-place 3x3 median denoising filter.
package median

import (
	"github.com/TheCacophonyProject/find-motion/frame"
)

const windowSize = 9

// Filter replaces every interior pixel of f with the median of its 3x3
// neighbourhood. The outermost rows and columns are left unchanged.
//
// The filter works in place, scanning rows top to bottom and columns
// left to right, so a pixel's neighbourhood includes the already
// filtered pixels above and to its left.
func Filter(f *frame.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	filter3x3(f.Pix, f.Width, f.Height)
	return nil
}

func filter3x3(pix []uint8, width, height int) {
	var window [windowSize]uint8
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			gather(&window, pix, width, i)
			insertionSort(&window)
			pix[i] = window[windowSize/2]
		}
	}
}

// gather copies the 3x3 neighbourhood centred on pix[i] into window,
// top-left to bottom-right.
func gather(window *[windowSize]uint8, pix []uint8, width, i int) {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		row := i + dy*width
		for dx := -1; dx <= 1; dx++ {
			window[n] = pix[row+dx]
			n++
		}
	}
}

func insertionSort(window *[windowSize]uint8) {
	for i := 1; i < windowSize; i++ {
		for j := i; j > 0 && window[j] < window[j-1]; j-- {
			window[j], window[j-1] = window[j-1], window[j]
		}
	}
}
