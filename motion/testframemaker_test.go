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

package motion

import (
	"math/rand"

	"github.com/TheCacophonyProject/find-motion/frame"
)

func makeFrame(width, height int, background uint8) *frame.Frame {
	f := frame.New(width, height)
	f.Fill(background)
	return f
}

// makeNoiseFrame returns a frame of random samples, so that every block
// in it is distinct.
func makeNoiseFrame(width, height int, seed int64) *frame.Frame {
	rnd := rand.New(rand.NewSource(seed))
	f := frame.New(width, height)
	for i := range f.Pix {
		f.Pix[i] = uint8(rnd.Intn(256))
	}
	return f
}

// shiftFrame returns a frame where pixel (x, y) holds src(x+dx, y+dy),
// or background where that falls outside src.
func shiftFrame(src *frame.Frame, dx, dy int, background uint8) *frame.Frame {
	out := makeFrame(src.Width, src.Height, background)
	for y := 0; y < src.Height; y++ {
		sy := y + dy
		if sy < 0 || sy >= src.Height {
			continue
		}
		for x := 0; x < src.Width; x++ {
			sx := x + dx
			if sx < 0 || sx >= src.Width {
				continue
			}
			out.Set(x, y, src.At(sx, sy))
		}
	}
	return out
}

// copyRegion copies a w x h region of src at (srcX, srcY) to (dstX, dstY) in dst.
func copyRegion(dst, src *frame.Frame, dstX, dstY, srcX, srcY, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(dstX+x, dstY+y, src.At(srcX+x, srcY+y))
		}
	}
}
