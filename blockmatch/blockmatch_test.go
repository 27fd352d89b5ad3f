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

package blockmatch

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testWidth  = 64
	testHeight = 64
	anchor     = 32
)

func noise(seed int64) []uint8 {
	rnd := rand.New(rand.NewSource(seed))
	pix := make([]uint8, testWidth*testHeight)
	for i := range pix {
		pix[i] = uint8(rnd.Intn(256))
	}
	return pix
}

func uniform(v uint8) []uint8 {
	pix := make([]uint8, testWidth*testHeight)
	for i := range pix {
		pix[i] = v
	}
	return pix
}

// copyBlock copies the block at (sx, sy) in src to (dx, dy) in dst.
func copyBlock(dst, src []uint8, dx, dy, sx, sy int) {
	for y := 0; y < BlockSize; y++ {
		copy(dst[(dy+y)*testWidth+dx:(dy+y)*testWidth+dx+BlockSize],
			src[(sy+y)*testWidth+sx:(sy+y)*testWidth+sx+BlockSize])
	}
}

func TestSADOfBlockWithItselfIsZero(t *testing.T) {
	pix := noise(1)
	for _, p := range []int{0, 5, 17, testWidth - BlockSize} {
		assert.Equal(t, 0, SAD(pix, pix, testWidth, p, p, p, p), "anchor %d", p)
	}
}

func TestSADSumsAbsoluteDifferences(t *testing.T) {
	assert.Equal(t, BlockSize*BlockSize*3, SAD(uniform(10), uniform(13), testWidth, 0, 0, 0, 0))
	assert.Equal(t, BlockSize*BlockSize*3, SAD(uniform(13), uniform(10), testWidth, 0, 0, 0, 0))

	prev := uniform(0)
	curr := uniform(0)
	curr[3*testWidth+40] = 200 // inside the block at (32, 0) only
	assert.Equal(t, 200, SAD(prev, curr, testWidth, 32, 0, 32, 0))
	assert.Equal(t, 0, SAD(prev, curr, testWidth, 0, 0, 0, 0))
}

func TestMatchRecoversExactDisplacement(t *testing.T) {
	for _, d := range [][2]int{{0, 0}, {3, -2}, {-16, -16}, {15, 15}, {-7, 11}} {
		prev := noise(2)
		curr := noise(3)
		copyBlock(curr, prev, anchor, anchor, anchor+d[0], anchor+d[1])

		result := Match(anchor, anchor, prev, curr, testWidth)
		assert.Equal(t, Result{DX: d[0], DY: d[1], Cost: 0}, result)
	}
}

func TestMatchOnUniformFramesPicksLastCandidate(t *testing.T) {
	result := Match(anchor, anchor, uniform(77), uniform(77), testWidth)
	assert.Equal(t, Result{DX: MaxDisplacement, DY: MaxDisplacement, Cost: 0}, result)
}

func TestMatchTieGoesToLaterCandidate(t *testing.T) {
	prev := noise(4)
	curr := noise(5)

	first := [2]int{-10, -10}
	second := [2]int{8, 8}
	copyBlock(prev, prev, anchor+second[0], anchor+second[1], anchor+first[0], anchor+first[1])
	copyBlock(curr, prev, anchor, anchor, anchor+first[0], anchor+first[1])

	result := Match(anchor, anchor, prev, curr, testWidth)
	assert.Equal(t, Result{DX: second[0], DY: second[1], Cost: 0}, result)
}

func TestMatchTieInSameRowGoesToLargerX(t *testing.T) {
	prev := noise(6)
	curr := noise(7)

	copyBlock(prev, prev, anchor+10, anchor-4, anchor-12, anchor-4)
	copyBlock(curr, prev, anchor, anchor, anchor-12, anchor-4)

	result := Match(anchor, anchor, prev, curr, testWidth)
	assert.Equal(t, Result{DX: 10, DY: -4, Cost: 0}, result)
}

func TestMatchReportsLowestCost(t *testing.T) {
	prev := uniform(50)
	curr := uniform(60)

	result := Match(anchor, anchor, prev, curr, testWidth)
	assert.Equal(t, BlockSize*BlockSize*10, result.Cost)
	assert.Equal(t, MaxDisplacement, result.DX)
	assert.Equal(t, MaxDisplacement, result.DY)
}
