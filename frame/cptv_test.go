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
	"errors"
	"path/filepath"
	"testing"

	cptv "github.com/TheCacophonyProject/go-cptv"
	"github.com/TheCacophonyProject/go-cptv/cptvframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCamera struct{}

func (cam *testCamera) ResX() int {
	return 4
}
func (cam *testCamera) ResY() int {
	return 2
}
func (cam *testCamera) FPS() int {
	return 9
}

// writeRecording writes frames whose readings run from base to base+step*7
// in row-major order, with base advancing by 1000 per frame.
func writeRecording(t *testing.T, frames int, step uint16) string {
	camera := new(testCamera)
	filename := filepath.Join(t.TempDir(), "recording.cptv")

	writer, err := cptv.NewFileWriter(filename, camera)
	require.NoError(t, err)
	require.NoError(t, writer.WriteHeader(cptv.Header{
		DeviceName: "test",
		FPS:        camera.FPS(),
	}))

	thermal := cptvframe.NewFrame(camera)
	for n := 0; n < frames; n++ {
		base := uint16(3000 + 1000*n)
		for y, row := range thermal.Pix {
			for x := range row {
				row[x] = base + step*uint16(y*len(row)+x)
			}
		}
		require.NoError(t, writer.WriteFrame(thermal))
	}
	writer.Close()
	return filename
}

func TestReadCPTVPair(t *testing.T) {
	filename := writeRecording(t, 3, 10)

	prev, curr, err := ReadCPTVPair(filename, 1)
	require.NoError(t, err)
	require.NoError(t, SameSize(prev, curr))
	assert.Equal(t, 4, prev.Width)
	assert.Equal(t, 2, prev.Height)

	// Every frame spans 70 above its own minimum, so normalising drops
	// the per-frame offset.
	want := []uint8{0, 36, 72, 109, 145, 182, 218, 255}
	assert.Equal(t, want, prev.Pix)
	assert.Equal(t, want, curr.Pix)
}

func TestReadCPTVPairPastEnd(t *testing.T) {
	filename := writeRecording(t, 2, 10)

	_, _, err := ReadCPTVPair(filename, 0)
	assert.NoError(t, err)

	_, _, err = ReadCPTVPair(filename, 1)
	assert.Error(t, err)
}

func TestReadCPTVPairBadIndex(t *testing.T) {
	_, _, err := ReadCPTVPair("unused.cptv", -1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestReadCPTVPairMissingFile(t *testing.T) {
	_, _, err := ReadCPTVPair(filepath.Join(t.TempDir(), "missing.cptv"), 0)
	assert.Error(t, err)
}
