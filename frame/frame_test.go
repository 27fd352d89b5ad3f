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
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, New(4, 3).Validate())

	var nilFrame *Frame
	assert.True(t, errors.Is(nilFrame.Validate(), ErrInvalidArgument))

	short := &Frame{Width: 4, Height: 3, Pix: make([]uint8, 11)}
	assert.True(t, errors.Is(short.Validate(), ErrInvalidArgument))

	empty := &Frame{Width: 0, Height: 3}
	assert.True(t, errors.Is(empty.Validate(), ErrInvalidArgument))
}

func TestValidateRejectsOverflowingSize(t *testing.T) {
	// Width*Height wraps to 0, matching an empty buffer.
	const side = 1 << (strconv.IntSize / 2)
	huge := &Frame{Width: side, Height: side}
	assert.True(t, errors.Is(huge.Validate(), ErrInvalidArgument))
}

func TestSameSize(t *testing.T) {
	assert.NoError(t, SameSize(New(8, 8), New(8, 8)))

	err := SameSize(New(8, 8), New(8, 9))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "8x8 vs 8x9")
}

func TestAtSetAndClone(t *testing.T) {
	f := New(5, 4)
	f.Set(3, 2, 99)
	assert.Equal(t, uint8(99), f.At(3, 2))
	assert.Equal(t, uint8(99), f.Pix[2*5+3])

	c := f.Clone()
	c.Set(3, 2, 1)
	assert.Equal(t, uint8(99), f.At(3, 2))
	assert.Equal(t, uint8(1), c.At(3, 2))
}

func TestReadBinaryPGM(t *testing.T) {
	data := append([]byte("P5\n# made by hand\n3 2\n255\n"), 1, 2, 3, 4, 5, 255)
	f, err := ReadPGM(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, f.Width)
	assert.Equal(t, 2, f.Height)
	assert.Equal(t, []uint8{1, 2, 3, 4, 5, 255}, f.Pix)
}

func TestReadPlainPGM(t *testing.T) {
	data := "P2\n# comment\n2 2 # trailing comment\n15\n0 15\n7\n8\n"
	f, err := ReadPGM(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 15, 7, 8}, f.Pix)
}

func TestReadPGMErrors(t *testing.T) {
	_, err := ReadPGM(strings.NewReader("P6\n1 1\n255\n"))
	assert.Error(t, err)

	_, err = ReadPGM(strings.NewReader("P5\n1 1\n65535\n"))
	assert.EqualError(t, err, "unsupported PGM maxval 65535")

	_, err = ReadPGM(strings.NewReader("P2\n2 1\n10\n3 11\n"))
	assert.EqualError(t, err, "PGM sample 11 exceeds maxval 10")

	_, err = ReadPGM(bytes.NewReader(append([]byte("P5\n2 2\n255\n"), 1, 2)))
	assert.Error(t, err)
}

func TestReadPGMRejectsOversizedHeader(t *testing.T) {
	for _, header := range []string{
		"P5\n4294967296 4294967296\n255\n",
		"P5\n100000 100000\n255\n",
		"P2\n70000 1000\n255\n",
	} {
		f, err := ReadPGM(strings.NewReader(header))
		assert.True(t, errors.Is(err, ErrInvalidArgument), header)
		assert.Nil(t, f)
	}
}

func TestWritePGMIsReadable(t *testing.T) {
	f := New(3, 3)
	for i := range f.Pix {
		f.Pix[i] = uint8(i * 20)
	}
	var buf bytes.Buffer
	require.NoError(t, WritePGM(&buf, f))
	assert.True(t, strings.HasPrefix(buf.String(), "P5\n3 3\n255\n"))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestDecodePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	img.Set(1, 1, color.RGBA{A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	f, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, f.Width)
	assert.Equal(t, 2, f.Height)
	assert.Equal(t, uint8(200), f.At(0, 0))
	assert.Equal(t, uint8(0), f.At(1, 1))
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	f := New(5, 3)
	for i := range f.Pix {
		f.Pix[i] = uint8(i * 17)
	}

	for _, name := range []string{"frame.pgm", "frame.png", "frame.PNG"} {
		filename := filepath.Join(dir, name)
		require.NoError(t, Save(filename, f))
		got, err := Load(filename)
		require.NoError(t, err)
		assert.Equal(t, f, got, name)
	}

	buf, err := ioutil.ReadFile(filepath.Join(dir, "frame.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf, []byte("\x89PNG")))

	assert.True(t, errors.Is(Save(filepath.Join(dir, "bad.pgm"), &Frame{Width: 2, Height: 2}), ErrInvalidArgument))
}

func TestImageCopiesPixels(t *testing.T) {
	f := New(2, 2)
	f.Fill(7)
	g := f.Image()
	g.Pix[0] = 1
	assert.Equal(t, uint8(7), f.Pix[0])
	assert.Equal(t, uint8(7), g.GrayAt(1, 1).Y)
}

func TestFromThermal(t *testing.T) {
	pix := [][]uint16{
		{3000, 3100},
		{3200, 3510},
	}
	f := FromThermal(pix)
	require.NoError(t, f.Validate())
	assert.Equal(t, uint8(0), f.At(0, 0))
	assert.Equal(t, uint8(50), f.At(1, 0))
	assert.Equal(t, uint8(100), f.At(0, 1))
	assert.Equal(t, uint8(255), f.At(1, 1))
}

func TestFromThermalFlatFrame(t *testing.T) {
	f := FromThermal([][]uint16{{3300, 3300}, {3300, 3300}})
	assert.Equal(t, []uint8{0, 0, 0, 0}, f.Pix)
}
