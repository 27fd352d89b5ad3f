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
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Register image format decoders
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load reads a frame from the named file. See Decode.
func Load(filename string) (*Frame, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return f, nil
}

// Decode reads a PGM image directly, or any registered image format
// (png, jpeg, gif, bmp, tiff, webp) converted to 8-bit gray.
func Decode(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if s := string(magic); s == pgmBinaryMagic || s == pgmPlainMagic {
		return ReadPGM(br)
	}

	img, format, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("decoding image (format=%s): %w", format, err)
	}
	return FromImage(img), nil
}

// FromImage converts any image to a grayscale frame.
func FromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	gray, ok := img.(*image.Gray)
	if !ok || gray.Stride != bounds.Dx() {
		gray = image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		xdraw.Draw(gray, gray.Bounds(), img, bounds.Min, xdraw.Src)
	}
	f := New(bounds.Dx(), bounds.Dy())
	copy(f.Pix, gray.Pix)
	return f
}

// Image returns the frame as an image.Gray sharing no memory with f.
func (f *Frame) Image() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	copy(g.Pix, f.Pix)
	return g
}

// Save writes f to filename as PNG when the name ends in ".png" and as
// binary PGM otherwise.
func Save(filename string, f *Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(filename), ".png") {
		err = png.Encode(file, f.Image())
	} else {
		err = WritePGM(file, f)
	}
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
