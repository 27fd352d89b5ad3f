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

// Package frame holds 8-bit grayscale frames and reads them from
// PGM files, common image formats and CPTV thermal recordings.
package frame

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is wrapped by every precondition failure reported
// at the API boundary (bad dimensions, short buffers, mismatched frames).
var ErrInvalidArgument = errors.New("invalid argument")

// Frame is a single grayscale image. Pix is row-major with one sample
// per pixel, so len(Pix) == Width*Height.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// New returns a zeroed frame of the given size.
func New(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// Validate checks that the buffer matches the frame dimensions.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("nil frame: %w", ErrInvalidArgument)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("frame size %dx%d: %w", f.Width, f.Height, ErrInvalidArgument)
	}
	if f.Width > math.MaxInt/f.Height {
		return fmt.Errorf("frame size %dx%d is too large: %w", f.Width, f.Height, ErrInvalidArgument)
	}
	if len(f.Pix) != f.Width*f.Height {
		return fmt.Errorf("frame buffer holds %d samples, %dx%d needs %d: %w",
			len(f.Pix), f.Width, f.Height, f.Width*f.Height, ErrInvalidArgument)
	}
	return nil
}

// SameSize returns an error unless both frames are valid and have
// identical dimensions.
func SameSize(a, b *Frame) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if a.Width != b.Width || a.Height != b.Height {
		return fmt.Errorf("frame sizes do not match (%dx%d vs %dx%d): %w",
			a.Width, a.Height, b.Width, b.Height, ErrInvalidArgument)
	}
	return nil
}

func (f *Frame) At(x, y int) uint8 {
	return f.Pix[y*f.Width+x]
}

func (f *Frame) Set(x, y int, v uint8) {
	f.Pix[y*f.Width+x] = v
}

// Fill sets every pixel to v.
func (f *Frame) Fill(v uint8) {
	for i := range f.Pix {
		f.Pix[i] = v
	}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		Width:  f.Width,
		Height: f.Height,
		Pix:    make([]uint8, len(f.Pix)),
	}
	copy(out.Pix, f.Pix)
	return out
}
