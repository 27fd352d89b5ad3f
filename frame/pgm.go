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
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	pgmBinaryMagic = "P5"
	pgmPlainMagic  = "P2"
	pgmMaxVal      = 255

	// MaxPGMPixels bounds the raster a PGM header may declare.
	MaxPGMPixels = 1 << 26
)

// ReadPGM reads a binary (P5) or plain (P2) PGM image. Sample values
// are stored as read; maxval must not exceed 255.
func ReadPGM(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("reading PGM magic: %w", err)
	}
	plain := false
	switch string(magic) {
	case pgmBinaryMagic:
	case pgmPlainMagic:
		plain = true
	default:
		return nil, fmt.Errorf("not a PGM file (magic %q)", magic)
	}

	var header [3]int
	for i := range header {
		v, err := readPGMInt(br)
		if err != nil {
			return nil, fmt.Errorf("reading PGM header: %w", err)
		}
		header[i] = v
	}
	width, height, maxVal := header[0], header[1], header[2]
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bad PGM size %dx%d", width, height)
	}
	if width > MaxPGMPixels/height {
		return nil, fmt.Errorf("PGM size %dx%d exceeds %d pixels: %w",
			width, height, MaxPGMPixels, ErrInvalidArgument)
	}
	if maxVal <= 0 || maxVal > pgmMaxVal {
		return nil, fmt.Errorf("unsupported PGM maxval %d", maxVal)
	}

	f := New(width, height)
	if plain {
		for i := range f.Pix {
			v, err := readPGMInt(br)
			if err != nil {
				return nil, fmt.Errorf("reading PGM sample %d: %w", i, err)
			}
			if v > maxVal {
				return nil, fmt.Errorf("PGM sample %d exceeds maxval %d", v, maxVal)
			}
			f.Pix[i] = uint8(v)
		}
		return f, nil
	}

	// Exactly one whitespace byte separates maxval from the raster.
	if _, err := br.ReadByte(); err != nil {
		return nil, fmt.Errorf("reading PGM raster: %w", err)
	}
	if _, err := io.ReadFull(br, f.Pix); err != nil {
		return nil, fmt.Errorf("reading PGM raster: %w", err)
	}
	return f, nil
}

// readPGMInt skips whitespace and comments and parses the next decimal
// token. The byte terminating the token is left unread.
func readPGMInt(br *bufio.Reader) (int, error) {
	var digits []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(digits) > 0 {
				break
			}
			if err == io.EOF {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		switch {
		case c == '#' && len(digits) == 0:
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return 0, err
			}
		case isPGMSpace(c):
			if len(digits) > 0 {
				if err := br.UnreadByte(); err != nil {
					return 0, err
				}
				return strconv.Atoi(string(digits))
			}
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		default:
			return 0, errors.New("unexpected character " + strconv.QuoteRune(rune(c)))
		}
	}
	return strconv.Atoi(string(digits))
}

func isPGMSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// WritePGM writes f as a binary (P5) PGM image.
func WritePGM(w io.Writer, f *Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", pgmBinaryMagic, f.Width, f.Height, pgmMaxVal); err != nil {
		return err
	}
	if _, err := bw.Write(f.Pix); err != nil {
		return err
	}
	return bw.Flush()
}
