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

// Package motion estimates a field of block motion vectors between two
// frames.
package motion

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/TheCacophonyProject/find-motion/blockmatch"
	"github.com/TheCacophonyProject/find-motion/frame"
)

// Step is the spacing in pixels between block anchors.
const Step = 8

// Grid cells closer than these to the near and far edges are never
// estimated and stay as zero vectors. Together with the search range
// this keeps every search window inside the frame.
const (
	nearMargin = 2
	farMargin  = 4
)

// Vector is the displacement of a block from the previous frame to the
// current one. Each component lies in [-16, 15].
type Vector struct {
	X, Y int8
}

// Field is a row-major grid of motion vectors, one per Step pixels.
type Field struct {
	Cols, Rows int
	Vectors    []Vector
}

// NewField returns a zeroed field for a frame of the given size.
func NewField(width, height int) *Field {
	cols, rows := width/Step, height/Step
	return &Field{
		Cols:    cols,
		Rows:    rows,
		Vectors: make([]Vector, cols*rows),
	}
}

func (f *Field) At(col, row int) Vector {
	return f.Vectors[row*f.Cols+col]
}

func (f *Field) set(col, row int, v Vector) {
	f.Vectors[row*f.Cols+col] = v
}

// Len returns the number of vectors in the field.
func (f *Field) Len() int {
	return len(f.Vectors)
}

// Estimated reports whether the cell at (col, row) is inside the
// estimated region, as opposed to the zero margin.
func (f *Field) Estimated(col, row int) bool {
	return col >= nearMargin && col < f.Cols-farMargin &&
		row >= nearMargin && row < f.Rows-farMargin
}

// Estimate computes the motion field of curr relative to prev using a
// single goroutine.
func Estimate(prev, curr *frame.Frame) (*Field, error) {
	return NewEstimator(DefaultConfig()).Estimate(context.Background(), prev, curr)
}

// NewEstimator returns an Estimator using conf. A worker count below one
// is treated as one.
func NewEstimator(conf Config) *Estimator {
	workers := conf.Workers
	if workers < 1 {
		workers = 1
	}
	return &Estimator{workers: workers}
}

// Estimator runs the block search over every estimated grid cell. Rows
// of the grid are independent, so they may be searched concurrently;
// the result does not depend on the worker count.
type Estimator struct {
	workers int
}

// Estimate computes the motion field of curr relative to prev. It stops
// scheduling rows once ctx is done and returns ctx.Err().
func (e *Estimator) Estimate(ctx context.Context, prev, curr *frame.Frame) (*Field, error) {
	if err := frame.SameSize(prev, curr); err != nil {
		return nil, err
	}

	field := NewField(prev.Width, prev.Height)
	firstRow, lastRow := nearMargin, field.Rows-farMargin

	if e.workers == 1 {
		for row := firstRow; row < lastRow; row++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			estimateRow(field, row, prev, curr)
		}
		return field, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for row := firstRow; row < lastRow; row++ {
		row := row
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			estimateRow(field, row, prev, curr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("estimating motion: %w", err)
	}
	return field, nil
}

// estimateRow fills one grid row. Only cells of that row are written.
func estimateRow(field *Field, row int, prev, curr *frame.Frame) {
	for col := nearMargin; col < field.Cols-farMargin; col++ {
		r := blockmatch.Match(col*Step, row*Step, prev.Pix, curr.Pix, prev.Width)
		field.set(col, row, Vector{X: int8(r.DX), Y: int8(r.DY)})
	}
}
