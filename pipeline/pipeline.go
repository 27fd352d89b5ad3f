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

// Package pipeline runs the full filter, estimate and summarise sequence
// over a pair of frames.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TheCacophonyProject/find-motion/frame"
	"github.com/TheCacophonyProject/find-motion/median"
	"github.com/TheCacophonyProject/find-motion/motion"
	"github.com/TheCacophonyProject/find-motion/stats"
	"github.com/TheCacophonyProject/find-motion/status"
)

// Base names of the filtered frames written to Options.OutputDir.
const (
	prevFilteredBase = "prev-filtered"
	currFilteredBase = "curr-filtered"
)

// Options configures a Run. Zero values fall back to NoSignal, the
// system clock, a single-worker estimator and PGM output.
type Options struct {
	Signal       status.Signal
	Clock        status.Clock
	Estimator    *motion.Estimator
	OutputDir    string
	OutputFormat string // "pgm" or "png"
}

// Result is everything a Run produces.
type Result struct {
	Field        *motion.Field
	Stats        stats.Statistics
	FilterTime   time.Duration
	EstimateTime time.Duration
}

// Run filters copies of prev and curr, estimates the motion field between
// them and summarises it. The caller's frames are left untouched. The
// signal is turned on for the filter and estimate stages and is always
// turned off again before Run returns.
func Run(ctx context.Context, prev, curr *frame.Frame, opts Options) (result *Result, err error) {
	if err := frame.SameSize(prev, curr); err != nil {
		return nil, err
	}
	opts = withDefaults(opts)

	if err := opts.Signal.On(); err != nil {
		return nil, err
	}
	defer func() {
		if offErr := opts.Signal.Off(); offErr != nil && err == nil {
			result, err = nil, offErr
		}
	}()

	sw := status.NewStopwatch(opts.Clock)
	prev, curr = prev.Clone(), curr.Clone()
	if err := filterPair(ctx, prev, curr); err != nil {
		return nil, err
	}
	filterTime := sw.Lap()

	if opts.OutputDir != "" {
		if err := writeFiltered(opts.OutputDir, opts.OutputFormat, prev, curr); err != nil {
			return nil, err
		}
		// Writing the frames isn't part of either stage.
		sw.Lap()
	}

	field, err := opts.Estimator.Estimate(ctx, prev, curr)
	if err != nil {
		return nil, err
	}
	estimateTime := sw.Lap()

	s, err := stats.Compute(field)
	if err != nil {
		return nil, err
	}

	return &Result{
		Field:        field,
		Stats:        s,
		FilterTime:   filterTime,
		EstimateTime: estimateTime,
	}, nil
}

func withDefaults(opts Options) Options {
	if opts.Signal == nil {
		opts.Signal = status.NoSignal{}
	}
	if opts.Clock == nil {
		opts.Clock = status.SystemClock{}
	}
	if opts.Estimator == nil {
		opts.Estimator = motion.NewEstimator(motion.DefaultConfig())
	}
	if opts.OutputFormat == "" {
		opts.OutputFormat = "pgm"
	}
	return opts
}

// filterPair median filters both frames. They are separate buffers so
// they can be filtered at the same time.
func filterPair(ctx context.Context, prev, curr *frame.Frame) error {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return median.Filter(prev) })
	g.Go(func() error { return median.Filter(curr) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("filtering frames: %w", err)
	}
	return ctx.Err()
}

// FilteredFilename returns where Run writes a filtered frame.
func FilteredFilename(dir, format string, curr bool) string {
	base := prevFilteredBase
	if curr {
		base = currFilteredBase
	}
	return filepath.Join(dir, base+"."+format)
}

func writeFiltered(dir, format string, prev, curr *frame.Frame) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, f := range []struct {
		filename string
		frame    *frame.Frame
	}{
		{FilteredFilename(dir, format, false), prev},
		{FilteredFilename(dir, format, true), curr},
	} {
		if err := frame.Save(f.filename, f.frame); err != nil {
			return err
		}
		log.Printf("wrote filtered frame to %s", f.filename)
	}
	return nil
}
