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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	arg "github.com/alexflint/go-arg"

	"github.com/TheCacophonyProject/find-motion/events"
	"github.com/TheCacophonyProject/find-motion/frame"
	"github.com/TheCacophonyProject/find-motion/motion"
	"github.com/TheCacophonyProject/find-motion/pipeline"
	"github.com/TheCacophonyProject/find-motion/report"
	"github.com/TheCacophonyProject/find-motion/stats"
	"github.com/TheCacophonyProject/find-motion/status"
)

var version = "<not set>"

type Args struct {
	Prev       string `arg:"positional" help:"previous frame (PGM, PNG, JPEG, GIF, BMP, TIFF or WebP)"`
	Curr       string `arg:"positional" help:"current frame"`
	ConfigFile string `arg:"-c,--config" help:"path to configuration file"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
	CPTV       string `arg:"--cptv" help:"take both frames from this CPTV recording"`
	CPTVFrame  int    `arg:"--cptv-frame" help:"index of the previous frame in the CPTV recording"`
	Service    bool   `arg:"-s,--service" help:"run as a D-Bus service"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.ConfigFile = "/etc/find-motion.yaml"
	arg.MustParse(&args)
	return args
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()

	if !args.Timestamps {
		log.SetFlags(0) // Removes default timestamp flag
	}

	log.Printf("running version: %s", version)
	conf, err := ParseConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}
	logConfig(conf)

	signal, err := status.NewSignal(conf.Status)
	if err != nil {
		return err
	}

	if args.Service {
		return runService(conf, signal)
	}

	prev, curr, err := loadFrames(args)
	if err != nil {
		return err
	}
	log.Printf("frames are %dx%d", prev.Width, prev.Height)

	fmt.Print("\nBegin motion estimation ...\n\n")
	result, err := pipeline.Run(context.Background(), prev, curr, pipeline.Options{
		Signal:       signal,
		Estimator:    motion.NewEstimator(conf.Motion),
		OutputDir:    conf.OutputDir,
		OutputFormat: conf.OutputFormat,
	})
	if err != nil {
		return err
	}

	if err := writeReport(os.Stdout, result); err != nil {
		return err
	}

	if conf.Events.Enabled {
		details := events.MotionFieldDetails(args.Prev, args.Curr, result.Stats.Mean, result.Stats.Max)
		if err := events.Queue(events.MotionFieldType, details, time.Now()); err != nil {
			log.Printf("could not queue motion field event: %v", err)
		}
	}
	return nil
}

func loadFrames(args Args) (*frame.Frame, *frame.Frame, error) {
	if args.CPTV != "" {
		return frame.ReadCPTVPair(args.CPTV, args.CPTVFrame)
	}
	if args.Prev == "" || args.Curr == "" {
		return nil, nil, errors.New("two frame files are required (or --cptv)")
	}

	prev, err := frame.Load(args.Prev)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read input image 1: %w", err)
	}
	curr, err := frame.Load(args.Curr)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read input image 2: %w", err)
	}
	return prev, curr, nil
}

func writeReport(w io.Writer, result *pipeline.Result) error {
	if err := report.WriteField(w, result.Field); err != nil {
		return err
	}
	if err := report.WriteSummary(w, result); err != nil {
		return err
	}
	d, err := stats.Describe(result.Field)
	if err != nil {
		return err
	}
	return report.WriteDescription(w, d)
}

func logConfig(conf *Config) {
	log.Printf("motion: %+v", conf.Motion)
	if conf.Status.LEDPin != "" {
		log.Printf("status led pin: %s", conf.Status.LEDPin)
	}
	log.Printf("service throttle: %d estimations, one more every %s",
		conf.Service.BucketSize, conf.Service.Refill)
	log.Printf("events enabled: %t", conf.Events.Enabled)
	if conf.OutputDir != "" {
		log.Printf("output dir: %s (%s)", conf.OutputDir, conf.OutputFormat)
	}
}
