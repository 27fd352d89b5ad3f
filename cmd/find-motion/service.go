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
	"log"
	"sync"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/godbus/dbus"
	"github.com/godbus/dbus/introspect"

	"github.com/TheCacophonyProject/find-motion/events"
	"github.com/TheCacophonyProject/find-motion/frame"
	"github.com/TheCacophonyProject/find-motion/loglimiter"
	"github.com/TheCacophonyProject/find-motion/motion"
	"github.com/TheCacophonyProject/find-motion/pipeline"
	"github.com/TheCacophonyProject/find-motion/status"
	"github.com/TheCacophonyProject/find-motion/throttle"
)

const (
	dbusName = "org.cacophony.findmotion"
	dbusPath = "/org/cacophony/findmotion"

	errorLogInterval = time.Minute
)

var errThrottled = errors.New("too many estimations, try again later")

type service struct {
	mu         sync.Mutex
	conf       *Config
	signal     status.Signal
	estimator  *motion.Estimator
	throttler  *throttle.Throttler
	logLimiter *loglimiter.LogLimiter
	queueEvent func(eventType string, details map[string]interface{}, ts time.Time) error
}

func newService(conf *Config, signal status.Signal, throttler *throttle.Throttler) *service {
	return &service{
		conf:       conf,
		signal:     signal,
		estimator:  motion.NewEstimator(conf.Motion),
		throttler:  throttler,
		logLimiter: loglimiter.New(errorLogInterval),
		queueEvent: events.Queue,
	}
}

func runService(conf *Config, signal status.Signal) error {
	var listener throttle.ThrottledEventListener
	if conf.Events.Enabled {
		listener = throttle.ThrottledEventRecorder{}
	}
	s := newService(conf, signal, throttle.NewThrottler(&conf.Service, listener))

	log.Println("starting d-bus service")
	if err := startService(s); err != nil {
		return err
	}
	daemon.SdNotify(false, "READY=1")

	// Requests are handled on the D-Bus connection's goroutines.
	select {}
}

func startService(s *service) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	reply, err := conn.RequestName(dbusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errors.New("name already taken")
	}

	conn.Export(s, dbusPath, dbusName)
	conn.Export(genIntrospectable(s), dbusPath, "org.freedesktop.DBus.Introspectable")
	return nil
}

func genIntrospectable(v interface{}) introspect.Introspectable {
	node := &introspect.Node{
		Interfaces: []introspect.Interface{{
			Name:    dbusName,
			Methods: introspect.Methods(v),
		}},
	}
	return introspect.NewIntrospectable(node)
}

// Estimate finds the motion between two frame files and returns the
// mean, min and max vector magnitude.
func (s *service) Estimate(prevFile, currFile string) (float64, float64, float64, *dbus.Error) {
	if !s.throttler.Allow() {
		return 0, 0, 0, makeDbusError("Estimate", errThrottled)
	}

	result, err := s.estimate(prevFile, currFile)
	if err != nil {
		s.logLimiter.Printf("estimation failed: %v", err)
		return 0, 0, 0, makeDbusError("Estimate", err)
	}
	log.Printf("%s -> %s: mean %.1f, max %.1f (filter %s, estimate %s)",
		prevFile, currFile, result.Stats.Mean, result.Stats.Max,
		result.FilterTime, result.EstimateTime)

	if s.conf.Events.Enabled {
		details := events.MotionFieldDetails(prevFile, currFile, result.Stats.Mean, result.Stats.Max)
		if err := s.queueEvent(events.MotionFieldType, details, time.Now()); err != nil {
			s.logLimiter.Printf("could not queue motion field event: %v", err)
		}
	}

	return float64(result.Stats.Mean), float64(result.Stats.Min), float64(result.Stats.Max), nil
}

// estimate runs one pipeline at a time, since they share the status signal.
func (s *service) estimate(prevFile, currFile string) (*pipeline.Result, error) {
	prev, err := frame.Load(prevFile)
	if err != nil {
		return nil, err
	}
	curr, err := frame.Load(currFile)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return pipeline.Run(context.Background(), prev, curr, pipeline.Options{
		Signal:       s.signal,
		Estimator:    s.estimator,
		OutputDir:    s.conf.OutputDir,
		OutputFormat: s.conf.OutputFormat,
	})
}

func makeDbusError(name string, err error) *dbus.Error {
	return &dbus.Error{
		Name: dbusName + "." + name,
		Body: []interface{}{err.Error()},
	}
}
