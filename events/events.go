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

// Package events queues events on the device's event service over D-Bus.
package events

import (
	"encoding/json"
	"time"

	"github.com/godbus/dbus"
)

const (
	ThrottleType    = "estimation-throttled"
	MotionFieldType = "motion-field"

	eventsName   = "org.cacophony.Events"
	eventsPath   = "/org/cacophony/Events"
	eventsMethod = "org.cacophony.Events.Queue"
)

type EventsConfig struct {
	Enabled bool `yaml:"enabled"`
}

func DefaultEventsConfig() EventsConfig {
	return EventsConfig{
		Enabled: false,
	}
}

// Queue sends an event of the given type to the event service.
func Queue(eventType string, details map[string]interface{}, ts time.Time) error {
	detailsJSON, err := eventJSON(eventType, details)
	if err != nil {
		return err
	}

	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}

	obj := conn.Object(eventsName, eventsPath)
	call := obj.Call(eventsMethod, 0, detailsJSON, ts.UnixNano())
	return call.Err
}

func eventJSON(eventType string, details map[string]interface{}) ([]byte, error) {
	description := map[string]interface{}{
		"type": eventType,
	}
	if len(details) > 0 {
		description["details"] = details
	}
	return json.Marshal(map[string]interface{}{
		"description": description,
	})
}

// MotionFieldDetails are the event details describing one estimation.
func MotionFieldDetails(prevFile, currFile string, mean, max float32) map[string]interface{} {
	return map[string]interface{}{
		"prev": prevFile,
		"curr": currFile,
		"mean": mean,
		"max":  max,
	}
}
