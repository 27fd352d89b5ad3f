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
	"errors"
	"io/ioutil"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/TheCacophonyProject/find-motion/events"
	"github.com/TheCacophonyProject/find-motion/motion"
	"github.com/TheCacophonyProject/find-motion/status"
	"github.com/TheCacophonyProject/find-motion/throttle"
)

type Config struct {
	Motion       motion.Config            `yaml:"motion"`
	Status       status.StatusConfig      `yaml:"status"`
	Service      throttle.ThrottlerConfig `yaml:"service"`
	Events       events.EventsConfig      `yaml:"events"`
	OutputDir    string                   `yaml:"output-dir"`
	OutputFormat string                   `yaml:"output-format"`
}

func (conf *Config) Validate() error {
	if err := conf.Motion.Validate(); err != nil {
		return err
	}
	if err := conf.Service.Validate(); err != nil {
		return err
	}
	if conf.OutputFormat != "pgm" && conf.OutputFormat != "png" {
		return errors.New("output-format should be pgm or png")
	}
	return nil
}

var defaultConfig = Config{
	Motion:       motion.DefaultConfig(),
	Status:       status.DefaultStatusConfig(),
	Service:      throttle.DefaultThrottlerConfig(),
	Events:       events.DefaultEventsConfig(),
	OutputDir:    "",
	OutputFormat: "pgm",
}

// ParseConfigFile reads the configuration from filename. A missing file
// gives the defaults.
func ParseConfigFile(filename string) (*Config, error) {
	buf, err := ioutil.ReadFile(filename)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return ParseConfig(buf)
}

func ParseConfig(buf []byte) (*Config, error) {
	conf := defaultConfig
	if err := yaml.Unmarshal(buf, &conf); err != nil {
		return nil, err
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}
