// Licensed to Elasticsearch B.V. under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Elasticsearch B.V. licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package cqlconfig provides environment-based configuration parsing
// for cqltrace.
package cqlconfig

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ParseBoolEnv gets the value of the environment variable envKey
// and, if set, parses it as a boolean. If the environment variable
// is unset, defaultValue is returned.
func ParseBoolEnv(envKey string, defaultValue bool) (bool, error) {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.Wrapf(err, "failed to parse %s", envKey)
	}
	return b, nil
}

// ParseDurationEnv gets the value of the environment variable envKey
// and, if set, parses it as a duration. If the environment variable
// is unset, defaultDuration is returned.
func ParseDurationEnv(envKey string, defaultDuration time.Duration) (time.Duration, error) {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultDuration, nil
	}
	d, err := ParseDuration(value)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse %s", envKey)
	}
	return d, nil
}

var durationUnits = map[string]time.Duration{
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
}

// ParseDuration parses s as a duration, accepting a subset of the
// syntax supported by time.ParseDuration.
//
// Valid time units are "ms", "s", "m".
func ParseDuration(s string) (time.Duration, error) {
	orig := s
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	sep := -1
	for i, c := range s {
		if c < '0' || c > '9' {
			sep = i
			break
		}
	}
	if sep == -1 {
		return 0, errors.Errorf("missing unit in duration %s (allowed units: ms, s, m)", orig)
	}
	n, err := strconv.ParseInt(s[:sep], 10, 32)
	if err != nil {
		return 0, errors.Errorf("invalid duration %s", orig)
	}
	unit, ok := durationUnits[s[sep:]]
	if !ok {
		return 0, errors.Errorf("invalid unit in duration %s (allowed units: ms, s, m)", orig)
	}
	d := unit * time.Duration(n)
	if neg {
		d = -d
	}
	return d, nil
}
