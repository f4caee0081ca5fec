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

package cqlconfig_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go.elastic.co/cqltrace/internal/cqlconfig"
)

func TestParseBoolEnv(t *testing.T) {
	const envKey = "CQLTRACE_TEST_BOOL"
	t.Setenv(envKey, "")

	b, err := cqlconfig.ParseBoolEnv(envKey, true)
	assert.NoError(t, err)
	assert.True(t, b)

	t.Setenv(envKey, "true")
	b, err = cqlconfig.ParseBoolEnv(envKey, false)
	assert.NoError(t, err)
	assert.True(t, b)

	t.Setenv(envKey, "false")
	b, err = cqlconfig.ParseBoolEnv(envKey, true)
	assert.NoError(t, err)
	assert.False(t, b)

	t.Setenv(envKey, "falsk")
	_, err = cqlconfig.ParseBoolEnv(envKey, true)
	assert.EqualError(t, err, `failed to parse CQLTRACE_TEST_BOOL: strconv.ParseBool: parsing "falsk": invalid syntax`)
}

func TestParseDurationEnv(t *testing.T) {
	const envKey = "CQLTRACE_TEST_DURATION"
	t.Setenv(envKey, "")

	d, err := cqlconfig.ParseDurationEnv(envKey, 42*time.Second)
	assert.NoError(t, err)
	assert.Equal(t, 42*time.Second, d)

	t.Setenv(envKey, "5s")
	d, err = cqlconfig.ParseDurationEnv(envKey, 42*time.Second)
	assert.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	t.Setenv(envKey, "5ms")
	d, err = cqlconfig.ParseDurationEnv(envKey, 42*time.Second)
	assert.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, d)

	t.Setenv(envKey, "5")
	_, err = cqlconfig.ParseDurationEnv(envKey, 42*time.Second)
	assert.EqualError(t, err, "failed to parse CQLTRACE_TEST_DURATION: missing unit in duration 5 (allowed units: ms, s, m)")
}

func TestParseDuration(t *testing.T) {
	d, err := cqlconfig.ParseDuration("-10m")
	assert.NoError(t, err)
	assert.Equal(t, -10*time.Minute, d)

	_, err = cqlconfig.ParseDuration("10h")
	assert.EqualError(t, err, "invalid unit in duration 10h (allowed units: ms, s, m)")

	_, err = cqlconfig.ParseDuration("ms")
	assert.EqualError(t, err, "invalid duration ms")
}
