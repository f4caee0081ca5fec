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

package cqllog

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	os.Unsetenv("CQLTRACE_LOG_FILE")
	os.Unsetenv("CQLTRACE_LOG_LEVEL")
	DefaultLogger = nil
}

func TestInitDefaultLoggerNoEnv(t *testing.T) {
	DefaultLogger = nil
	initDefaultLogger()
	assert.Nil(t, DefaultLogger)
}

func TestInitDefaultLoggerInvalidFile(t *testing.T) {
	var logbuf bytes.Buffer
	log.SetOutput(&logbuf)

	DefaultLogger = nil
	t.Setenv("CQLTRACE_LOG_FILE", ".")
	initDefaultLogger()

	assert.Nil(t, DefaultLogger)
	assert.Regexp(t, `failed to create "\.": .* \(disabling logging\)`, logbuf.String())
}

func TestInitDefaultLoggerFile(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), "log.json")

	DefaultLogger = nil
	t.Setenv("CQLTRACE_LOG_FILE", logfile)
	initDefaultLogger()

	require.NotNil(t, DefaultLogger)
	DefaultLogger.Debugf("debug message")
	DefaultLogger.Errorf("error message")

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.Regexp(t, `{"level":"error","time":".*","message":"error message"}`, string(data))
	assert.NotContains(t, string(data), "debug message")
}

func TestInitDefaultLoggerInvalidLevel(t *testing.T) {
	var logbuf bytes.Buffer
	log.SetOutput(&logbuf)

	logfile := filepath.Join(t.TempDir(), "log.json")

	DefaultLogger = nil
	t.Setenv("CQLTRACE_LOG_FILE", logfile)
	t.Setenv("CQLTRACE_LOG_LEVEL", "panic")
	initDefaultLogger()

	require.NotNil(t, DefaultLogger)
	DefaultLogger.Debugf("debug message")
	DefaultLogger.Errorf("error message")

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.Regexp(t, `{"level":"error","time":".*","message":"error message"}`, string(data))
	assert.Regexp(t, `invalid CQLTRACE_LOG_LEVEL "panic", falling back to "error"`, logbuf.String())
}

func TestInitDefaultLoggerLevel(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), "log.json")

	DefaultLogger = nil
	t.Setenv("CQLTRACE_LOG_FILE", logfile)
	t.Setenv("CQLTRACE_LOG_LEVEL", "debug")
	initDefaultLogger()

	require.NotNil(t, DefaultLogger)
	DefaultLogger.Debugf("debug message")
	DefaultLogger.Errorf("error message")

	data, err := os.ReadFile(logfile)
	require.NoError(t, err)
	assert.Regexp(t, `
{"level":"debug","time":".*","message":"debug message"}
{"level":"error","time":".*","message":"error message"}`[1:],
		string(data))
}

func TestLevelLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLevelLogger(&buf, errorLevel)

	logger.Debugf("dropped")
	assert.Zero(t, buf.Len())

	logger.SetLevel(debugLevel)
	logger.Debugf("recorded")
	assert.Regexp(t, `{"level":"debug","time":".*","message":"recorded"}`, buf.String())
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("WARN")
	assert.NoError(t, err)
	assert.Equal(t, warnLevel, level)

	_, err = ParseLogLevel("panic")
	assert.EqualError(t, err, `invalid log level string "panic"`)
}
