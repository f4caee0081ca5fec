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

package cqltrace // import "go.elastic.co/cqltrace"

import "go.elastic.co/cqltrace/internal/cqllog"

// Logger is the interface that TracingSession uses for logging its
// own behaviour: configuration problems and parameter tags it had to
// skip. It is satisfied by *zap.SugaredLogger, among others.
//
// Queries and query errors are never logged; they are reported on
// spans only.
type Logger interface {
	// Debugf logs a message at debug level.
	Debugf(format string, args ...interface{})

	// Errorf logs a message at error level.
	Errorf(format string, args ...interface{})
}

// defaultLogger returns the logger configured through CQLTRACE_LOG_*,
// or a no-op logger when none is configured.
func defaultLogger() Logger {
	if cqllog.DefaultLogger != nil {
		return cqllog.DefaultLogger
	}
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}
func (nopLogger) Errorf(format string, args ...interface{}) {}
