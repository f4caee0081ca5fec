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

import (
	"time"

	"github.com/opentracing/opentracing-go"

	"go.elastic.co/cqltrace/driver"
	"go.elastic.co/cqltrace/spanname"
)

// Option sets options for a TracingSession.
type Option func(*TracingSession)

// WithTracer returns an Option which sets t as the tracer to use for
// starting spans. Defaults to opentracing.GlobalTracer().
func WithTracer(t opentracing.Tracer) Option {
	if t == nil {
		panic("t == nil")
	}
	return func(s *TracingSession) {
		s.tracer = t
	}
}

// WithQuerySpanName returns an Option which sets p as the strategy
// for deriving span names from query text. Defaults to
// spanname.Fixed(DefaultSpanName).
func WithQuerySpanName(p spanname.Provider) Option {
	if p == nil {
		panic("p == nil")
	}
	return func(s *TracingSession) {
		s.spanName = p
	}
}

// WithExecutor returns an Option which sets e as the executor for
// dispatching asynchronous completion callbacks. The session does
// not manage e's lifecycle: closing the session leaves e running.
//
// When no executor is supplied the session owns one, running each
// callback on its own goroutine, and waits for callbacks in flight
// when the session is closed.
func WithExecutor(e driver.Executor) Option {
	if e == nil {
		panic("e == nil")
	}
	return func(s *TracingSession) {
		s.executor = e
	}
}

// WithParameterExtraction returns an Option which enables or
// disables tagging spans with bound query parameter values. Defaults
// to true, or to the value of the environment variable
// CQLTRACE_EXTRACT_QUERY_PARAMETERS if set.
func WithParameterExtraction(enabled bool) Option {
	return func(s *TracingSession) {
		s.extractParams = enabled
		s.extractParamsSet = true
	}
}

// WithLogger returns an Option which sets l as the session's logger.
// Defaults to the logger configured through the CQLTRACE_LOG_*
// environment variables, if any.
func WithLogger(l Logger) Option {
	if l == nil {
		panic("l == nil")
	}
	return func(s *TracingSession) {
		s.logger = l
	}
}

// WithCloseTimeout returns an Option which sets d as the maximum
// time Close waits for the session-owned executor to finish
// callbacks in flight. A non-positive d means wait indefinitely.
// Defaults to 10s, or to the value of the environment variable
// CQLTRACE_CLOSE_TIMEOUT if set.
//
// The timeout has no effect when an executor is supplied with
// WithExecutor.
func WithCloseTimeout(d time.Duration) Option {
	return func(s *TracingSession) {
		s.closeTimeout = d
		s.closeTimeoutSet = true
	}
}
