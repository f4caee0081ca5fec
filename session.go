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
	"context"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/opentracing/opentracing-go"

	"go.elastic.co/cqltrace/driver"
	"go.elastic.co/cqltrace/spanname"
)

// DefaultSpanName is the name given to spans when no naming strategy
// is configured with WithQuerySpanName.
const DefaultSpanName = "execute"

// TracingSession is a driver.Session decorator that reports a span
// for every query execution. It is a drop-in substitute for the
// session it wraps.
type TracingSession struct {
	session driver.Session
	tracer  opentracing.Tracer

	spanName spanname.Provider
	executor driver.Executor
	pool     *poolExecutor // non-nil iff the session owns its executor
	logger   Logger

	extractParams    bool
	extractParamsSet bool
	closeTimeout     time.Duration
	closeTimeoutSet  bool
}

// Wrap returns a TracingSession wrapping session. Wrap panics if
// session is nil.
//
// The wrapped session remains owned by the caller, but closing the
// TracingSession closes it.
func Wrap(session driver.Session, opts ...Option) *TracingSession {
	if session == nil {
		panic("session == nil")
	}
	s := &TracingSession{
		session:  session,
		spanName: spanname.Fixed(DefaultSpanName),
	}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	if s.tracer == nil {
		s.tracer = opentracing.GlobalTracer()
	}
	if !s.extractParamsSet {
		v, err := initialExtractQueryParameters()
		if err != nil {
			v = defaultExtractQueryParameters
			s.logger.Errorf("%s", err)
		}
		s.extractParams = v
	}
	if !s.closeTimeoutSet {
		d, err := initialCloseTimeout()
		if err != nil {
			d = defaultCloseTimeout
			s.logger.Errorf("%s", err)
		}
		s.closeTimeout = d
	}
	if s.executor == nil {
		s.pool = newPoolExecutor()
		s.executor = s.pool
	}
	return s
}

// Session returns the wrapped session.
func (s *TracingSession) Session() driver.Session {
	return s.session
}

// Execute executes a query with optional positional values, reporting
// a span for the execution. The query's results and error are
// returned exactly as the wrapped session produced them.
func (s *TracingSession) Execute(ctx context.Context, query string, values ...interface{}) (driver.ResultSet, error) {
	span := s.buildSpan(ctx, query)
	if s.extractParams {
		s.tagPositionalValues(span, values)
	}
	rs, err := s.session.Execute(ctx, query, values...)
	if err != nil {
		finishSpanWithError(span, err)
		return rs, err
	}
	finishSpan(span, rs)
	return rs, nil
}

// ExecuteStatement executes a pre-built statement, reporting a span
// for the execution. Bound statement parameters are tagged on the
// span; see the package documentation for the key scheme.
func (s *TracingSession) ExecuteStatement(ctx context.Context, stmt driver.Statement) (driver.ResultSet, error) {
	span := s.buildSpanForStatement(ctx, stmt)
	rs, err := s.session.ExecuteStatement(ctx, stmt)
	if err != nil {
		finishSpanWithError(span, err)
		return rs, err
	}
	finishSpan(span, rs)
	return rs, nil
}

// ExecuteAsync starts executing a query with optional positional
// values, reporting a span for the execution. The returned future
// completes with the execution's outcome after the span has
// finished: a caller that has observed completion can rely on the
// span having been reported.
func (s *TracingSession) ExecuteAsync(ctx context.Context, query string, values ...interface{}) *driver.ResultSetFuture {
	span := s.buildSpan(ctx, query)
	if s.extractParams {
		s.tagPositionalValues(span, values)
	}
	return s.traceFuture(span, s.session.ExecuteAsync(ctx, query, values...))
}

// ExecuteStatementAsync starts executing a pre-built statement,
// reporting a span for the execution. Completion ordering is as for
// ExecuteAsync.
func (s *TracingSession) ExecuteStatementAsync(ctx context.Context, stmt driver.Statement) *driver.ResultSetFuture {
	span := s.buildSpanForStatement(ctx, stmt)
	return s.traceFuture(span, s.session.ExecuteStatementAsync(ctx, stmt))
}

func (s *TracingSession) buildSpanForStatement(ctx context.Context, stmt driver.Statement) opentracing.Span {
	span := s.buildSpan(ctx, stmt.QueryString())
	if s.extractParams {
		if bound, ok := stmt.(driver.BoundStatement); ok {
			s.tagBoundValues(span, bound)
		}
	}
	return span
}

// traceFuture returns a future that completes with inner's outcome
// once the span has been finished. The single listener on inner runs
// on the session's executor.
func (s *TracingSession) traceFuture(span opentracing.Span, inner *driver.ResultSetFuture) *driver.ResultSetFuture {
	outer := driver.NewResultSetFuture()
	inner.AddListener(func() {
		rs, err := inner.Get(context.Background())
		if err != nil {
			finishSpanWithError(span, err)
		} else {
			finishSpan(span, rs)
		}
		outer.Complete(rs, err)
	}, s.executor)
	return outer
}

// Prepare prepares a query on the wrapped session. Preparation is
// not traced.
func (s *TracingSession) Prepare(ctx context.Context, query string) (driver.PreparedStatement, error) {
	return s.session.Prepare(ctx, query)
}

// PrepareAsync starts preparing a query on the wrapped session.
// Preparation is not traced.
func (s *TracingSession) PrepareAsync(ctx context.Context, query string) *driver.PreparedStatementFuture {
	return s.session.PrepareAsync(ctx, query)
}

// Keyspace returns the wrapped session's keyspace.
func (s *TracingSession) Keyspace() string {
	return s.session.Keyspace()
}

// State returns the wrapped session's view of the cluster.
func (s *TracingSession) State() driver.SessionState {
	return s.session.State()
}

// Closed reports whether the wrapped session has been closed.
func (s *TracingSession) Closed() bool {
	return s.session.Closed()
}

// Close closes the wrapped session. If the session owns its
// executor, Close then waits for completion callbacks in flight,
// bounded by the configured close timeout; an executor supplied with
// WithExecutor is left untouched.
func (s *TracingSession) Close() error {
	var result *multierror.Error
	if err := s.session.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if s.pool != nil {
		if err := s.pool.Close(s.closeTimeout); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// CloseAsync starts closing the wrapped session. The session-owned
// executor, if any, is not waited for; use Close for that.
func (s *TracingSession) CloseAsync() *driver.CloseFuture {
	return s.session.CloseAsync()
}

var _ driver.Session = (*TracingSession)(nil)
