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
	"encoding/binary"
	"reflect"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"

	"go.elastic.co/cqltrace/driver"
	"go.elastic.co/cqltrace/internal/stacktrace"
)

const (
	componentName = "go-cassandra"
	databaseType  = "cassandra"
)

// buildSpan starts a span for the execution of query, named by the
// session's naming strategy and parented to the span in ctx, if any.
func (s *TracingSession) buildSpan(ctx context.Context, query string) opentracing.Span {
	opts := []opentracing.StartSpanOption{
		ext.SpanKindRPCClient,
		opentracing.Tag{Key: string(ext.Component), Value: componentName},
		opentracing.Tag{Key: string(ext.DBStatement), Value: query},
		opentracing.Tag{Key: string(ext.DBType), Value: databaseType},
	}
	if keyspace := s.session.Keyspace(); keyspace != "" {
		opts = append(opts, opentracing.Tag{Key: string(ext.DBInstance), Value: keyspace})
	}
	if parent := opentracing.SpanFromContext(ctx); parent != nil {
		opts = append(opts, opentracing.ChildOf(parent.Context()))
	}
	return s.tracer.StartSpan(s.spanName.QuerySpanName(query), opts...)
}

// finishSpan finishes span after a successful execution, tagging the
// peer host recorded in the result set's execution metadata, if any.
func finishSpan(span opentracing.Span, rs driver.ResultSet) {
	if rs != nil {
		if info := rs.ExecutionInfo(); info != nil && info.QueriedHost != nil {
			setPeerTags(span, info.QueriedHost)
		}
	}
	span.Finish()
}

func setPeerTags(span opentracing.Span, host *driver.Host) {
	if host.Port != 0 {
		ext.PeerPort.Set(span, uint16(host.Port))
	}
	if host.Hostname != "" {
		ext.PeerHostname.Set(span, host.Hostname)
	}
	if ip4 := host.Addr.To4(); ip4 != nil {
		ext.PeerHostIPv4.Set(span, binary.BigEndian.Uint32(ip4))
	} else if host.Addr != nil {
		ext.PeerHostIPv6.Set(span, host.Addr.String())
	}
}

// finishSpanWithError finishes span after a failed execution,
// marking it as an error and logging the failure's kind, message and
// backtrace. The error itself is left untouched for the caller.
func finishSpanWithError(span opentracing.Span, err error) {
	ext.Error.Set(span, true)
	span.LogFields(
		otlog.String("event", "error"),
		otlog.String("error.kind", errorKind(err)),
		otlog.Error(err),
		otlog.String("message", err.Error()),
		otlog.String("stack", stacktrace.Format(err, 1)),
	)
	span.Finish()
}

// errorKind returns the package-qualified name of err's concrete
// type, dereferencing pointers.
func errorKind(err error) string {
	t := reflect.TypeOf(err)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if path := t.PkgPath(); path != "" {
		return path + "." + t.Name()
	}
	return t.String()
}
