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

// Package cqltrace provides OpenTracing instrumentation for Cassandra
// sessions.
//
// Wrap decorates a driver.Session so that every query execution is
// bracketed by a span: the span is started before the query is
// delegated to the underlying session, tagged with the statement text
// and peer details, and finished when the query completes, whether it
// completes synchronously, asynchronously, or with an error. All
// other session operations are delegated without tracing.
//
// Query semantics are never altered: results and errors are returned
// to the caller exactly as the underlying session produced them.
package cqltrace // import "go.elastic.co/cqltrace"
