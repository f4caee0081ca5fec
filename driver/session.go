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

package driver // import "go.elastic.co/cqltrace/driver"

import "context"

// Session is the behaviour of a Cassandra session: executing queries
// and statements, preparing statements, and lifecycle management.
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Session interface {
	// Execute executes a query with optional positional values,
	// blocking until the query completes.
	Execute(ctx context.Context, query string, values ...interface{}) (ResultSet, error)

	// ExecuteStatement executes a pre-built statement, blocking
	// until the query completes.
	ExecuteStatement(ctx context.Context, stmt Statement) (ResultSet, error)

	// ExecuteAsync starts executing a query with optional positional
	// values, returning a future completed when the query is.
	ExecuteAsync(ctx context.Context, query string, values ...interface{}) *ResultSetFuture

	// ExecuteStatementAsync starts executing a pre-built statement,
	// returning a future completed when the query is.
	ExecuteStatementAsync(ctx context.Context, stmt Statement) *ResultSetFuture

	// Prepare prepares a query for repeated execution.
	Prepare(ctx context.Context, query string) (PreparedStatement, error)

	// PrepareAsync starts preparing a query, returning a future
	// completed when the statement is prepared.
	PrepareAsync(ctx context.Context, query string) *PreparedStatementFuture

	// Keyspace returns the keyspace the session is bound to, or ""
	// if it is not bound to one.
	Keyspace() string

	// State returns a snapshot of the session's view of the cluster.
	State() SessionState

	// Closed reports whether the session has been closed.
	Closed() bool

	// Close closes the session and releases its resources.
	Close() error

	// CloseAsync starts closing the session, returning a future
	// completed when the session is closed.
	CloseAsync() *CloseFuture
}

// SessionState is a point-in-time snapshot of a session's view of
// the cluster it is connected to.
type SessionState struct {
	// Hosts lists the cluster hosts known to the session.
	Hosts []Host
}
