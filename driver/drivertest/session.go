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

// Package drivertest provides an in-memory driver.Session
// implementation for testing session decorators.
package drivertest // import "go.elastic.co/cqltrace/driver/drivertest"

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"go.elastic.co/cqltrace/driver"
)

// Session is an in-memory driver.Session. It records the executions
// it receives, and returns the rows, execution metadata, and errors
// it has been configured with. Methods may be called concurrently.
type Session struct {
	mu         sync.Mutex
	keyspace   string
	host       *driver.Host
	rows       []map[string]interface{}
	err        error
	closeErr   error
	paramNames map[string][]string
	executions []Execution
	closed     bool
	hold       chan struct{}
}

// Execution records one query received by the session.
type Execution struct {
	Query  string
	Values []interface{}
}

// NewSession returns a Session that successfully executes every
// query with an empty result set.
func NewSession() *Session {
	return &Session{paramNames: make(map[string][]string)}
}

// SetKeyspace sets the keyspace the session reports.
func (s *Session) SetKeyspace(keyspace string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyspace = keyspace
}

// SetQueriedHost sets the host reported in each execution's
// metadata. A nil host means executions carry no metadata.
func (s *Session) SetQueriedHost(host *driver.Host) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.host = host
}

// SetRows sets the rows returned by each execution.
func (s *Session) SetRows(rows []map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
}

// FailWith causes every subsequent execution to fail with err.
// A nil err restores success.
func (s *Session) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// SetCloseError causes Close to return err.
func (s *Session) SetCloseError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeErr = err
}

// SetParameterNames sets the parameter names reported by statements
// prepared from query.
func (s *Session) SetParameterNames(query string, names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paramNames[query] = names
}

// HoldAsync causes asynchronous executions to park until the
// returned release function is called. Release is idempotent.
func (s *Session) HoldAsync() (release func()) {
	hold := make(chan struct{})
	s.mu.Lock()
	s.hold = hold
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() { close(hold) })
	}
}

// Executions returns the executions the session has received, in
// order.
func (s *Session) Executions() []Execution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Execution(nil), s.executions...)
}

// Execute records the execution and returns the configured outcome.
func (s *Session) Execute(ctx context.Context, query string, values ...interface{}) (driver.ResultSet, error) {
	return s.execute(query, values)
}

// ExecuteStatement records the execution and returns the configured
// outcome.
func (s *Session) ExecuteStatement(ctx context.Context, stmt driver.Statement) (driver.ResultSet, error) {
	return s.execute(stmt.QueryString(), statementValues(stmt))
}

// ExecuteAsync executes the query on a new goroutine, after any hold
// installed with HoldAsync has been released.
func (s *Session) ExecuteAsync(ctx context.Context, query string, values ...interface{}) *driver.ResultSetFuture {
	future := driver.NewResultSetFuture()
	go func() {
		s.waitHold()
		future.Complete(s.execute(query, values))
	}()
	return future
}

// ExecuteStatementAsync executes the statement on a new goroutine,
// after any hold installed with HoldAsync has been released.
func (s *Session) ExecuteStatementAsync(ctx context.Context, stmt driver.Statement) *driver.ResultSetFuture {
	future := driver.NewResultSetFuture()
	go func() {
		s.waitHold()
		future.Complete(s.execute(stmt.QueryString(), statementValues(stmt)))
	}()
	return future
}

func (s *Session) waitHold() {
	s.mu.Lock()
	hold := s.hold
	s.mu.Unlock()
	if hold != nil {
		<-hold
	}
}

func (s *Session) execute(query string, values []interface{}) (driver.ResultSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executions = append(s.executions, Execution{Query: query, Values: values})
	if s.err != nil {
		return nil, s.err
	}
	var info *driver.ExecutionInfo
	if s.host != nil {
		host := *s.host
		info = &driver.ExecutionInfo{QueriedHost: &host}
	}
	return driver.NewResultSet(append([]map[string]interface{}(nil), s.rows...), info), nil
}

// Prepare returns a PreparedStatement reporting the parameter names
// configured for query with SetParameterNames.
func (s *Session) Prepare(ctx context.Context, query string) (driver.PreparedStatement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &PreparedStatement{Query: query, Names: s.paramNames[query]}, nil
}

// PrepareAsync returns an already-completed future; see Prepare.
func (s *Session) PrepareAsync(ctx context.Context, query string) *driver.PreparedStatementFuture {
	future := driver.NewPreparedStatementFuture()
	future.Complete(s.Prepare(ctx, query))
	return future
}

// Keyspace returns the keyspace set with SetKeyspace.
func (s *Session) Keyspace() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyspace
}

// State reports the queried host, if one is set.
func (s *Session) State() driver.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	var state driver.SessionState
	if s.host != nil {
		state.Hosts = append(state.Hosts, *s.host)
	}
	return state
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close marks the session closed and returns the error set with
// SetCloseError.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.closeErr
}

// CloseAsync closes the session on a new goroutine.
func (s *Session) CloseAsync() *driver.CloseFuture {
	future := driver.NewCloseFuture()
	go func() {
		future.Complete(s.Close())
	}()
	return future
}

// PreparedStatement is the driver.PreparedStatement returned by
// Session.Prepare. The fields are exported so tests can construct
// statements directly.
type PreparedStatement struct {
	Query string
	Names []string
}

// QueryString returns the statement's query text.
func (p *PreparedStatement) QueryString() string { return p.Query }

// ParameterNames returns the statement's declared parameter names.
func (p *PreparedStatement) ParameterNames() []string { return p.Names }

// Bind binds positional values to the statement.
func (p *PreparedStatement) Bind(values ...interface{}) driver.BoundStatement {
	return &BoundStatement{Statement: p, Values: values}
}

// BoundStatement is the driver.BoundStatement returned by
// PreparedStatement.Bind. The fields are exported so tests can
// construct statements directly.
type BoundStatement struct {
	Statement *PreparedStatement
	Values    []interface{}
}

// QueryString returns the statement's query text.
func (b *BoundStatement) QueryString() string { return b.Statement.Query }

// Prepared returns the statement this was bound from.
func (b *BoundStatement) Prepared() driver.PreparedStatement { return b.Statement }

// Value returns the value bound at position i.
func (b *BoundStatement) Value(i int) (interface{}, error) {
	if i < 0 || i >= len(b.Values) {
		return nil, errors.Errorf("parameter index %d out of range [0, %d)", i, len(b.Values))
	}
	return b.Values[i], nil
}

// ValueByName returns the value bound to the first parameter with
// the given declared name.
func (b *BoundStatement) ValueByName(name string) (interface{}, error) {
	for i, n := range b.Statement.Names {
		if n == name {
			return b.Value(i)
		}
	}
	return nil, errors.Errorf("no parameter named %q", name)
}

// statementValues extracts the positional values stmt executes with.
func statementValues(stmt driver.Statement) []interface{} {
	switch stmt := stmt.(type) {
	case *BoundStatement:
		return stmt.Values
	case *driver.SimpleStatement:
		return stmt.Values
	default:
		return nil
	}
}

var _ driver.Session = (*Session)(nil)
