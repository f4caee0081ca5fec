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

// Package gocqldriver adapts github.com/gocql/gocql sessions to the
// driver.Session contract, for wrapping with cqltrace.
package gocqldriver // import "go.elastic.co/cqltrace/gocqldriver"

import (
	"context"
	"net"
	"strconv"

	"github.com/gocql/gocql"

	"go.elastic.co/cqltrace/driver"
)

// Option sets options for a Session.
type Option func(*Session)

// WithKeyspace returns an Option which sets the keyspace the Session
// reports. Open sets it from the cluster configuration; it is mainly
// useful with Wrap.
func WithKeyspace(keyspace string) Option {
	return func(s *Session) {
		s.keyspace = keyspace
	}
}

// WithHosts returns an Option which sets the contact points the
// Session reports in State. Open sets them from the cluster
// configuration; it is mainly useful with Wrap.
func WithHosts(hosts ...string) Option {
	return func(s *Session) {
		s.hosts = hosts
	}
}

// Open creates a gocql session from cluster and adapts it to the
// driver.Session contract. The session's keyspace and contact points
// are taken from cluster.
//
//	session, err := gocqldriver.Open(gocql.NewCluster("cassandra-1"))
//	if err != nil {
//		...
//	}
//	traced := cqltrace.Wrap(session)
func Open(cluster *gocql.ClusterConfig) (*Session, error) {
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}
	opts := []Option{WithHosts(cluster.Hosts...)}
	if cluster.Keyspace != "" {
		opts = append(opts, WithKeyspace(cluster.Keyspace))
	}
	return Wrap(session, opts...), nil
}

// Wrap adapts an existing gocql session to the driver.Session
// contract. Wrap panics if session is nil.
//
// gocql does not expose the session's keyspace or contact points, so
// callers that want them reported on spans and in State supply them
// with WithKeyspace and WithHosts.
func Wrap(session *gocql.Session, opts ...Option) *Session {
	if session == nil {
		panic("session == nil")
	}
	s := &Session{session: session}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Session adapts *gocql.Session to driver.Session.
type Session struct {
	session  *gocql.Session
	keyspace string
	hosts    []string
}

// Execute executes a query with optional positional values. Rows are
// fully materialized before returning, so row-level failures surface
// as the returned error.
func (s *Session) Execute(ctx context.Context, query string, values ...interface{}) (driver.ResultSet, error) {
	return s.execute(ctx, query, values)
}

// ExecuteStatement executes a pre-built statement. Statements bound
// by this package execute with their bound values; other statements
// execute by their query text alone.
func (s *Session) ExecuteStatement(ctx context.Context, stmt driver.Statement) (driver.ResultSet, error) {
	return s.execute(ctx, stmt.QueryString(), statementValues(stmt))
}

// ExecuteAsync starts executing a query on a new goroutine.
func (s *Session) ExecuteAsync(ctx context.Context, query string, values ...interface{}) *driver.ResultSetFuture {
	future := driver.NewResultSetFuture()
	go func() {
		future.Complete(s.execute(ctx, query, values))
	}()
	return future
}

// ExecuteStatementAsync starts executing a pre-built statement on a
// new goroutine.
func (s *Session) ExecuteStatementAsync(ctx context.Context, stmt driver.Statement) *driver.ResultSetFuture {
	future := driver.NewResultSetFuture()
	go func() {
		future.Complete(s.execute(ctx, stmt.QueryString(), statementValues(stmt)))
	}()
	return future
}

func (s *Session) execute(ctx context.Context, query string, values []interface{}) (driver.ResultSet, error) {
	iter := s.session.Query(query, values...).WithContext(ctx).Iter()
	rows, err := iter.SliceMap()
	if err != nil {
		iter.Close()
		return nil, err
	}
	info := executionInfo(iter.Host())
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return driver.NewResultSet(rows, info), nil
}

// Prepare returns a prepared statement carrying the query text.
// gocql prepares statements internally on first execution and
// exposes no parameter metadata, so the statement reports no
// parameter names and binds values positionally.
func (s *Session) Prepare(ctx context.Context, query string) (driver.PreparedStatement, error) {
	return &preparedStatement{query: query}, nil
}

// PrepareAsync returns an already-completed future; see Prepare.
func (s *Session) PrepareAsync(ctx context.Context, query string) *driver.PreparedStatementFuture {
	future := driver.NewPreparedStatementFuture()
	future.Complete(&preparedStatement{query: query}, nil)
	return future
}

// Keyspace returns the keyspace configured with Open or
// WithKeyspace.
func (s *Session) Keyspace() string {
	return s.keyspace
}

// State reports the contact points configured with Open or
// WithHosts.
func (s *Session) State() driver.SessionState {
	var state driver.SessionState
	for _, host := range s.hosts {
		state.Hosts = append(state.Hosts, parseHost(host))
	}
	return state
}

// Closed reports whether the gocql session has been closed.
func (s *Session) Closed() bool {
	return s.session.Closed()
}

// Close closes the gocql session.
func (s *Session) Close() error {
	s.session.Close()
	return nil
}

// CloseAsync closes the gocql session on a new goroutine.
func (s *Session) CloseAsync() *driver.CloseFuture {
	future := driver.NewCloseFuture()
	go func() {
		s.session.Close()
		future.Complete(nil)
	}()
	return future
}

func executionInfo(host *gocql.HostInfo) *driver.ExecutionInfo {
	if host == nil {
		return nil
	}
	hostname := host.HostnameAndPort()
	if h, _, err := net.SplitHostPort(hostname); err == nil {
		hostname = h
	}
	return &driver.ExecutionInfo{
		QueriedHost: &driver.Host{
			Hostname: hostname,
			Addr:     host.ConnectAddress(),
			Port:     host.Port(),
		},
	}
}

// parseHost interprets a contact point of the form "host",
// "host:port", or an IP address, leaving fields it cannot determine
// zero.
func parseHost(host string) driver.Host {
	h := driver.Host{Hostname: host}
	if hostname, port, err := net.SplitHostPort(host); err == nil {
		h.Hostname = hostname
		if p, err := strconv.Atoi(port); err == nil {
			h.Port = p
		}
	}
	if ip := net.ParseIP(h.Hostname); ip != nil {
		h.Addr = ip
	}
	return h
}

var _ driver.Session = (*Session)(nil)
