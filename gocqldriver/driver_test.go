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

package gocqldriver_test

import (
	"context"
	"net"
	"os"
	"testing"

	"github.com/gocql/gocql"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.elastic.co/cqltrace"
	"go.elastic.co/cqltrace/driver"
	"go.elastic.co/cqltrace/gocqldriver"
)

const (
	createKeyspaceStatement = `
CREATE KEYSPACE IF NOT EXISTS foo
WITH REPLICATION = {
	'class' : 'SimpleStrategy',
	'replication_factor' : 1
};`

	createTableStatement = `CREATE TABLE IF NOT EXISTS foo.bar (id int, PRIMARY KEY(id));`
)

var cassandraHost = os.Getenv("CASSANDRA_HOST")

func TestWrapNilSession(t *testing.T) {
	assert.Panics(t, func() { gocqldriver.Wrap(nil) })
}

func TestWrapOptions(t *testing.T) {
	session := gocqldriver.Wrap(new(gocql.Session),
		gocqldriver.WithKeyspace("foo"),
		gocqldriver.WithHosts("10.0.0.1:9042", "cassandra-2.internal"),
	)
	assert.Equal(t, "foo", session.Keyspace())
	assert.Equal(t, driver.SessionState{
		Hosts: []driver.Host{
			{Hostname: "10.0.0.1", Addr: net.ParseIP("10.0.0.1"), Port: 9042},
			{Hostname: "cassandra-2.internal"},
		},
	}, session.State())
}

func TestExecuteIntegration(t *testing.T) {
	session, tracer := newTracedSession(t)
	defer session.Close()

	mustExec(t, session, createKeyspaceStatement)
	mustExec(t, session, createTableStatement)
	mustExec(t, session, "INSERT INTO foo.bar(id) VALUES(1)")

	rs, err := session.Execute(context.Background(), "SELECT id FROM foo.bar WHERE id = ?", 1)
	require.NoError(t, err)
	row := make(map[string]interface{})
	require.True(t, rs.MapScan(row))
	assert.Equal(t, 1, row["id"])

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 4)
	span := spans[3]
	assert.Equal(t, "execute", span.OperationName)
	assert.Equal(t, "go-cassandra", span.Tag("component"))
	assert.Equal(t, "cassandra", span.Tag("db.type"))
	assert.Equal(t, "SELECT id FROM foo.bar WHERE id = ?", span.Tag("db.statement"))
	assert.Equal(t, "1", span.Tag("db.statement.value_0"))
	assert.NotNil(t, span.Tag("peer.port"))
}

func TestExecuteAsyncIntegration(t *testing.T) {
	session, tracer := newTracedSession(t)
	defer session.Close()

	mustExec(t, session, createKeyspaceStatement)
	mustExec(t, session, createTableStatement)

	future := session.ExecuteAsync(context.Background(), "INSERT INTO foo.bar(id) VALUES(2)")
	_, err := future.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, tracer.FinishedSpans(), 3)
}

func TestExecuteStatementIntegration(t *testing.T) {
	session, tracer := newTracedSession(t)
	defer session.Close()

	mustExec(t, session, createKeyspaceStatement)
	mustExec(t, session, createTableStatement)

	prepared, err := session.Prepare(context.Background(), "INSERT INTO foo.bar(id) VALUES(?)")
	require.NoError(t, err)
	_, err = session.ExecuteStatement(context.Background(), prepared.Bind(3))
	require.NoError(t, err)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 3)
	assert.Equal(t, "INSERT INTO foo.bar(id) VALUES(?)", spans[2].Tag("db.statement"))
}

func TestExecuteErrorIntegration(t *testing.T) {
	session, tracer := newTracedSession(t)
	defer session.Close()

	_, err := session.Execute(context.Background(), "ZINGA")
	require.Error(t, err)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, true, spans[0].Tag("error"))
}

func mustExec(t *testing.T, session driver.Session, query string) {
	_, err := session.Execute(context.Background(), query)
	require.NoError(t, err)
}

func newTracedSession(t *testing.T) (*cqltrace.TracingSession, *mocktracer.MockTracer) {
	if cassandraHost == "" {
		t.Skipf("CASSANDRA_HOST not specified")
	}
	session, err := gocqldriver.Open(gocql.NewCluster(cassandraHost))
	require.NoError(t, err)

	tracer := mocktracer.New()
	return cqltrace.Wrap(session, cqltrace.WithTracer(tracer)), tracer
}
