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

package driver_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.elastic.co/cqltrace/driver"
)

func TestResultSetFutureGet(t *testing.T) {
	future := driver.NewResultSetFuture()
	rows := []map[string]interface{}{{"id": 1}}
	go future.Complete(driver.NewResultSet(rows, nil), nil)

	rs, err := future.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rs)

	row := make(map[string]interface{})
	assert.True(t, rs.MapScan(row))
	assert.Equal(t, map[string]interface{}{"id": 1}, row)
	assert.False(t, rs.MapScan(row))
}

func TestResultSetFutureGetError(t *testing.T) {
	future := driver.NewResultSetFuture()
	resultErr := errors.New("boom")
	future.Complete(nil, resultErr)

	rs, err := future.Get(context.Background())
	assert.Nil(t, rs)
	assert.Same(t, resultErr, err)
}

func TestResultSetFutureGetContextDone(t *testing.T) {
	future := driver.NewResultSetFuture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := future.Get(ctx)
	assert.Equal(t, context.Canceled, err)
}

func TestResultSetFutureCompleteOnce(t *testing.T) {
	future := driver.NewResultSetFuture()
	first := errors.New("first")
	future.Complete(nil, first)
	future.Complete(nil, errors.New("second"))

	_, err := future.Get(context.Background())
	assert.Same(t, first, err)
}

func TestResultSetFutureDone(t *testing.T) {
	future := driver.NewResultSetFuture()
	select {
	case <-future.Done():
		t.Fatal("future done before completion")
	default:
	}

	future.Complete(nil, nil)
	select {
	case <-future.Done():
	case <-time.After(time.Second):
		t.Fatal("future not done after completion")
	}
}

func TestFutureListenerAfterCompletion(t *testing.T) {
	future := driver.NewCloseFuture()
	future.Complete(nil)

	called := false
	future.AddListener(func() { called = true }, nil)
	assert.True(t, called)
}

func TestFutureListenerBeforeCompletion(t *testing.T) {
	future := driver.NewCloseFuture()
	called := make(chan struct{})
	future.AddListener(func() { close(called) }, nil)

	select {
	case <-called:
		t.Fatal("listener ran before completion")
	default:
	}

	future.Complete(nil)
	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("listener did not run after completion")
	}
}

func TestFutureListenerExecutor(t *testing.T) {
	future := driver.NewPreparedStatementFuture()
	exec := make(goExecutor, 1)
	done := make(chan struct{})
	future.AddListener(func() { close(done) }, exec)

	future.Complete(nil, nil)
	select {
	case task := <-exec:
		task()
	case <-time.After(time.Second):
		t.Fatal("listener was not dispatched on the executor")
	}
	<-done
}

// goExecutor queues tasks for the test to run explicitly.
type goExecutor chan func()

func (e goExecutor) Go(task func()) { e <- task }
