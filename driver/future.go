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

import (
	"context"
	"sync"
)

// completion is the single-assignment core shared by the future
// types. The zero value is not usable.
type completion struct {
	mu        sync.Mutex
	done      chan struct{}
	completed bool
	listeners []pendingListener
}

func (c *completion) init() {
	c.done = make(chan struct{})
}

// Done returns a channel that is closed when the future completes.
func (c *completion) Done() <-chan struct{} {
	return c.done
}

// AddListener registers fn to run after the future completes,
// dispatched on exec. A nil exec runs fn on the completing
// goroutine. If the future has already completed, fn is dispatched
// immediately.
func (c *completion) AddListener(fn func(), exec Executor) {
	l := pendingListener{fn: fn, exec: exec}
	c.mu.Lock()
	if !c.completed {
		c.listeners = append(c.listeners, l)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	l.dispatch()
}

// complete records the result via store, then releases waiters and
// dispatches listeners. Only the first call has any effect.
func (c *completion) complete(store func()) {
	c.mu.Lock()
	if c.completed {
		c.mu.Unlock()
		return
	}
	store()
	c.completed = true
	listeners := c.listeners
	c.listeners = nil
	close(c.done)
	c.mu.Unlock()
	for _, l := range listeners {
		l.dispatch()
	}
}

type pendingListener struct {
	fn   func()
	exec Executor
}

func (l pendingListener) dispatch() {
	if l.exec == nil {
		l.fn()
		return
	}
	l.exec.Go(l.fn)
}

// ResultSetFuture is the pending outcome of an asynchronous query
// execution. It is completed at most once; completions after the
// first are ignored.
type ResultSetFuture struct {
	completion
	rs  ResultSet
	err error
}

// NewResultSetFuture returns an incomplete ResultSetFuture.
func NewResultSetFuture() *ResultSetFuture {
	f := &ResultSetFuture{}
	f.init()
	return f
}

// Complete resolves the future with the execution's outcome.
func (f *ResultSetFuture) Complete(rs ResultSet, err error) {
	f.complete(func() { f.rs, f.err = rs, err })
}

// Get blocks until the future completes or ctx is done, and returns
// the execution's outcome, or ctx's error.
func (f *ResultSetFuture) Get(ctx context.Context) (ResultSet, error) {
	select {
	case <-f.done:
		return f.rs, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// PreparedStatementFuture is the pending outcome of an asynchronous
// statement preparation. It is completed at most once; completions
// after the first are ignored.
type PreparedStatementFuture struct {
	completion
	stmt PreparedStatement
	err  error
}

// NewPreparedStatementFuture returns an incomplete
// PreparedStatementFuture.
func NewPreparedStatementFuture() *PreparedStatementFuture {
	f := &PreparedStatementFuture{}
	f.init()
	return f
}

// Complete resolves the future with the preparation's outcome.
func (f *PreparedStatementFuture) Complete(stmt PreparedStatement, err error) {
	f.complete(func() { f.stmt, f.err = stmt, err })
}

// Get blocks until the future completes or ctx is done, and returns
// the prepared statement, or an error.
func (f *PreparedStatementFuture) Get(ctx context.Context) (PreparedStatement, error) {
	select {
	case <-f.done:
		return f.stmt, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CloseFuture is the pending outcome of an asynchronous session
// close. It is completed at most once; completions after the first
// are ignored.
type CloseFuture struct {
	completion
	err error
}

// NewCloseFuture returns an incomplete CloseFuture.
func NewCloseFuture() *CloseFuture {
	f := &CloseFuture{}
	f.init()
	return f
}

// Complete resolves the future with the close's outcome.
func (f *CloseFuture) Complete(err error) {
	f.complete(func() { f.err = err })
}

// Get blocks until the future completes or ctx is done, and returns
// the close's outcome, or ctx's error.
func (f *CloseFuture) Get(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
