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
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// poolExecutor is the executor a TracingSession owns when none is
// supplied: each task runs on its own goroutine, and Close waits for
// tasks in flight. Tasks submitted after Close run on the caller's
// goroutine, so a completion callback is never lost.
type poolExecutor struct {
	mu     sync.Mutex
	closed bool
	group  errgroup.Group
}

func newPoolExecutor() *poolExecutor {
	return &poolExecutor{}
}

// Go runs task on its own goroutine, or on the calling goroutine if
// the executor has been closed.
func (e *poolExecutor) Go(task func()) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		task()
		return
	}
	e.group.Go(func() error {
		task()
		return nil
	})
	e.mu.Unlock()
}

// Close stops accepting asynchronous tasks and waits up to timeout
// for tasks in flight to finish. A non-positive timeout means wait
// indefinitely.
func (e *poolExecutor) Close(timeout time.Duration) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.group.Wait()
		close(done)
	}()
	if timeout <= 0 {
		<-done
		return nil
	}
	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return errors.Errorf("timed out after %s waiting for executor tasks", timeout)
	}
}
