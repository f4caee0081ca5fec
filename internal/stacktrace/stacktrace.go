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

// Package stacktrace renders stack traces as text for span error
// logs.
package stacktrace

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Format renders a stack trace for err, one frame per line in the
// form "function\n\tfile:line". If err (or an error it wraps)
// carries a stack captured by github.com/pkg/errors, those frames
// are rendered; otherwise the calling goroutine's stack is captured,
// omitting skip frames in addition to Format itself.
func Format(err error, skip int) string {
	if st := errorStackTrace(err); len(st) > 0 {
		pc := make([]uintptr, len(st))
		for i, frame := range st {
			pc[i] = uintptr(frame)
		}
		return render(pc)
	}
	return render(callers(skip + 1))
}

// callers returns all of the calling goroutine's program counters,
// skipping skip frames in addition to callers itself.
func callers(skip int) []uintptr {
	pc := make([]uintptr, 32)
	n := 0
	for {
		n += runtime.Callers(skip+n+2, pc[n:])
		if n < len(pc) {
			return pc[:n]
		}
		pc = append(pc, 0)
	}
}

func errorStackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	for err != nil {
		if tracer, ok := err.(stackTracer); ok {
			return tracer.StackTrace()
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = unwrapper.Unwrap()
	}
	return nil
}

func render(pc []uintptr) string {
	if len(pc) == 0 {
		return ""
	}
	var buf strings.Builder
	frames := runtime.CallersFrames(pc)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&buf, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			return buf.String()
		}
	}
}
