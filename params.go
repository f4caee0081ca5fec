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
	"fmt"
	"regexp"

	"github.com/opentracing/opentracing-go"

	"go.elastic.co/cqltrace/driver"
)

// parameterNamePattern matches driver-generated parameter names of
// the shape "value(x)", which are normalized to "x" for tag keys.
var parameterNamePattern = regexp.MustCompile(`^value\((.*)\)$`)

func normalizeParameterName(name string) string {
	if m := parameterNamePattern.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}

// tagPositionalValues tags span with the positional values of a
// parameterized query, keyed by index.
func (s *TracingSession) tagPositionalValues(span opentracing.Span, values []interface{}) {
	for i, value := range values {
		value := value
		s.tagStatementValue(span, positionalKey(i), func() (interface{}, error) {
			return value, nil
		})
	}
}

// tagBoundValues tags span with the values bound to stmt's
// parameters. Parameters whose declared name occurs exactly once are
// keyed by normalized name and resolved by name; parameters whose
// name recurs are keyed by index and resolved by index, since name
// resolution would be ambiguous.
func (s *TracingSession) tagBoundValues(span opentracing.Span, stmt driver.BoundStatement) {
	prepared := stmt.Prepared()
	if prepared == nil {
		return
	}
	names := prepared.ParameterNames()
	if len(names) == 0 {
		return
	}
	counts := make(map[string]int, len(names))
	for _, name := range names {
		counts[name]++
	}
	for i, name := range names {
		i, name := i, name
		if counts[name] == 1 {
			s.tagStatementValue(span, "db.statement."+normalizeParameterName(name), func() (interface{}, error) {
				return stmt.ValueByName(name)
			})
		} else {
			s.tagStatementValue(span, positionalKey(i), func() (interface{}, error) {
				return stmt.Value(i)
			})
		}
	}
}

func positionalKey(i int) string {
	return fmt.Sprintf("db.statement.value_%d", i)
}

// tagStatementValue resolves a single parameter value and tags span
// with its string form. Failures, including panics raised while
// resolving, skip this parameter only; the execution and the other
// parameters' tags are unaffected.
func (s *TracingSession) tagStatementValue(span opentracing.Span, key string, resolve func() (interface{}, error)) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debugf("skipping parameter tag %s: %v", key, r)
		}
	}()
	value, err := resolve()
	if err != nil {
		s.logger.Debugf("skipping parameter tag %s: %s", key, err)
		return
	}
	span.SetTag(key, fmt.Sprint(value))
}
