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

// Package spanname provides strategies for deriving span operation
// names from CQL query text.
package spanname // import "go.elastic.co/cqltrace/spanname"

// Provider derives a span operation name from CQL query text.
// Implementations must be stateless, free of side effects, and safe
// for concurrent use: they are consulted on every traced execution.
type Provider interface {
	QuerySpanName(query string) string
}

// noQuery is the name reported by FullQuery when there is no query
// text to report.
const noQuery = "N/A"

// FullQuery returns a Provider that names spans with the query text
// itself. Empty query text yields "N/A".
func FullQuery() Provider {
	return fullQuery{}
}

type fullQuery struct{}

func (fullQuery) QuerySpanName(query string) string {
	if query == "" {
		return noQuery
	}
	return query
}

// Fixed returns a Provider that gives every span the same fixed
// name, regardless of query text.
func Fixed(name string) Provider {
	return fixed(name)
}

type fixed string

func (f fixed) QuerySpanName(string) string {
	return string(f)
}
