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

// Statement is a pre-built query that a Session can execute.
type Statement interface {
	// QueryString returns the CQL text of the statement.
	QueryString() string
}

// SimpleStatement is a Statement carrying literal query text and
// optional positional values.
type SimpleStatement struct {
	Query  string
	Values []interface{}
}

// QueryString returns the statement's CQL text.
func (s *SimpleStatement) QueryString() string { return s.Query }

// PreparedStatement is a query prepared by a Session for repeated
// execution with different bound values.
type PreparedStatement interface {
	// QueryString returns the CQL text the statement was prepared
	// from.
	QueryString() string

	// ParameterNames returns the statement's declared bind parameter
	// names in declaration order. Drivers that expose no parameter
	// metadata return nil.
	ParameterNames() []string

	// Bind binds positional values to the statement's parameters,
	// producing an executable statement.
	Bind(values ...interface{}) BoundStatement
}

// BoundStatement is a prepared statement with values bound to its
// parameters.
type BoundStatement interface {
	Statement

	// Prepared returns the statement this was bound from.
	Prepared() PreparedStatement

	// Value returns the value bound at position i.
	Value(i int) (interface{}, error)

	// ValueByName returns the value bound to the first parameter
	// with the given declared name.
	ValueByName(name string) (interface{}, error)
}
