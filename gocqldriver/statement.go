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

package gocqldriver // import "go.elastic.co/cqltrace/gocqldriver"

import (
	"github.com/pkg/errors"

	"go.elastic.co/cqltrace/driver"
)

type preparedStatement struct {
	query string
}

func (p *preparedStatement) QueryString() string {
	return p.query
}

func (p *preparedStatement) ParameterNames() []string {
	return nil
}

func (p *preparedStatement) Bind(values ...interface{}) driver.BoundStatement {
	return &boundStatement{prepared: p, values: values}
}

type boundStatement struct {
	prepared *preparedStatement
	values   []interface{}
}

func (b *boundStatement) QueryString() string {
	return b.prepared.query
}

func (b *boundStatement) Prepared() driver.PreparedStatement {
	return b.prepared
}

func (b *boundStatement) Value(i int) (interface{}, error) {
	if i < 0 || i >= len(b.values) {
		return nil, errors.Errorf("parameter index %d out of range [0, %d)", i, len(b.values))
	}
	return b.values[i], nil
}

func (b *boundStatement) ValueByName(name string) (interface{}, error) {
	return nil, errors.Errorf("no parameter named %q", name)
}

// statementValues extracts the positional values a statement should
// execute with. Statements from other packages execute by query text
// alone.
func statementValues(stmt driver.Statement) []interface{} {
	switch stmt := stmt.(type) {
	case *boundStatement:
		return stmt.values
	case *driver.SimpleStatement:
		return stmt.Values
	default:
		return nil
	}
}
