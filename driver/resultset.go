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

import "net"

// ResultSet provides access to the rows produced by a query, and to
// metadata about the execution that produced them.
type ResultSet interface {
	// ExecutionInfo returns metadata about the execution that
	// produced the result set, or nil if the driver recorded none.
	ExecutionInfo() *ExecutionInfo

	// MapScan copies the next row's columns into m, reporting false
	// when no rows remain.
	MapScan(m map[string]interface{}) bool
}

// ExecutionInfo describes a completed query execution.
type ExecutionInfo struct {
	// QueriedHost identifies the host that served as coordinator
	// for the query, if known.
	QueriedHost *Host
}

// Host identifies a host in a Cassandra cluster. Fields that the
// driver cannot determine are left zero.
type Host struct {
	// Hostname is the host's name.
	Hostname string

	// Addr is the host's IP address.
	Addr net.IP

	// Port is the host's CQL port.
	Port int
}

// NewResultSet returns a ResultSet over the given rows, carrying
// info. The rows slice is not copied; the caller must not reuse it.
func NewResultSet(rows []map[string]interface{}, info *ExecutionInfo) ResultSet {
	return &resultSet{rows: rows, info: info}
}

type resultSet struct {
	rows []map[string]interface{}
	info *ExecutionInfo
}

func (r *resultSet) ExecutionInfo() *ExecutionInfo { return r.info }

func (r *resultSet) MapScan(m map[string]interface{}) bool {
	if len(r.rows) == 0 {
		return false
	}
	for k, v := range r.rows[0] {
		m[k] = v
	}
	r.rows = r.rows[1:]
	return true
}
