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

// Package driver defines the Cassandra session contract decorated by
// package cqltrace, in the spirit of database/sql/driver: a minimal
// surface that concrete drivers adapt to, and that instrumentation
// consumes. Package gocqldriver provides the adapter for
// github.com/gocql/gocql.
package driver // import "go.elastic.co/cqltrace/driver"
