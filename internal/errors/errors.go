// Copyright 2025 Rod Vagg
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines sentinel errors for consistent error handling across
// the application. These errors map to specific exit codes in the CLI for
// proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidToken indicates GitHub authentication failed.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrTransport indicates the API responded with a non-success HTTP
	// status or the connection itself failed. Maps to exit code 3.
	ErrTransport = errors.New("api transport failure")

	// ErrQuery indicates the GraphQL response carried an error list.
	// The wrapping error carries the first reported message.
	// Maps to exit code 2.
	ErrQuery = errors.New("graphql query rejected")

	// ErrNotFound indicates an expected object was absent from a response,
	// e.g. a repository the token cannot access. Maps to exit code 2.
	ErrNotFound = errors.New("resource not found")
)
