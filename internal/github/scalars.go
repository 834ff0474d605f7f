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

package github

import (
	"time"

	"github.com/shurcooL/graphql"
)

// The graphql client derives a variable's GraphQL type from its Go type
// name, so these wrappers exist to produce the scalar names GitHub's schema
// expects. The embedded time.Time provides RFC 3339 JSON encoding.

// DateTime matches GitHub's DateTime scalar.
type DateTime struct{ time.Time }

// GitTimestamp matches GitHub's GitTimestamp scalar, used by commit history
// filters.
type GitTimestamp struct{ time.Time }

// CommitAuthor matches GitHub's CommitAuthor input object, used to restrict
// commit history to a single author identity.
type CommitAuthor struct {
	ID graphql.ID `json:"id"`
}

// optCursor converts a nullable cursor into the graphql variable form. A nil
// cursor requests the first page.
func optCursor(cursor *string) *graphql.String {
	if cursor == nil {
		return (*graphql.String)(nil)
	}
	s := graphql.String(*cursor)
	return &s
}

func optTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := *t
	return &u
}
