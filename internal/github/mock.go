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
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// MockClient is a mock implementation of the Client interface for testing.
// Paged collections are served from pre-built page sequences (see
// BuildPages); per-item collections are keyed by "owner/name" or
// "owner/name#number". Errors maps an operation name to an error that the
// corresponding method returns instead of data.
type MockClient struct {
	mu sync.Mutex

	PullPages   []Page[PullRequest]
	ReviewPages []Page[Review]
	IssuePages  []Page[Issue]
	Buckets     []CommitBucket

	CommentPages      map[string][]Page[Comment]
	ReviewDetailPages map[string][]Page[ReviewDetail]
	Files             map[string][]ChangedFile
	Timelines         map[string][]TimelineEvent

	UserID       string
	HistoryPages map[string][]Page[Commit]
	Metadata     map[string]*Repository

	HealthPages []Page[HealthPullRequest]

	Errors map[string]error

	// Call tracking for verification
	Calls    []string
	LastFrom time.Time
	LastTo   time.Time
}

// NewMockClient creates an empty mock client.
func NewMockClient() *MockClient {
	return &MockClient{
		CommentPages:      make(map[string][]Page[Comment]),
		ReviewDetailPages: make(map[string][]Page[ReviewDetail]),
		Files:             make(map[string][]ChangedFile),
		Timelines:         make(map[string][]TimelineEvent),
		HistoryPages:      make(map[string][]Page[Commit]),
		Metadata:          make(map[string]*Repository),
		Errors:            make(map[string]error),
		UserID:            "U_mock",
	}
}

// BuildPages turns groups of nodes into a served page sequence: every page
// but the last reports hasNextPage with a numeric cursor.
func BuildPages[T any](groups ...[]T) []Page[T] {
	pages := make([]Page[T], len(groups))
	for i, group := range groups {
		pages[i] = Page[T]{
			Nodes: group,
			PageInfo: PageInfo{
				HasNextPage: i < len(groups)-1,
				EndCursor:   strconv.Itoa(i + 1),
			},
		}
	}
	return pages
}

func servePage[T any](pages []Page[T], cursor *string) Page[T] {
	i := 0
	if cursor != nil {
		i, _ = strconv.Atoi(*cursor)
	}
	if i >= len(pages) {
		return Page[T]{}
	}
	return pages[i]
}

// PullKey builds the map key used for per-pull-request mock data.
func PullKey(owner, name string, number int) string {
	return fmt.Sprintf("%s/%s#%d", owner, name, number)
}

func (m *MockClient) call(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, op)
	return m.Errors[op]
}

// FetchPullRequestContributions implements the Client interface.
func (m *MockClient) FetchPullRequestContributions(ctx context.Context, login string, from, to time.Time, cursor *string) (Page[PullRequest], error) {
	m.mu.Lock()
	m.LastFrom, m.LastTo = from, to
	m.mu.Unlock()
	if err := m.call("pull_contributions"); err != nil {
		return Page[PullRequest]{}, err
	}
	return servePage(m.PullPages, cursor), nil
}

// FetchReviewContributions implements the Client interface.
func (m *MockClient) FetchReviewContributions(ctx context.Context, login string, from, to time.Time, cursor *string) (Page[Review], error) {
	if err := m.call("review_contributions"); err != nil {
		return Page[Review]{}, err
	}
	return servePage(m.ReviewPages, cursor), nil
}

// FetchIssueContributions implements the Client interface.
func (m *MockClient) FetchIssueContributions(ctx context.Context, login string, from, to time.Time, cursor *string) (Page[Issue], error) {
	if err := m.call("issue_contributions"); err != nil {
		return Page[Issue]{}, err
	}
	return servePage(m.IssuePages, cursor), nil
}

// FetchCommitBuckets implements the Client interface.
func (m *MockClient) FetchCommitBuckets(ctx context.Context, login string, from, to time.Time) ([]CommitBucket, error) {
	if err := m.call("commit_buckets"); err != nil {
		return nil, err
	}
	return m.Buckets, nil
}

// FetchPullComments implements the Client interface.
func (m *MockClient) FetchPullComments(ctx context.Context, owner, name string, number int, cursor *string) (Page[Comment], error) {
	if err := m.call("pull_comments"); err != nil {
		return Page[Comment]{}, err
	}
	return servePage(m.CommentPages[PullKey(owner, name, number)], cursor), nil
}

// FetchPullReviews implements the Client interface.
func (m *MockClient) FetchPullReviews(ctx context.Context, owner, name string, number int, cursor *string) (Page[ReviewDetail], error) {
	if err := m.call("pull_reviews"); err != nil {
		return Page[ReviewDetail]{}, err
	}
	return servePage(m.ReviewDetailPages[PullKey(owner, name, number)], cursor), nil
}

// FetchPullFiles implements the Client interface.
func (m *MockClient) FetchPullFiles(ctx context.Context, owner, name string, number int) ([]ChangedFile, error) {
	if err := m.call("pull_files"); err != nil {
		return nil, err
	}
	return m.Files[PullKey(owner, name, number)], nil
}

// FetchPullTimeline implements the Client interface.
func (m *MockClient) FetchPullTimeline(ctx context.Context, owner, name string, number int) ([]TimelineEvent, error) {
	if err := m.call("pull_timeline"); err != nil {
		return nil, err
	}
	return m.Timelines[PullKey(owner, name, number)], nil
}

// ResolveUserID implements the Client interface.
func (m *MockClient) ResolveUserID(ctx context.Context, login string) (string, error) {
	if err := m.call("resolve_user_id"); err != nil {
		return "", err
	}
	return m.UserID, nil
}

// FetchCommitHistory implements the Client interface.
func (m *MockClient) FetchCommitHistory(ctx context.Context, owner, name, authorID string, since time.Time, cursor *string) (Page[Commit], error) {
	if err := m.call("commit_history"); err != nil {
		return Page[Commit]{}, err
	}
	return servePage(m.HistoryPages[owner+"/"+name], cursor), nil
}

// FetchRepoMetadata implements the Client interface.
func (m *MockClient) FetchRepoMetadata(ctx context.Context, owner, name string) (*Repository, error) {
	if err := m.call("repo_metadata"); err != nil {
		return nil, err
	}
	if repo, ok := m.Metadata[owner+"/"+name]; ok {
		return repo, nil
	}
	return &Repository{NameWithOwner: owner + "/" + name}, nil
}

// FetchPullRequestsByCreation implements the Client interface.
func (m *MockClient) FetchPullRequestsByCreation(ctx context.Context, owner, name string, cursor *string) (Page[HealthPullRequest], error) {
	if err := m.call("pulls_by_creation"); err != nil {
		return Page[HealthPullRequest]{}, err
	}
	return servePage(m.HealthPages, cursor), nil
}

// CallCount returns the number of recorded calls for the given operation.
func (m *MockClient) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, call := range m.Calls {
		if call == op {
			n++
		}
	}
	return n
}
