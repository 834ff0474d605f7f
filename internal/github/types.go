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

// Package github provides types and a client interface for interacting with
// the GitHub GraphQL API.
package github

import "time"

// Window is the date range activity is reported over. Start is user
// supplied; End defaults to the current time for activity aggregation and to
// a fixed relative offset for health analysis. Start must not be after End.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, treating Start as
// inclusive and End as exclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// PullRequest represents a pull request contribution with the metadata needed
// for activity reporting. Identity is (Repo, Number).
type PullRequest struct {
	Number       int        `json:"number"`
	Title        string     `json:"title"`
	Repo         string     `json:"repo"`
	Author       string     `json:"author,omitempty"`
	State        string     `json:"state"`
	IsDraft      bool       `json:"is_draft,omitempty"`
	Body         string     `json:"body,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	MergedAt     *time.Time `json:"merged_at,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	Additions    int        `json:"additions"`
	Deletions    int        `json:"deletions"`
	CommentCount int        `json:"comment_count"`
	ReviewCount  int        `json:"review_count"`
}

// Owner splits the repository's nameWithOwner and returns the owner half.
func (pr *PullRequest) Owner() string { return splitRepo(pr.Repo, 0) }

// Name splits the repository's nameWithOwner and returns the name half.
func (pr *PullRequest) Name() string { return splitRepo(pr.Repo, 1) }

// Review represents a pull request review contribution.
type Review struct {
	Repo         string    `json:"repo"`
	State        string    `json:"state"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CommentCount int       `json:"comment_count"`
	PullNumber   int       `json:"pull_number"`
	PullTitle    string    `json:"pull_title"`
	PullAuthor   string    `json:"pull_author"`
}

// Issue represents an issue contribution. It mirrors PullRequest minus the
// diff statistics.
type Issue struct {
	Number       int        `json:"number"`
	Title        string     `json:"title"`
	Repo         string     `json:"repo"`
	State        string     `json:"state"`
	Body         string     `json:"body,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	CommentCount int        `json:"comment_count"`
}

// CommitBucket is the per-repository commit contribution summary. The API
// reports only a coarse total; the exact commit list is attached during
// enrichment.
type CommitBucket struct {
	Repo        string `json:"repo"`
	CommitCount int    `json:"commit_count"`
}

// Owner splits the repository's nameWithOwner and returns the owner half.
func (b *CommitBucket) Owner() string { return splitRepo(b.Repo, 0) }

// Name splits the repository's nameWithOwner and returns the name half.
func (b *CommitBucket) Name() string { return splitRepo(b.Repo, 1) }

// Repository carries repository metadata attached to a commit bucket during
// enrichment.
type Repository struct {
	NameWithOwner string   `json:"name_with_owner"`
	Description   string   `json:"description,omitempty"`
	Topics        []string `json:"topics,omitempty"`
}

// Comment is a single issue-style comment on a pull request. Reactions maps
// reaction kind to a nonzero count; it is nil when the comment has no
// reactions.
type Comment struct {
	Author    string         `json:"author"`
	Body      string         `json:"body"`
	CreatedAt time.Time      `json:"created_at"`
	Reactions map[string]int `json:"reactions,omitempty"`
}

// ReviewDetail is a full review with its inline comments, fetched during
// enrichment. The health listing reuses it with Comments left empty.
type ReviewDetail struct {
	Author    string          `json:"author"`
	State     string          `json:"state"`
	Body      string          `json:"body,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Comments  []ReviewComment `json:"comments,omitempty"`
}

// ReviewComment is an inline comment attached to a review.
type ReviewComment struct {
	Author    string    `json:"author"`
	Path      string    `json:"path"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ChangedFile is one file touched by a pull request.
type ChangedFile struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// TimelineEventKind identifies the timeline event variants the system
// consumes. The values match GitHub's GraphQL type names.
type TimelineEventKind string

// Timeline event kinds.
const (
	EventReadyForReview  TimelineEventKind = "ReadyForReviewEvent"
	EventReviewRequested TimelineEventKind = "ReviewRequestedEvent"
	EventMerged          TimelineEventKind = "MergedEvent"
	EventClosed          TimelineEventKind = "ClosedEvent"
)

// TimelineEvent is a single pull request timeline event.
type TimelineEvent struct {
	Kind      TimelineEventKind `json:"kind"`
	Actor     string            `json:"actor"`
	CreatedAt time.Time         `json:"created_at"`
}

// Commit is one commit from a repository's history, attached to a commit
// bucket during enrichment.
type Commit struct {
	Headline    string    `json:"headline"`
	Body        string    `json:"body,omitempty"`
	CommittedAt time.Time `json:"committed_at"`
}

// HealthPullRequest is a pull request from the repository-health listing.
// It carries the event sources (comments, reviews, timeline items) needed
// for response-time classification nested in a single query.
type HealthPullRequest struct {
	Number    int             `json:"number"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	State     string          `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	Comments  []Comment       `json:"comments,omitempty"`
	Reviews   []ReviewDetail  `json:"reviews,omitempty"`
	Timeline  []TimelineEvent `json:"timeline,omitempty"`
}

func splitRepo(nameWithOwner string, part int) string {
	for i := 0; i < len(nameWithOwner); i++ {
		if nameWithOwner[i] == '/' {
			if part == 0 {
				return nameWithOwner[:i]
			}
			return nameWithOwner[i+1:]
		}
	}
	return nameWithOwner
}
