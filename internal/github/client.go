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
	"time"
)

// Client defines the interface for interacting with GitHub's GraphQL API.
// Every paginated operation takes a nullable cursor and returns one page;
// callers drive pagination through CollectAll or CollectUntil. This
// interface allows for easy mocking in tests.
type Client interface {
	// FetchPullRequestContributions retrieves one page of the user's pull
	// request contributions inside [from, to).
	FetchPullRequestContributions(ctx context.Context, login string, from, to time.Time, cursor *string) (Page[PullRequest], error)

	// FetchReviewContributions retrieves one page of the user's pull
	// request review contributions inside [from, to).
	FetchReviewContributions(ctx context.Context, login string, from, to time.Time, cursor *string) (Page[Review], error)

	// FetchIssueContributions retrieves one page of the user's issue
	// contributions inside [from, to).
	FetchIssueContributions(ctx context.Context, login string, from, to time.Time, cursor *string) (Page[Issue], error)

	// FetchCommitBuckets retrieves the per-repository commit contribution
	// summaries for the window. The API caps this at 100 repositories and
	// offers no pagination; a single page is all there is.
	FetchCommitBuckets(ctx context.Context, login string, from, to time.Time) ([]CommitBucket, error)

	// FetchPullComments retrieves one page of issue-style comments on a
	// pull request, including collapsed reaction counts.
	FetchPullComments(ctx context.Context, owner, name string, number int, cursor *string) (Page[Comment], error)

	// FetchPullReviews retrieves one page of reviews with their inline
	// comments for a pull request.
	FetchPullReviews(ctx context.Context, owner, name string, number int, cursor *string) (Page[ReviewDetail], error)

	// FetchPullFiles retrieves the changed files of a pull request.
	// Single page; the first 100 files are considered sufficient.
	FetchPullFiles(ctx context.Context, owner, name string, number int) ([]ChangedFile, error)

	// FetchPullTimeline retrieves the timeline events of a pull request
	// restricted to the kinds the system classifies. Single page.
	FetchPullTimeline(ctx context.Context, owner, name string, number int) ([]TimelineEvent, error)

	// ResolveUserID resolves a login to its node identity, needed to
	// filter commit history by author.
	ResolveUserID(ctx context.Context, login string) (string, error)

	// FetchCommitHistory retrieves one page of the default branch history
	// of a repository, restricted to the given author and to commits at or
	// after since.
	FetchCommitHistory(ctx context.Context, owner, name, authorID string, since time.Time, cursor *string) (Page[Commit], error)

	// FetchRepoMetadata retrieves description and topics for a repository.
	FetchRepoMetadata(ctx context.Context, owner, name string) (*Repository, error)

	// FetchPullRequestsByCreation retrieves one page of a repository's
	// pull requests ordered by creation date descending, with the nested
	// event sources needed for response-time classification.
	FetchPullRequestsByCreation(ctx context.Context, owner, name string, cursor *string) (Page[HealthPullRequest], error)
}
