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

// Package activity aggregates a GitHub user's contributions over a date
// window and optionally enriches each item with secondary detail queries.
package activity

import (
	"github.com/rvagg/repo-health-metrics/internal/github"
)

// Bundle holds one user's aggregated activity for a window, post-filtered by
// the update-time policy. The commit buckets carry only coarse counts until
// enrichment.
type Bundle struct {
	Login   string                `json:"login"`
	Window  github.Window         `json:"window"`
	Pulls   []github.PullRequest  `json:"pulls"`
	Reviews []github.Review       `json:"reviews"`
	Issues  []github.Issue        `json:"issues"`
	Buckets []github.CommitBucket `json:"commit_buckets"`
}

// EnrichedPullRequest composes a pull request with the secondary detail
// attached by enrichment. The embedded primary record is never modified;
// attachments are additive only.
type EnrichedPullRequest struct {
	github.PullRequest
	Comments []github.Comment       `json:"comment_details,omitempty"`
	Reviews  []github.ReviewDetail  `json:"review_details,omitempty"`
	Files    []github.ChangedFile   `json:"changed_files,omitempty"`
	Timeline []github.TimelineEvent `json:"timeline_items,omitempty"`
}

// EnrichedCommitBucket composes a commit bucket with the exact commit list
// and repository metadata resolved during enrichment.
type EnrichedCommitBucket struct {
	github.CommitBucket
	Commits    []github.Commit    `json:"commits,omitempty"`
	Repository *github.Repository `json:"repository,omitempty"`
}

// EnrichedBundle is the value-composed result of an enrichment pass.
// Reviews and issues have no secondary queries and are carried through
// unchanged.
type EnrichedBundle struct {
	Login   string                 `json:"login"`
	Window  github.Window          `json:"window"`
	Pulls   []EnrichedPullRequest  `json:"pulls"`
	Reviews []github.Review        `json:"reviews"`
	Issues  []github.Issue         `json:"issues"`
	Buckets []EnrichedCommitBucket `json:"commit_buckets"`
}

// Failure records one enrichment item that could not be completed. The item
// key is "repo#number" for pull requests and "repo" for commit buckets.
type Failure struct {
	Item string `json:"item"`
	Err  error  `json:"-"`
}

// Report summarizes an enrichment pass. Failed items keep their primary
// record in the bundle with no attachments; sibling successes are retained.
type Report struct {
	Failures []Failure `json:"failures,omitempty"`
}

// Failed reports whether any item failed during the pass.
func (r *Report) Failed() bool { return len(r.Failures) > 0 }
