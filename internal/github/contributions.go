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

	"github.com/shurcooL/graphql"
)

// contributionVariables builds the shared variable set for the
// contributionsCollection queries. The caller supplies the (possibly
// widened) window; no date ordering is guaranteed for these shapes, so
// pagination must always run to exhaustion.
func contributionVariables(login string, from, to time.Time, cursor *string) map[string]interface{} {
	return map[string]interface{}{
		"login":  graphql.String(login),
		"from":   DateTime{from},
		"to":     DateTime{to},
		"first":  graphql.Int(pageSize),
		"cursor": optCursor(cursor),
	}
}

// FetchPullRequestContributions retrieves one page of pull request
// contributions for the user.
func (c *GraphQLClient) FetchPullRequestContributions(ctx context.Context, login string, from, to time.Time, cursor *string) (Page[PullRequest], error) {
	var q struct {
		User struct {
			ContributionsCollection struct {
				PullRequestContributions struct {
					PageInfo struct {
						HasNextPage graphql.Boolean
						EndCursor   graphql.String
					}
					Nodes []struct {
						PullRequest struct {
							Number     graphql.Int
							Title      graphql.String
							Repository struct {
								NameWithOwner graphql.String
							}
							Author struct {
								Login graphql.String
							} `graphql:"author"`
							CreatedAt time.Time
							UpdatedAt time.Time
							MergedAt  *time.Time
							ClosedAt  *time.Time
							IsDraft   graphql.Boolean
							State     graphql.String
							Additions graphql.Int
							Deletions graphql.Int
							Comments  struct {
								TotalCount graphql.Int
							} `graphql:"comments"`
							Reviews struct {
								TotalCount graphql.Int
							} `graphql:"reviews"`
							Body graphql.String
						} `graphql:"pullRequest"`
					}
				} `graphql:"pullRequestContributions(first: $first, after: $cursor)"`
			} `graphql:"contributionsCollection(from: $from, to: $to)"`
		} `graphql:"user(login: $login)"`
	}

	err := c.query(ctx, &q, contributionVariables(login, from, to, cursor), "fetch pull request contributions")
	if err != nil {
		return Page[PullRequest]{}, err
	}

	conn := q.User.ContributionsCollection.PullRequestContributions
	page := Page[PullRequest]{
		Nodes: make([]PullRequest, 0, len(conn.Nodes)),
		PageInfo: PageInfo{
			HasNextPage: bool(conn.PageInfo.HasNextPage),
			EndCursor:   string(conn.PageInfo.EndCursor),
		},
	}
	for _, node := range conn.Nodes {
		pr := node.PullRequest
		page.Nodes = append(page.Nodes, PullRequest{
			Number:       int(pr.Number),
			Title:        string(pr.Title),
			Repo:         string(pr.Repository.NameWithOwner),
			Author:       string(pr.Author.Login),
			State:        string(pr.State),
			IsDraft:      bool(pr.IsDraft),
			Body:         string(pr.Body),
			CreatedAt:    pr.CreatedAt,
			UpdatedAt:    pr.UpdatedAt,
			MergedAt:     optTime(pr.MergedAt),
			ClosedAt:     optTime(pr.ClosedAt),
			Additions:    int(pr.Additions),
			Deletions:    int(pr.Deletions),
			CommentCount: int(pr.Comments.TotalCount),
			ReviewCount:  int(pr.Reviews.TotalCount),
		})
	}
	return page, nil
}

// FetchReviewContributions retrieves one page of pull request review
// contributions for the user.
func (c *GraphQLClient) FetchReviewContributions(ctx context.Context, login string, from, to time.Time, cursor *string) (Page[Review], error) {
	var q struct {
		User struct {
			ContributionsCollection struct {
				PullRequestReviewContributions struct {
					PageInfo struct {
						HasNextPage graphql.Boolean
						EndCursor   graphql.String
					}
					Nodes []struct {
						PullRequestReview struct {
							CreatedAt time.Time
							UpdatedAt time.Time
							State     graphql.String
							Comments  struct {
								TotalCount graphql.Int
							} `graphql:"comments"`
							Repository struct {
								NameWithOwner graphql.String
							}
							PullRequest struct {
								Number graphql.Int
								Title  graphql.String
								Author struct {
									Login graphql.String
								} `graphql:"author"`
							} `graphql:"pullRequest"`
						} `graphql:"pullRequestReview"`
					}
				} `graphql:"pullRequestReviewContributions(first: $first, after: $cursor)"`
			} `graphql:"contributionsCollection(from: $from, to: $to)"`
		} `graphql:"user(login: $login)"`
	}

	err := c.query(ctx, &q, contributionVariables(login, from, to, cursor), "fetch review contributions")
	if err != nil {
		return Page[Review]{}, err
	}

	conn := q.User.ContributionsCollection.PullRequestReviewContributions
	page := Page[Review]{
		Nodes: make([]Review, 0, len(conn.Nodes)),
		PageInfo: PageInfo{
			HasNextPage: bool(conn.PageInfo.HasNextPage),
			EndCursor:   string(conn.PageInfo.EndCursor),
		},
	}
	for _, node := range conn.Nodes {
		rv := node.PullRequestReview
		page.Nodes = append(page.Nodes, Review{
			Repo:         string(rv.Repository.NameWithOwner),
			State:        string(rv.State),
			CreatedAt:    rv.CreatedAt,
			UpdatedAt:    rv.UpdatedAt,
			CommentCount: int(rv.Comments.TotalCount),
			PullNumber:   int(rv.PullRequest.Number),
			PullTitle:    string(rv.PullRequest.Title),
			PullAuthor:   string(rv.PullRequest.Author.Login),
		})
	}
	return page, nil
}

// FetchIssueContributions retrieves one page of issue contributions for the
// user.
func (c *GraphQLClient) FetchIssueContributions(ctx context.Context, login string, from, to time.Time, cursor *string) (Page[Issue], error) {
	var q struct {
		User struct {
			ContributionsCollection struct {
				IssueContributions struct {
					PageInfo struct {
						HasNextPage graphql.Boolean
						EndCursor   graphql.String
					}
					Nodes []struct {
						Issue struct {
							Number     graphql.Int
							Title      graphql.String
							Repository struct {
								NameWithOwner graphql.String
							}
							CreatedAt time.Time
							UpdatedAt time.Time
							ClosedAt  *time.Time
							State     graphql.String
							Comments  struct {
								TotalCount graphql.Int
							} `graphql:"comments"`
							Body graphql.String
						} `graphql:"issue"`
					}
				} `graphql:"issueContributions(first: $first, after: $cursor)"`
			} `graphql:"contributionsCollection(from: $from, to: $to)"`
		} `graphql:"user(login: $login)"`
	}

	err := c.query(ctx, &q, contributionVariables(login, from, to, cursor), "fetch issue contributions")
	if err != nil {
		return Page[Issue]{}, err
	}

	conn := q.User.ContributionsCollection.IssueContributions
	page := Page[Issue]{
		Nodes: make([]Issue, 0, len(conn.Nodes)),
		PageInfo: PageInfo{
			HasNextPage: bool(conn.PageInfo.HasNextPage),
			EndCursor:   string(conn.PageInfo.EndCursor),
		},
	}
	for _, node := range conn.Nodes {
		is := node.Issue
		page.Nodes = append(page.Nodes, Issue{
			Number:       int(is.Number),
			Title:        string(is.Title),
			Repo:         string(is.Repository.NameWithOwner),
			State:        string(is.State),
			Body:         string(is.Body),
			CreatedAt:    is.CreatedAt,
			UpdatedAt:    is.UpdatedAt,
			ClosedAt:     optTime(is.ClosedAt),
			CommentCount: int(is.Comments.TotalCount),
		})
	}
	return page, nil
}

// FetchCommitBuckets retrieves the per-repository commit contribution
// summaries. The API returns at most 100 repository buckets and offers no
// cursor for this connection, so this is a single capture rather than a
// paginated collection.
func (c *GraphQLClient) FetchCommitBuckets(ctx context.Context, login string, from, to time.Time) ([]CommitBucket, error) {
	var q struct {
		User struct {
			ContributionsCollection struct {
				CommitContributionsByRepository []struct {
					Repository struct {
						NameWithOwner graphql.String
					}
					Contributions struct {
						TotalCount graphql.Int
					} `graphql:"contributions(first: 1)"`
				} `graphql:"commitContributionsByRepository(maxRepositories: 100)"`
			} `graphql:"contributionsCollection(from: $from, to: $to)"`
		} `graphql:"user(login: $login)"`
	}

	variables := map[string]interface{}{
		"login": graphql.String(login),
		"from":  DateTime{from},
		"to":    DateTime{to},
	}

	if err := c.query(ctx, &q, variables, "fetch commit contributions"); err != nil {
		return nil, err
	}

	byRepo := q.User.ContributionsCollection.CommitContributionsByRepository
	buckets := make([]CommitBucket, 0, len(byRepo))
	for _, node := range byRepo {
		buckets = append(buckets, CommitBucket{
			Repo:        string(node.Repository.NameWithOwner),
			CommitCount: int(node.Contributions.TotalCount),
		})
	}
	return buckets, nil
}
