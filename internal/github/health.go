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

// FetchPullRequestsByCreation retrieves one page of a repository's pull
// requests ordered by creation date descending. The descending order is what
// makes the caller's early exit valid: once a page's oldest item precedes
// the window start, no later page can contain a wanted item. Each node nests
// the comment, review and timeline events response-time classification
// needs, so no secondary queries are required.
func (c *GraphQLClient) FetchPullRequestsByCreation(ctx context.Context, owner, name string, cursor *string) (Page[HealthPullRequest], error) {
	var q struct {
		Repository struct {
			PullRequests struct {
				PageInfo struct {
					HasNextPage graphql.Boolean
					EndCursor   graphql.String
				}
				Nodes []struct {
					Number graphql.Int
					Title  graphql.String
					State  graphql.String
					Author struct {
						Login graphql.String
					} `graphql:"author"`
					CreatedAt time.Time
					Comments  struct {
						Nodes []struct {
							Author struct {
								Login graphql.String
							} `graphql:"author"`
							CreatedAt time.Time
						}
					} `graphql:"comments(first: 100)"`
					Reviews struct {
						Nodes []struct {
							Author struct {
								Login graphql.String
							} `graphql:"author"`
							State     graphql.String
							CreatedAt time.Time
						}
					} `graphql:"reviews(first: 100)"`
					TimelineItems struct {
						Nodes []timelineEventNode
					} `graphql:"timelineItems(itemTypes: [READY_FOR_REVIEW_EVENT, REVIEW_REQUESTED_EVENT, MERGED_EVENT, CLOSED_EVENT], first: 100)"`
				}
			} `graphql:"pullRequests(first: $first, after: $cursor, orderBy: {field: CREATED_AT, direction: DESC})"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner":  graphql.String(owner),
		"name":   graphql.String(name),
		"first":  graphql.Int(pageSize),
		"cursor": optCursor(cursor),
	}

	if err := c.query(ctx, &q, variables, "fetch pull requests"); err != nil {
		return Page[HealthPullRequest]{}, err
	}

	conn := q.Repository.PullRequests
	page := Page[HealthPullRequest]{
		Nodes: make([]HealthPullRequest, 0, len(conn.Nodes)),
		PageInfo: PageInfo{
			HasNextPage: bool(conn.PageInfo.HasNextPage),
			EndCursor:   string(conn.PageInfo.EndCursor),
		},
	}
	for _, node := range conn.Nodes {
		pr := HealthPullRequest{
			Number:    int(node.Number),
			Title:     string(node.Title),
			Author:    string(node.Author.Login),
			State:     string(node.State),
			CreatedAt: node.CreatedAt,
		}
		for _, comment := range node.Comments.Nodes {
			pr.Comments = append(pr.Comments, Comment{
				Author:    string(comment.Author.Login),
				CreatedAt: comment.CreatedAt,
			})
		}
		for _, review := range node.Reviews.Nodes {
			pr.Reviews = append(pr.Reviews, ReviewDetail{
				Author:    string(review.Author.Login),
				State:     string(review.State),
				CreatedAt: review.CreatedAt,
			})
		}
		for _, item := range node.TimelineItems.Nodes {
			pr.Timeline = append(pr.Timeline, convertTimelineEvent(item))
		}
		page.Nodes = append(page.Nodes, pr)
	}
	return page, nil
}
