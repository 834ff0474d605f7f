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

// timelineEventNode is the shared response shape for the pull request
// timeline union, restricted to the event kinds the system classifies.
type timelineEventNode struct {
	Typename            graphql.String `graphql:"__typename"`
	ReadyForReviewEvent struct {
		CreatedAt time.Time
		Actor     struct {
			Login graphql.String
		} `graphql:"actor"`
	} `graphql:"... on ReadyForReviewEvent"`
	ReviewRequestedEvent struct {
		CreatedAt time.Time
		Actor     struct {
			Login graphql.String
		} `graphql:"actor"`
	} `graphql:"... on ReviewRequestedEvent"`
	MergedEvent struct {
		CreatedAt time.Time
		Actor     struct {
			Login graphql.String
		} `graphql:"actor"`
	} `graphql:"... on MergedEvent"`
	ClosedEvent struct {
		CreatedAt time.Time
		Actor     struct {
			Login graphql.String
		} `graphql:"actor"`
	} `graphql:"... on ClosedEvent"`
}

func convertTimelineEvent(node timelineEventNode) TimelineEvent {
	switch TimelineEventKind(node.Typename) {
	case EventReadyForReview:
		return TimelineEvent{
			Kind:      EventReadyForReview,
			Actor:     string(node.ReadyForReviewEvent.Actor.Login),
			CreatedAt: node.ReadyForReviewEvent.CreatedAt,
		}
	case EventReviewRequested:
		return TimelineEvent{
			Kind:      EventReviewRequested,
			Actor:     string(node.ReviewRequestedEvent.Actor.Login),
			CreatedAt: node.ReviewRequestedEvent.CreatedAt,
		}
	case EventMerged:
		return TimelineEvent{
			Kind:      EventMerged,
			Actor:     string(node.MergedEvent.Actor.Login),
			CreatedAt: node.MergedEvent.CreatedAt,
		}
	default:
		return TimelineEvent{
			Kind:      EventClosed,
			Actor:     string(node.ClosedEvent.Actor.Login),
			CreatedAt: node.ClosedEvent.CreatedAt,
		}
	}
}

// reactionGroupNode carries one reaction kind with its count.
type reactionGroupNode struct {
	Content  graphql.String
	Reactors struct {
		TotalCount graphql.Int
	} `graphql:"reactors"`
}

// collapseReactions converts reaction groups to a kind -> count mapping.
// Zero counts are dropped and a comment with no reactions at all gets a nil
// map so the field is omitted from serialized output.
func collapseReactions(groups []reactionGroupNode) map[string]int {
	var reactions map[string]int
	for _, g := range groups {
		if count := int(g.Reactors.TotalCount); count > 0 {
			if reactions == nil {
				reactions = make(map[string]int)
			}
			reactions[string(g.Content)] = count
		}
	}
	return reactions
}

func pullVariables(owner, name string, number int) map[string]interface{} {
	return map[string]interface{}{
		"owner":  graphql.String(owner),
		"name":   graphql.String(name),
		"number": graphql.Int(number),
	}
}

// FetchPullComments retrieves one page of issue-style comments on a pull
// request with collapsed reaction counts.
func (c *GraphQLClient) FetchPullComments(ctx context.Context, owner, name string, number int, cursor *string) (Page[Comment], error) {
	var q struct {
		Repository struct {
			PullRequest struct {
				Comments struct {
					PageInfo struct {
						HasNextPage graphql.Boolean
						EndCursor   graphql.String
					}
					Nodes []struct {
						Author struct {
							Login graphql.String
						} `graphql:"author"`
						Body           graphql.String
						CreatedAt      time.Time
						ReactionGroups []reactionGroupNode `graphql:"reactionGroups"`
					}
				} `graphql:"comments(first: 100, after: $cursor)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	vars := pullVariables(owner, name, number)
	vars["cursor"] = optCursor(cursor)

	if err := c.query(ctx, &q, vars, "fetch pull request comments"); err != nil {
		return Page[Comment]{}, err
	}

	conn := q.Repository.PullRequest.Comments
	page := Page[Comment]{
		Nodes: make([]Comment, 0, len(conn.Nodes)),
		PageInfo: PageInfo{
			HasNextPage: bool(conn.PageInfo.HasNextPage),
			EndCursor:   string(conn.PageInfo.EndCursor),
		},
	}
	for _, node := range conn.Nodes {
		page.Nodes = append(page.Nodes, Comment{
			Author:    string(node.Author.Login),
			Body:      string(node.Body),
			CreatedAt: node.CreatedAt,
			Reactions: collapseReactions(node.ReactionGroups),
		})
	}
	return page, nil
}

// FetchPullReviews retrieves one page of reviews with their inline comments
// for a pull request.
func (c *GraphQLClient) FetchPullReviews(ctx context.Context, owner, name string, number int, cursor *string) (Page[ReviewDetail], error) {
	var q struct {
		Repository struct {
			PullRequest struct {
				Reviews struct {
					PageInfo struct {
						HasNextPage graphql.Boolean
						EndCursor   graphql.String
					}
					Nodes []struct {
						Author struct {
							Login graphql.String
						} `graphql:"author"`
						State     graphql.String
						Body      graphql.String
						CreatedAt time.Time
						Comments  struct {
							Nodes []struct {
								Author struct {
									Login graphql.String
								} `graphql:"author"`
								Path      graphql.String
								Body      graphql.String
								CreatedAt time.Time
							}
						} `graphql:"comments(first: 100)"`
					}
				} `graphql:"reviews(first: 100, after: $cursor)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	vars := pullVariables(owner, name, number)
	vars["cursor"] = optCursor(cursor)

	if err := c.query(ctx, &q, vars, "fetch pull request reviews"); err != nil {
		return Page[ReviewDetail]{}, err
	}

	conn := q.Repository.PullRequest.Reviews
	page := Page[ReviewDetail]{
		Nodes: make([]ReviewDetail, 0, len(conn.Nodes)),
		PageInfo: PageInfo{
			HasNextPage: bool(conn.PageInfo.HasNextPage),
			EndCursor:   string(conn.PageInfo.EndCursor),
		},
	}
	for _, node := range conn.Nodes {
		detail := ReviewDetail{
			Author:    string(node.Author.Login),
			State:     string(node.State),
			Body:      string(node.Body),
			CreatedAt: node.CreatedAt,
		}
		for _, comment := range node.Comments.Nodes {
			detail.Comments = append(detail.Comments, ReviewComment{
				Author:    string(comment.Author.Login),
				Path:      string(comment.Path),
				Body:      string(comment.Body),
				CreatedAt: comment.CreatedAt,
			})
		}
		page.Nodes = append(page.Nodes, detail)
	}
	return page, nil
}

// FetchPullFiles retrieves the changed files of a pull request. Single page;
// pull requests touching more than 100 files are truncated.
func (c *GraphQLClient) FetchPullFiles(ctx context.Context, owner, name string, number int) ([]ChangedFile, error) {
	var q struct {
		Repository struct {
			PullRequest struct {
				Files struct {
					Nodes []struct {
						Path      graphql.String
						Additions graphql.Int
						Deletions graphql.Int
					}
				} `graphql:"files(first: 100)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	if err := c.query(ctx, &q, pullVariables(owner, name, number), "fetch pull request files"); err != nil {
		return nil, err
	}

	nodes := q.Repository.PullRequest.Files.Nodes
	files := make([]ChangedFile, 0, len(nodes))
	for _, node := range nodes {
		files = append(files, ChangedFile{
			Path:      string(node.Path),
			Additions: int(node.Additions),
			Deletions: int(node.Deletions),
		})
	}
	return files, nil
}

// FetchPullTimeline retrieves the classification-relevant timeline events of
// a pull request. Single page.
func (c *GraphQLClient) FetchPullTimeline(ctx context.Context, owner, name string, number int) ([]TimelineEvent, error) {
	var q struct {
		Repository struct {
			PullRequest struct {
				TimelineItems struct {
					Nodes []timelineEventNode
				} `graphql:"timelineItems(itemTypes: [READY_FOR_REVIEW_EVENT, REVIEW_REQUESTED_EVENT, MERGED_EVENT, CLOSED_EVENT], first: 100)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	if err := c.query(ctx, &q, pullVariables(owner, name, number), "fetch pull request timeline"); err != nil {
		return nil, err
	}

	nodes := q.Repository.PullRequest.TimelineItems.Nodes
	events := make([]TimelineEvent, 0, len(nodes))
	for _, node := range nodes {
		events = append(events, convertTimelineEvent(node))
	}
	return events, nil
}
