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
	"time"

	"github.com/shurcooL/graphql"

	metricserrors "github.com/rvagg/repo-health-metrics/internal/errors"
)

// ResolveUserID resolves a login to its node identity. The identity is what
// the commit history connection's author filter accepts.
func (c *GraphQLClient) ResolveUserID(ctx context.Context, login string) (string, error) {
	var q struct {
		User *struct {
			ID graphql.ID
		} `graphql:"user(login: $login)"`
	}

	variables := map[string]interface{}{
		"login": graphql.String(login),
	}

	if err := c.query(ctx, &q, variables, "resolve user id"); err != nil {
		return "", err
	}
	if q.User == nil {
		return "", fmt.Errorf("resolve user id: no user %q: %w", login, metricserrors.ErrNotFound)
	}
	return fmt.Sprintf("%v", q.User.ID), nil
}

// FetchCommitHistory retrieves one page of the repository's default branch
// history restricted to the given author and to commits at or after since.
func (c *GraphQLClient) FetchCommitHistory(ctx context.Context, owner, name, authorID string, since time.Time, cursor *string) (Page[Commit], error) {
	var q struct {
		Repository *struct {
			DefaultBranchRef *struct {
				Target struct {
					Commit struct {
						History struct {
							PageInfo struct {
								HasNextPage graphql.Boolean
								EndCursor   graphql.String
							}
							Nodes []struct {
								MessageHeadline graphql.String
								MessageBody     graphql.String
								CommittedDate   time.Time
							}
						} `graphql:"history(first: $first, after: $cursor, since: $since, author: $author)"`
					} `graphql:"... on Commit"`
				} `graphql:"target"`
			} `graphql:"defaultBranchRef"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner":  graphql.String(owner),
		"name":   graphql.String(name),
		"first":  graphql.Int(pageSize),
		"cursor": optCursor(cursor),
		"since":  GitTimestamp{since},
		"author": CommitAuthor{ID: graphql.ID(authorID)},
	}

	if err := c.query(ctx, &q, variables, "fetch commit history"); err != nil {
		return Page[Commit]{}, err
	}
	if q.Repository == nil || q.Repository.DefaultBranchRef == nil {
		return Page[Commit]{}, fmt.Errorf("fetch commit history: no default branch for %s/%s: %w",
			owner, name, metricserrors.ErrNotFound)
	}

	history := q.Repository.DefaultBranchRef.Target.Commit.History
	page := Page[Commit]{
		Nodes: make([]Commit, 0, len(history.Nodes)),
		PageInfo: PageInfo{
			HasNextPage: bool(history.PageInfo.HasNextPage),
			EndCursor:   string(history.PageInfo.EndCursor),
		},
	}
	for _, node := range history.Nodes {
		page.Nodes = append(page.Nodes, Commit{
			Headline:    string(node.MessageHeadline),
			Body:        string(node.MessageBody),
			CommittedAt: node.CommittedDate,
		})
	}
	return page, nil
}

// FetchRepoMetadata retrieves description and topics for a repository.
func (c *GraphQLClient) FetchRepoMetadata(ctx context.Context, owner, name string) (*Repository, error) {
	var q struct {
		Repository *struct {
			NameWithOwner    graphql.String
			Description      graphql.String
			RepositoryTopics struct {
				Nodes []struct {
					Topic struct {
						Name graphql.String
					} `graphql:"topic"`
				}
			} `graphql:"repositoryTopics(first: 20)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"name":  graphql.String(name),
	}

	if err := c.query(ctx, &q, variables, "fetch repository metadata"); err != nil {
		return nil, err
	}
	if q.Repository == nil {
		return nil, fmt.Errorf("fetch repository metadata: no repository %s/%s: %w",
			owner, name, metricserrors.ErrNotFound)
	}

	repo := &Repository{
		NameWithOwner: string(q.Repository.NameWithOwner),
		Description:   string(q.Repository.Description),
	}
	for _, node := range q.Repository.RepositoryTopics.Nodes {
		repo.Topics = append(repo.Topics, string(node.Topic.Name))
	}
	return repo, nil
}
