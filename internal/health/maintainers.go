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

package health

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	metricserrors "github.com/rvagg/repo-health-metrics/internal/errors"
)

// NewTeamClient creates a REST client for the team membership endpoint.
// An empty baseURL targets github.com; anything else is treated as a GitHub
// Enterprise API root.
func NewTeamClient(ctx context.Context, token, baseURL string) (*gh.Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := gh.NewClient(oauth2.NewClient(ctx, ts))
	if baseURL == "" {
		return client, nil
	}
	client, err := client.WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("configure enterprise endpoint: %w", err)
	}
	return client, nil
}

// FetchMaintainers lists the members of org's team identified by slug and
// returns them as a MaintainerSet. Called once per run; the set is read-only
// afterwards.
func FetchMaintainers(ctx context.Context, client *gh.Client, org, slug string) (MaintainerSet, error) {
	set := make(MaintainerSet)
	opts := &gh.TeamListTeamMembersOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	for {
		members, resp, err := client.Teams.ListTeamMembersBySlug(ctx, org, slug, opts)
		if err != nil {
			if resp != nil && resp.StatusCode == 404 {
				return nil, fmt.Errorf("team %s/%s: %w", org, slug, metricserrors.ErrNotFound)
			}
			return nil, fmt.Errorf("list team members %s/%s: %w", org, slug, err)
		}
		for _, member := range members {
			if login := member.GetLogin(); login != "" {
				set[login] = struct{}{}
			}
		}
		if resp.NextPage == 0 {
			return set, nil
		}
		opts.Page = resp.NextPage
	}
}
