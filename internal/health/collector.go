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

	"go.uber.org/zap"

	"github.com/rvagg/repo-health-metrics/internal/github"
)

// Collector fetches the pull request dataset the analyzer operates on.
type Collector struct {
	client github.Client
	logger *zap.Logger
}

// NewCollector creates a Collector. The logger is optional and defaults to
// a no-op logger.
func NewCollector(client github.Client, logger ...*zap.Logger) *Collector {
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Collector{client: client, logger: l}
}

// Collect lists the repository's pull requests created inside the window.
// The listing is ordered by creation date descending, which makes an early
// exit valid: once a page's oldest item precedes the window start, no older
// page can contain a wanted item and pagination stops. The collected pages
// are then filtered to the window.
func (c *Collector) Collect(ctx context.Context, owner, name string, window github.Window) ([]github.HealthPullRequest, error) {
	prs, err := github.CollectUntil(ctx,
		func(ctx context.Context, cursor *string) (github.Page[github.HealthPullRequest], error) {
			return c.client.FetchPullRequestsByCreation(ctx, owner, name, cursor)
		},
		func(page github.Page[github.HealthPullRequest]) bool {
			if len(page.Nodes) == 0 {
				return false
			}
			oldest := page.Nodes[len(page.Nodes)-1]
			return oldest.CreatedAt.Before(window.Start)
		})
	if err != nil {
		return nil, fmt.Errorf("collect pull requests for %s/%s: %w", owner, name, err)
	}

	kept := make([]github.HealthPullRequest, 0, len(prs))
	for _, pr := range prs {
		if window.Contains(pr.CreatedAt) {
			kept = append(kept, pr)
		}
	}

	c.logger.Info("pull requests collected",
		zap.String("repo", owner+"/"+name),
		zap.Int("fetched", len(prs)),
		zap.Int("in_window", len(kept)))

	return kept, nil
}
