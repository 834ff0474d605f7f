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

package activity

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rvagg/repo-health-metrics/internal/github"
)

// lookbackMonths widens the fetch window backwards so items created before
// the window but updated inside it are not missed. The widened fetch is
// post-filtered by update time.
const lookbackMonths = 1

// Aggregator collects one user's contributions (pull requests, reviews,
// issues, commit buckets) over a date window.
type Aggregator struct {
	client github.Client
	logger *zap.Logger
}

// NewAggregator creates an Aggregator. The logger is optional and defaults
// to a no-op logger.
func NewAggregator(client github.Client, logger ...*zap.Logger) *Aggregator {
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Aggregator{client: client, logger: l}
}

// Aggregate fetches the user's contributions for the window and returns the
// filtered bundle. The upstream queries are issued against a window widened
// by one calendar month of lookback; results are then kept only when their
// last update falls at or after the requested start. The lookback fetch has
// no server-side date ordering, so every collection paginates to exhaustion.
// Commit buckets are captured once, unfiltered: they carry aggregate counts
// only, with no per-item timestamp to filter on.
//
// Any fetch failure aborts the aggregation; there are no partial results.
func (a *Aggregator) Aggregate(ctx context.Context, login string, window github.Window) (*Bundle, error) {
	if window.End.Before(window.Start) {
		return nil, fmt.Errorf("window end %s precedes start %s", window.End, window.Start)
	}

	from := window.Start.AddDate(0, -lookbackMonths, 0)
	to := window.End

	a.logger.Debug("aggregating activity",
		zap.String("login", login),
		zap.Time("start", window.Start),
		zap.Time("end", window.End),
		zap.Time("lookback_from", from))

	pulls, err := github.CollectAll(ctx, func(ctx context.Context, cursor *string) (github.Page[github.PullRequest], error) {
		return a.client.FetchPullRequestContributions(ctx, login, from, to, cursor)
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate pull requests for %s: %w", login, err)
	}

	reviews, err := github.CollectAll(ctx, func(ctx context.Context, cursor *string) (github.Page[github.Review], error) {
		return a.client.FetchReviewContributions(ctx, login, from, to, cursor)
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate reviews for %s: %w", login, err)
	}

	issues, err := github.CollectAll(ctx, func(ctx context.Context, cursor *string) (github.Page[github.Issue], error) {
		return a.client.FetchIssueContributions(ctx, login, from, to, cursor)
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate issues for %s: %w", login, err)
	}

	buckets, err := a.client.FetchCommitBuckets(ctx, login, from, to)
	if err != nil {
		return nil, fmt.Errorf("aggregate commit buckets for %s: %w", login, err)
	}

	bundle := &Bundle{
		Login:  login,
		Window: window,
		Pulls: keepSince(pulls, window.Start, func(pr github.PullRequest) time.Time {
			return pr.UpdatedAt
		}),
		Reviews: keepSince(reviews, window.Start, func(rv github.Review) time.Time {
			return rv.UpdatedAt
		}),
		Issues: keepSince(issues, window.Start, func(is github.Issue) time.Time {
			return is.UpdatedAt
		}),
		Buckets: buckets,
	}

	a.logger.Info("activity aggregated",
		zap.String("login", login),
		zap.Int("pulls", len(bundle.Pulls)),
		zap.Int("reviews", len(bundle.Reviews)),
		zap.Int("issues", len(bundle.Issues)),
		zap.Int("commit_buckets", len(bundle.Buckets)))

	return bundle, nil
}

// keepSince applies the post-filter half of the lookback policy: an item
// survives iff its timestamp falls at or after the cutoff.
func keepSince[T any](items []T, cutoff time.Time, ts func(T) time.Time) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if !ts(item).Before(cutoff) {
			kept = append(kept, item)
		}
	}
	return kept
}
