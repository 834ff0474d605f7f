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
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rvagg/repo-health-metrics/internal/github"
)

// DefaultConcurrency is the enrichment worker pool size used when no limit
// is configured.
const DefaultConcurrency = 8

// Enricher attaches secondary detail to an aggregated bundle: per pull
// request the comments, review details, changed files and timeline items;
// per commit bucket the exact commit list and repository metadata.
//
// Fan-outs run on a bounded worker pool with per-item error isolation: a
// failed item keeps its primary record, loses its attachments, and is
// recorded in the Report without discarding sibling successes.
type Enricher struct {
	client      github.Client
	concurrency int
	logger      *zap.Logger

	// OnItem, when set, is called after each item completes, successful or
	// not. Used by the CLI for progress reporting.
	OnItem func()
}

// NewEnricher creates an Enricher with the given worker pool size. A
// non-positive concurrency selects DefaultConcurrency. The logger is
// optional and defaults to a no-op logger.
func NewEnricher(client github.Client, concurrency int, logger ...*zap.Logger) *Enricher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	l := zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &Enricher{client: client, concurrency: concurrency, logger: l}
}

// ItemCount returns the number of items an enrichment pass over the bundle
// will process, for progress reporting.
func ItemCount(bundle *Bundle) int {
	return len(bundle.Pulls) + len(bundle.Buckets)
}

// Enrich runs both fan-outs over the bundle and returns a new enriched
// bundle plus a report of failed items. The input bundle is not modified.
// Comment and review attachments are filtered by the window's update-time
// rule; changed files and timeline items are not date-filtered. The error
// return is reserved for context cancellation; API failures on individual
// items land in the report instead.
func (e *Enricher) Enrich(ctx context.Context, bundle *Bundle) (*EnrichedBundle, *Report, error) {
	enriched := &EnrichedBundle{
		Login:   bundle.Login,
		Window:  bundle.Window,
		Pulls:   make([]EnrichedPullRequest, len(bundle.Pulls)),
		Reviews: bundle.Reviews,
		Issues:  bundle.Issues,
		Buckets: make([]EnrichedCommitBucket, len(bundle.Buckets)),
	}
	report := &Report{}
	var mu sync.Mutex

	record := func(item string, rec func(), err error) error {
		if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return err
		}
		mu.Lock()
		if err != nil {
			report.Failures = append(report.Failures, Failure{Item: item, Err: err})
			e.logger.Warn("enrichment item failed", zap.String("item", item), zap.Error(err))
		}
		rec()
		mu.Unlock()
		if e.OnItem != nil {
			e.OnItem()
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, pr := range bundle.Pulls {
		i, pr := i, pr
		g.Go(func() error {
			rec, err := e.enrichPull(gctx, pr, bundle.Window)
			return record(itemKey(pr.Repo, pr.Number), func() { enriched.Pulls[i] = rec }, err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// The commit fan-out needs the user's node identity for the history
	// author filter; it is resolved once per run. If resolution fails the
	// buckets keep their coarse counts and the failure is reported.
	authorID, err := e.client.ResolveUserID(ctx, bundle.Login)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, err
		}
		report.Failures = append(report.Failures, Failure{Item: "user:" + bundle.Login, Err: err})
		e.logger.Warn("user identity resolution failed", zap.String("login", bundle.Login), zap.Error(err))
		for i, bucket := range bundle.Buckets {
			enriched.Buckets[i] = EnrichedCommitBucket{CommitBucket: bucket}
			if e.OnItem != nil {
				e.OnItem()
			}
		}
		return enriched, report, nil
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, bucket := range bundle.Buckets {
		i, bucket := i, bucket
		g.Go(func() error {
			rec, err := e.enrichBucket(gctx, bucket, authorID, bundle.Window.Start)
			return record(bucket.Repo, func() { enriched.Buckets[i] = rec }, err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	e.logger.Info("enrichment complete",
		zap.String("login", bundle.Login),
		zap.Int("items", ItemCount(bundle)),
		zap.Int("failed", len(report.Failures)))

	return enriched, report, nil
}

// enrichPull runs the four secondary queries for one pull request. The first
// two are paginated; files and timeline items are single-page captures.
func (e *Enricher) enrichPull(ctx context.Context, pr github.PullRequest, window github.Window) (EnrichedPullRequest, error) {
	rec := EnrichedPullRequest{PullRequest: pr}
	owner, name := pr.Owner(), pr.Name()

	comments, err := github.CollectAll(ctx, func(ctx context.Context, cursor *string) (github.Page[github.Comment], error) {
		return e.client.FetchPullComments(ctx, owner, name, pr.Number, cursor)
	})
	if err != nil {
		return rec, err
	}
	rec.Comments = keepSince(comments, window.Start, func(c github.Comment) time.Time {
		return c.CreatedAt
	})

	reviews, err := github.CollectAll(ctx, func(ctx context.Context, cursor *string) (github.Page[github.ReviewDetail], error) {
		return e.client.FetchPullReviews(ctx, owner, name, pr.Number, cursor)
	})
	if err != nil {
		return rec, err
	}
	rec.Reviews = keepSince(reviews, window.Start, func(rv github.ReviewDetail) time.Time {
		return rv.CreatedAt
	})

	if rec.Files, err = e.client.FetchPullFiles(ctx, owner, name, pr.Number); err != nil {
		return rec, err
	}
	if rec.Timeline, err = e.client.FetchPullTimeline(ctx, owner, name, pr.Number); err != nil {
		return rec, err
	}
	return rec, nil
}

// enrichBucket resolves the exact commit list and repository metadata for
// one commit bucket.
func (e *Enricher) enrichBucket(ctx context.Context, bucket github.CommitBucket, authorID string, since time.Time) (EnrichedCommitBucket, error) {
	rec := EnrichedCommitBucket{CommitBucket: bucket}
	owner, name := bucket.Owner(), bucket.Name()

	commits, err := github.CollectAll(ctx, func(ctx context.Context, cursor *string) (github.Page[github.Commit], error) {
		return e.client.FetchCommitHistory(ctx, owner, name, authorID, since, cursor)
	})
	if err != nil {
		return rec, err
	}
	rec.Commits = commits

	if rec.Repository, err = e.client.FetchRepoMetadata(ctx, owner, name); err != nil {
		return rec, err
	}
	return rec, nil
}

func itemKey(repo string, number int) string {
	return repo + "#" + strconv.Itoa(number)
}
