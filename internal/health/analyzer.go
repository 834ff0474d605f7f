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

// Package health derives per-pull-request responsiveness metrics for a
// repository against a maintainer set.
package health

import (
	"math"
	"time"

	"github.com/rvagg/repo-health-metrics/internal/github"
)

// MaintainerSet is the set of maintainer logins used as the classification
// predicate. It is fetched once per run and never mutated.
type MaintainerSet map[string]struct{}

// NewMaintainerSet builds a set from a list of logins.
func NewMaintainerSet(logins []string) MaintainerSet {
	set := make(MaintainerSet, len(logins))
	for _, login := range logins {
		set[login] = struct{}{}
	}
	return set
}

// Contains reports whether login is a maintainer.
func (s MaintainerSet) Contains(login string) bool {
	_, ok := s[login]
	return ok
}

// Logins returns the member logins in unspecified order.
func (s MaintainerSet) Logins() []string {
	logins := make([]string, 0, len(s))
	for login := range s {
		logins = append(logins, login)
	}
	return logins
}

// ResponseTimeRecord is the derived latency classification for one pull
// request. Hour fields are nil when the corresponding event never occurred;
// a pull request with no qualifying events at all still yields a record.
type ResponseTimeRecord struct {
	Number                 int        `json:"number"`
	CreatedAt              time.Time  `json:"created_at"`
	ResolvedAt             *time.Time `json:"resolved_at,omitempty"`
	ResolutionTimeHours    *int       `json:"resolution_time_hours,omitempty"`
	IsMaintainerAuthored   bool       `json:"is_maintainer_authored"`
	Creator                string     `json:"creator"`
	OfficialResponseHours  *int       `json:"official_response_hours,omitempty"`
	NonAuthorResponseHours *int       `json:"non_author_response_hours,omitempty"`
}

// event is one entry of the per-pull-request event list. Comments and
// reviews carry an empty kind; only timeline entries have one.
type event struct {
	kind  github.TimelineEventKind
	actor string
	at    time.Time
}

// Analyze classifies each pull request's event stream into latency metrics.
// It is a pure function: no I/O, no mutation of its inputs, and identical
// inputs always yield identical output.
//
// The event list is the concatenation of comment events, review events and
// timeline events, in that fixed group order, each group as delivered by the
// upstream query. The list is deliberately NOT re-sorted chronologically
// before scanning; first-match definitions below operate on the as-built
// order.
func Analyze(prs []github.HealthPullRequest, maintainers MaintainerSet) []ResponseTimeRecord {
	records := make([]ResponseTimeRecord, 0, len(prs))
	for _, pr := range prs {
		records = append(records, analyzeOne(pr, maintainers))
	}
	return records
}

func analyzeOne(pr github.HealthPullRequest, maintainers MaintainerSet) ResponseTimeRecord {
	events := buildEvents(pr)

	record := ResponseTimeRecord{
		Number:               pr.Number,
		CreatedAt:            pr.CreatedAt,
		Creator:              pr.Author,
		IsMaintainerAuthored: maintainers.Contains(pr.Author),
	}

	// A draft PR's clock starts when it becomes ready for review.
	effectiveCreatedAt := pr.CreatedAt
	if ready := firstEvent(events, func(ev event) bool {
		return ev.kind == github.EventReadyForReview
	}); ready != nil {
		effectiveCreatedAt = ready.at
	}

	officialEvent := firstEvent(events, func(ev event) bool {
		if ev.kind == github.EventClosed || ev.kind == github.EventMerged {
			return true
		}
		return maintainers.Contains(ev.actor) && ev.actor != pr.Author
	})
	nonAuthorEvent := firstEvent(events, func(ev event) bool {
		return ev.actor != pr.Author
	})
	resolvedEvent := firstEvent(events, func(ev event) bool {
		return ev.kind == github.EventClosed || ev.kind == github.EventMerged
	})

	// Response hours measure from the raw creation time; resolution hours
	// measure from the effective creation time.
	if officialEvent != nil {
		record.OfficialResponseHours = intPtr(roundHours(officialEvent.at.Sub(pr.CreatedAt)))
	}
	if nonAuthorEvent != nil {
		record.NonAuthorResponseHours = intPtr(roundHours(nonAuthorEvent.at.Sub(pr.CreatedAt)))
	}
	if resolvedEvent != nil {
		at := resolvedEvent.at
		record.ResolvedAt = &at
		record.ResolutionTimeHours = intPtr(roundHours(at.Sub(effectiveCreatedAt)))
	}

	return record
}

// buildEvents concatenates the three event groups in their fixed order.
func buildEvents(pr github.HealthPullRequest) []event {
	events := make([]event, 0, len(pr.Comments)+len(pr.Reviews)+len(pr.Timeline))
	for _, c := range pr.Comments {
		events = append(events, event{actor: c.Author, at: c.CreatedAt})
	}
	for _, rv := range pr.Reviews {
		events = append(events, event{actor: rv.Author, at: rv.CreatedAt})
	}
	for _, ev := range pr.Timeline {
		events = append(events, event{kind: ev.Kind, actor: ev.Actor, at: ev.CreatedAt})
	}
	return events
}

func firstEvent(events []event, match func(event) bool) *event {
	for i := range events {
		if match(events[i]) {
			return &events[i]
		}
	}
	return nil
}

// roundHours converts a duration to whole hours, rounding half up.
func roundHours(d time.Duration) int {
	return int(math.Round(float64(d.Milliseconds()) / (60 * 60 * 1000)))
}

func intPtr(n int) *int { return &n }
