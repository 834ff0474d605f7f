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

package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/rvagg/repo-health-metrics/internal/activity"
	"github.com/rvagg/repo-health-metrics/internal/github"
	"github.com/rvagg/repo-health-metrics/internal/health"
)

func init() {
	// Color codes would make the substring assertions brittle.
	color.NoColor = true
}

var consoleWindow = github.Window{
	Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
}

func TestRenderBundle(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).RenderBundle(&activity.Bundle{
		Login:  "octocat",
		Window: consoleWindow,
		Pulls: []github.PullRequest{
			{Number: 42, Repo: "octo/widgets", Title: "Fix the flange"},
		},
		Buckets: []github.CommitBucket{
			{Repo: "octo/widgets", CommitCount: 3},
			{Repo: "octo/gears", CommitCount: 2},
		},
	})

	out := buf.String()
	for _, want := range []string{
		"Activity for octocat",
		"2025-06-01 .. 2025-07-01",
		"pull requests: 1",
		"5 across 2 repositories",
		"octo/widgets#42",
		"Fix the flange",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEnrichedBundle_Failures(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).RenderEnrichedBundle(&activity.EnrichedBundle{
		Login:  "octocat",
		Window: consoleWindow,
		Pulls: []activity.EnrichedPullRequest{
			{PullRequest: github.PullRequest{Number: 1, Repo: "octo/widgets", Title: "ok"}},
		},
	}, &activity.Report{
		Failures: []activity.Failure{
			{Item: "octo/gears#2", Err: errors.New("files unavailable")},
		},
	})

	out := buf.String()
	if !strings.Contains(out, "1 item(s) could not be enriched") {
		t.Errorf("output missing failure summary:\n%s", out)
	}
	if !strings.Contains(out, "octo/gears#2: files unavailable") {
		t.Errorf("output missing failure detail:\n%s", out)
	}
}

func TestRenderHealthReport(t *testing.T) {
	resolved := time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)
	hours := 28
	official := 5

	var buf bytes.Buffer
	NewConsole(&buf).RenderHealthReport(&health.Report{
		Repo:        "octo/widgets",
		Window:      consoleWindow,
		Maintainers: []string{"alice", "bob"},
		Records: []health.ResponseTimeRecord{
			{
				Number:                10,
				CreatedAt:             resolved.Add(-28 * time.Hour),
				ResolvedAt:            &resolved,
				ResolutionTimeHours:   &hours,
				OfficialResponseHours: &official,
			},
			{Number: 11, CreatedAt: resolved},
		},
	})

	out := buf.String()
	for _, want := range []string{
		"Repository health: octo/widgets",
		"2 maintainers",
		"pull requests:       2",
		"resolved:            1",
		"avg official resp:   5.0h",
		"resolution=28h",
		"open",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short string unchanged", in: "hello", max: 10, want: "hello"},
		{name: "long string elided", in: "abcdefghij", max: 8, want: "abcde..."},
		{name: "newlines flattened", in: "two\nlines", max: 20, want: "two lines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
