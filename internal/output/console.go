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
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/rvagg/repo-health-metrics/internal/activity"
	"github.com/rvagg/repo-health-metrics/internal/health"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgWhite, color.Bold)
	dimColor    = color.New(color.Faint)
	warnColor   = color.New(color.FgYellow)
	okColor     = color.New(color.FgGreen)
)

// Console renders human-readable summaries to a terminal.
type Console struct {
	w io.Writer
}

// NewConsole creates a console renderer writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// RenderBundle prints a summary of a user's aggregated activity.
func (c *Console) RenderBundle(b *activity.Bundle) {
	headerColor.Fprintf(c.w, "Activity for %s\n", b.Login)
	dimColor.Fprintf(c.w, "  window %s .. %s\n\n",
		b.Window.Start.Format("2006-01-02"), b.Window.End.Format("2006-01-02"))

	fmt.Fprintf(c.w, "  %s %d\n", labelColor.Sprint("pull requests:"), len(b.Pulls))
	fmt.Fprintf(c.w, "  %s %d\n", labelColor.Sprint("reviews:      "), len(b.Reviews))
	fmt.Fprintf(c.w, "  %s %d\n", labelColor.Sprint("issues:       "), len(b.Issues))

	var commits int
	for _, bucket := range b.Buckets {
		commits += bucket.CommitCount
	}
	fmt.Fprintf(c.w, "  %s %d across %d repositories\n",
		labelColor.Sprint("commits:      "), commits, len(b.Buckets))

	for _, pr := range b.Pulls {
		fmt.Fprintf(c.w, "    %s %s\n",
			dimColor.Sprintf("%s#%d", pr.Repo, pr.Number), truncate(pr.Title, 70))
	}
}

// RenderEnrichedBundle prints a summary of an enriched activity bundle,
// including any per-item failures from the enrichment report.
func (c *Console) RenderEnrichedBundle(b *activity.EnrichedBundle, report *activity.Report) {
	headerColor.Fprintf(c.w, "Activity for %s (enriched)\n", b.Login)
	dimColor.Fprintf(c.w, "  window %s .. %s\n\n",
		b.Window.Start.Format("2006-01-02"), b.Window.End.Format("2006-01-02"))

	for _, pr := range b.Pulls {
		fmt.Fprintf(c.w, "  %s %s\n",
			labelColor.Sprintf("%s#%d", pr.Repo, pr.Number), truncate(pr.Title, 70))
		fmt.Fprintf(c.w, "    %s\n", dimColor.Sprintf(
			"+%d -%d, %d comments, %d reviews, %d files, %d timeline events",
			pr.Additions, pr.Deletions, len(pr.Comments), len(pr.Reviews),
			len(pr.Files), len(pr.Timeline)))
	}

	fmt.Fprintf(c.w, "\n  %s %d\n", labelColor.Sprint("reviews:"), len(b.Reviews))
	fmt.Fprintf(c.w, "  %s %d\n", labelColor.Sprint("issues: "), len(b.Issues))

	for _, bucket := range b.Buckets {
		fmt.Fprintf(c.w, "  %s %d commits",
			labelColor.Sprint(bucket.Repo), len(bucket.Commits))
		if bucket.Repository != nil && bucket.Repository.Description != "" {
			dimColor.Fprintf(c.w, "  %s", truncate(bucket.Repository.Description, 50))
		}
		fmt.Fprintln(c.w)
	}

	if report != nil && report.Failed() {
		fmt.Fprintln(c.w)
		warnColor.Fprintf(c.w, "  %d item(s) could not be enriched:\n", len(report.Failures))
		for _, f := range report.Failures {
			warnColor.Fprintf(c.w, "    %s: %v\n", f.Item, f.Err)
		}
	}
}

// RenderHealthReport prints the response-time summary for a repository.
func (c *Console) RenderHealthReport(r *health.Report) {
	s := r.Summarize()

	headerColor.Fprintf(c.w, "Repository health: %s\n", r.Repo)
	dimColor.Fprintf(c.w, "  window %s .. %s, %d maintainers\n\n",
		r.Window.Start.Format("2006-01-02"), r.Window.End.Format("2006-01-02"),
		len(r.Maintainers))

	fmt.Fprintf(c.w, "  %s %d\n", labelColor.Sprint("pull requests:      "), s.PullRequests)
	fmt.Fprintf(c.w, "  %s %d\n", labelColor.Sprint("resolved:           "), s.Resolved)
	fmt.Fprintf(c.w, "  %s %d\n", labelColor.Sprint("maintainer authored:"), s.MaintainerAuthored)
	fmt.Fprintf(c.w, "  %s %s\n", labelColor.Sprint("avg official resp:  "), formatHours(s.AvgOfficialHours))
	fmt.Fprintf(c.w, "  %s %s\n", labelColor.Sprint("avg non-author resp:"), formatHours(s.AvgNonAuthorHours))
	fmt.Fprintf(c.w, "  %s %s\n\n", labelColor.Sprint("avg resolution:     "), formatHours(s.AvgResolutionHours))

	for _, rec := range r.Records {
		status := warnColor.Sprint("open")
		if rec.ResolvedAt != nil {
			status = okColor.Sprint("resolved")
		}
		fmt.Fprintf(c.w, "  #%-6d %-10s official=%s non-author=%s resolution=%s\n",
			rec.Number, status,
			formatHourPtr(rec.OfficialResponseHours),
			formatHourPtr(rec.NonAuthorResponseHours),
			formatHourPtr(rec.ResolutionTimeHours))
	}
}

func formatHours(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1fh", *v)
}

func formatHourPtr(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%dh", *v)
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
