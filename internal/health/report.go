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
	"github.com/rvagg/repo-health-metrics/internal/github"
)

// Report bundles the analyzed records with the run parameters for the
// renderers and the Slack notifier.
type Report struct {
	Repo        string               `json:"repo"`
	Window      github.Window        `json:"window"`
	Maintainers []string             `json:"maintainers"`
	Records     []ResponseTimeRecord `json:"records"`
}

// Summary aggregates a report for headline rendering. Averages are nil when
// no record carries the corresponding hour field.
type Summary struct {
	PullRequests       int      `json:"pull_requests"`
	Resolved           int      `json:"resolved"`
	MaintainerAuthored int      `json:"maintainer_authored"`
	AvgOfficialHours   *float64 `json:"avg_official_response_hours,omitempty"`
	AvgNonAuthorHours  *float64 `json:"avg_non_author_response_hours,omitempty"`
	AvgResolutionHours *float64 `json:"avg_resolution_time_hours,omitempty"`
}

// Summarize computes headline numbers over the report's records.
func (r *Report) Summarize() Summary {
	s := Summary{PullRequests: len(r.Records)}

	var official, nonAuthor, resolution mean
	for _, rec := range r.Records {
		if rec.ResolvedAt != nil {
			s.Resolved++
		}
		if rec.IsMaintainerAuthored {
			s.MaintainerAuthored++
		}
		official.add(rec.OfficialResponseHours)
		nonAuthor.add(rec.NonAuthorResponseHours)
		resolution.add(rec.ResolutionTimeHours)
	}

	s.AvgOfficialHours = official.value()
	s.AvgNonAuthorHours = nonAuthor.value()
	s.AvgResolutionHours = resolution.value()
	return s
}

type mean struct {
	sum   int
	count int
}

func (m *mean) add(v *int) {
	if v != nil {
		m.sum += *v
		m.count++
	}
}

func (m *mean) value() *float64 {
	if m.count == 0 {
		return nil
	}
	v := float64(m.sum) / float64(m.count)
	return &v
}
