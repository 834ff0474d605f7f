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
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	resolved := t0.Add(20 * time.Hour)
	report := &Report{
		Repo: "octo/widgets",
		Records: []ResponseTimeRecord{
			{
				Number:                1,
				CreatedAt:             t0,
				ResolvedAt:            &resolved,
				ResolutionTimeHours:   intPtr(20),
				OfficialResponseHours: intPtr(4),
			},
			{
				Number:                 2,
				CreatedAt:              t0,
				OfficialResponseHours:  intPtr(8),
				NonAuthorResponseHours: intPtr(2),
				IsMaintainerAuthored:   true,
			},
			{
				Number:    3,
				CreatedAt: t0,
			},
		},
	}

	s := report.Summarize()

	if s.PullRequests != 3 {
		t.Errorf("PullRequests = %d, want 3", s.PullRequests)
	}
	if s.Resolved != 1 {
		t.Errorf("Resolved = %d, want 1", s.Resolved)
	}
	if s.MaintainerAuthored != 1 {
		t.Errorf("MaintainerAuthored = %d, want 1", s.MaintainerAuthored)
	}

	// Averages run over records that carry the field, not over all records.
	if s.AvgOfficialHours == nil || *s.AvgOfficialHours != 6 {
		t.Errorf("AvgOfficialHours = %v, want 6", s.AvgOfficialHours)
	}
	if s.AvgNonAuthorHours == nil || *s.AvgNonAuthorHours != 2 {
		t.Errorf("AvgNonAuthorHours = %v, want 2", s.AvgNonAuthorHours)
	}
	if s.AvgResolutionHours == nil || *s.AvgResolutionHours != 20 {
		t.Errorf("AvgResolutionHours = %v, want 20", s.AvgResolutionHours)
	}
}

func TestSummarize_Empty(t *testing.T) {
	report := &Report{Repo: "octo/widgets"}
	s := report.Summarize()

	if s.PullRequests != 0 || s.Resolved != 0 {
		t.Errorf("summary of empty report should be zeroed: %+v", s)
	}
	if s.AvgOfficialHours != nil || s.AvgNonAuthorHours != nil || s.AvgResolutionHours != nil {
		t.Errorf("averages over no records should be nil: %+v", s)
	}
}
