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

// Package notify posts health report summaries to external channels.
// Currently only Slack incoming webhooks are supported.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rvagg/repo-health-metrics/internal/health"
)

// SlackNotifier posts report summaries to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlackNotifier creates a notifier for the given webhook URL.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type slackMessage struct {
	Text string `json:"text"`
}

// NotifyHealthReport formats and posts a health report summary. The message
// body is Slack mrkdwn; record-level detail is omitted to keep the message
// within Slack's size limits.
func (n *SlackNotifier) NotifyHealthReport(ctx context.Context, report *health.Report) error {
	msg := slackMessage{Text: formatHealthSummary(report)}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("slack webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}

func formatHealthSummary(report *health.Report) string {
	s := report.Summarize()

	var b strings.Builder
	fmt.Fprintf(&b, "*Repository health: %s*\n", report.Repo)
	fmt.Fprintf(&b, "Window %s to %s\n",
		report.Window.Start.Format("2006-01-02"), report.Window.End.Format("2006-01-02"))
	fmt.Fprintf(&b, "• Pull requests: %d (%d resolved, %d maintainer-authored)\n",
		s.PullRequests, s.Resolved, s.MaintainerAuthored)
	fmt.Fprintf(&b, "• Avg official response: %s\n", formatAvg(s.AvgOfficialHours))
	fmt.Fprintf(&b, "• Avg non-author response: %s\n", formatAvg(s.AvgNonAuthorHours))
	fmt.Fprintf(&b, "• Avg resolution time: %s", formatAvg(s.AvgResolutionHours))
	return b.String()
}

func formatAvg(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f hours", *v)
}
