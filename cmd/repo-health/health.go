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

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rvagg/repo-health-metrics/internal/config"
	"github.com/rvagg/repo-health-metrics/internal/github"
	"github.com/rvagg/repo-health-metrics/internal/health"
	"github.com/rvagg/repo-health-metrics/internal/notify"
	"github.com/rvagg/repo-health-metrics/internal/output"
)

// newHealthCommand builds the health subcommand
func newHealthCommand() *cobra.Command {
	var (
		token        string
		outputFile   string
		format       string
		team         string
		windowMonths int
		settleDays   int
		slackWebhook string
	)

	cmd := &cobra.Command{
		Use:   "health <owner>/<repo>",
		Short: "Derive response-time metrics for a repository's pull requests",
		Long: `Derive per-pull-request response and resolution times for a repository.

Pull requests created inside the analysis window are collected, each one's
comments, reviews and timeline are examined, and response times relative to
the repository's maintainer team are reported. The window ends a few days
before now so that recent pull requests have had time to receive responses.

The maintainer team is given as <org>/<team-slug>, for example
filecoin-project/lotus-maintainers.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(cmd.Context(), args[0], healthOptions{
				token:        token,
				outputFile:   outputFile,
				format:       format,
				team:         team,
				windowMonths: windowMonths,
				settleDays:   settleDays,
				slackWebhook: slackWebhook,
			})
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: console or ndjson (default from config)")
	cmd.Flags().StringVar(&team, "team", "", "Maintainer team as <org>/<team-slug> (default from config)")
	cmd.Flags().IntVar(&windowMonths, "window-months", 0, "Analysis window length in months (default from config)")
	cmd.Flags().IntVar(&settleDays, "settle-days", 0, "Days before now the window ends (default from config)")
	cmd.Flags().StringVar(&slackWebhook, "slack-webhook", "", "Slack incoming webhook URL for the summary (default from config)")

	return cmd
}

type healthOptions struct {
	token        string
	outputFile   string
	format       string
	team         string
	windowMonths int
	settleDays   int
	slackWebhook string
}

func runHealth(ctx context.Context, repoArg string, opts healthOptions) error {
	owner, repo, err := parseRepository(repoArg)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	token := cfg.Token(opts.token)
	if token == "" {
		return fmt.Errorf("GitHub token not found. Set GITHUB_TOKEN or use --token flag")
	}

	team := opts.team
	if team == "" {
		team = cfg.Health.Team
	}
	org, slug, err := parseTeam(team)
	if err != nil {
		return err
	}

	windowMonths := opts.windowMonths
	if windowMonths == 0 {
		windowMonths = cfg.Health.WindowMonths
	}
	settleDays := opts.settleDays
	if settleDays == 0 {
		settleDays = cfg.Health.SettleDays
	}

	// The window ends before now so open PRs near the boundary have had time
	// to receive responses.
	end := time.Now().UTC().AddDate(0, 0, -settleDays)
	window := github.Window{Start: end.AddDate(0, -windowMonths, 0), End: end}

	logger, err := buildLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// The REST client treats an empty base URL as github.com; only a
	// non-default endpoint is an enterprise root.
	apiBase := cfg.GitHub.APIEndpoint
	if apiBase == "https://api.github.com" {
		apiBase = ""
	}
	teamClient, err := health.NewTeamClient(ctx, token, apiBase)
	if err != nil {
		return err
	}

	maintainers, err := health.FetchMaintainers(ctx, teamClient, org, slug)
	if err != nil {
		return err
	}
	logger.Info("fetched maintainer team",
		zap.String("team", team),
		zap.Int("members", len(maintainers)))

	client := github.NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint)
	collector := health.NewCollector(client, logger)

	prs, err := collector.Collect(ctx, owner, repo, window)
	if err != nil {
		return err
	}

	report := &health.Report{
		Repo:        owner + "/" + repo,
		Window:      window,
		Maintainers: maintainers.Logins(),
		Records:     health.Analyze(prs, maintainers),
	}

	format := opts.format
	if format == "" {
		format = cfg.Defaults.OutputFormat
	}
	if err := renderHealth(report, format, opts.outputFile); err != nil {
		return err
	}

	webhook := opts.slackWebhook
	if webhook == "" {
		webhook = cfg.Slack.WebhookURL
	}
	if webhook != "" {
		notifier := notify.NewSlackNotifier(webhook)
		if err := notifier.NotifyHealthReport(ctx, report); err != nil {
			return fmt.Errorf("failed to notify slack: %w", err)
		}
		logger.Info("posted health summary to slack")
	}

	return nil
}

func renderHealth(report *health.Report, format, outputFile string) error {
	switch format {
	case "console", "":
		output.NewConsole(os.Stdout).RenderHealthReport(report)
		return nil
	case "ndjson":
		writer, err := newRecordWriter(outputFile)
		if err != nil {
			return err
		}
		defer writer.Close()

		// One record per PR keeps the stream greppable; the summary line
		// comes last.
		for _, rec := range report.Records {
			if err := writer.Write(rec); err != nil {
				return err
			}
		}
		return writer.Write(report.Summarize())
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// parseRepository parses an owner/repo string into its components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// parseTeam parses an org/team-slug string into its components
func parseTeam(teamArg string) (org, slug string, err error) {
	if teamArg == "" {
		return "", "", fmt.Errorf("maintainer team not set. Use --team <org>/<team-slug> or configure health.team")
	}

	parts := strings.Split(teamArg, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("invalid team format. Expected: <org>/<team-slug>, got: %s", teamArg)
	}

	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
