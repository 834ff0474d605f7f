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
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rvagg/repo-health-metrics/internal/activity"
	"github.com/rvagg/repo-health-metrics/internal/config"
	"github.com/rvagg/repo-health-metrics/internal/github"
	"github.com/rvagg/repo-health-metrics/internal/output"
)

// newActivityCommand builds the activity subcommand
func newActivityCommand() *cobra.Command {
	var (
		token       string
		outputFile  string
		format      string
		since       string
		until       string
		concurrency int
		enrich      bool
	)

	cmd := &cobra.Command{
		Use:   "activity <login>",
		Short: "Aggregate a GitHub user's activity over a date window",
		Long: `Aggregate a single user's pull requests, reviews, issues and commit
counts over a date window. With --enrich, each pull request gains comment,
review, file and timeline detail, and each commit bucket gains the exact
commit list and repository metadata.

Dates are given as YYYY-MM-DD. The window includes its start and excludes
its end; --until defaults to now and --since to one month earlier.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivity(cmd.Context(), args[0], activityOptions{
				token:       token,
				outputFile:  outputFile,
				format:      format,
				since:       since,
				until:       until,
				concurrency: concurrency,
				enrich:      enrich,
			})
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: console or ndjson (default from config)")
	cmd.Flags().StringVar(&since, "since", "", "Window start date, inclusive (default: one month before --until)")
	cmd.Flags().StringVar(&until, "until", "", "Window end date, exclusive (default: now)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Enrichment worker count (default from config)")
	cmd.Flags().BoolVar(&enrich, "enrich", false, "Fetch per-item detail after aggregation")

	return cmd
}

type activityOptions struct {
	token       string
	outputFile  string
	format      string
	since       string
	until       string
	concurrency int
	enrich      bool
}

func runActivity(ctx context.Context, login string, opts activityOptions) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	token := cfg.Token(opts.token)
	if token == "" {
		return fmt.Errorf("GitHub token not found. Set GITHUB_TOKEN or use --token flag")
	}

	window, err := resolveWindow(opts.since, opts.until)
	if err != nil {
		return err
	}

	logger, err := buildLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	client := github.NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint)
	aggregator := activity.NewAggregator(client, logger)

	bundle, err := aggregator.Aggregate(ctx, login, window)
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = cfg.Defaults.OutputFormat
	}

	if !opts.enrich {
		return renderActivity(bundle, nil, nil, format, opts.outputFile)
	}

	concurrency := opts.concurrency
	if concurrency == 0 {
		concurrency = cfg.Defaults.Concurrency
	}

	enricher := activity.NewEnricher(client, concurrency, logger)

	// Progress goes to stderr so stdout stays parseable.
	bar := progressbar.NewOptions(activity.ItemCount(bundle),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(10),
		progressbar.OptionSetDescription("[cyan]Enriching activity[reset]"),
		progressbar.OptionSetWriter(os.Stderr),
	)
	enricher.OnItem = func() {
		_ = bar.Add(1)
	}

	enriched, report, err := enricher.Enrich(ctx, bundle)
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	return renderActivity(nil, enriched, report, format, opts.outputFile)
}

// renderActivity routes a plain or enriched bundle to the selected format.
// Exactly one of bundle and enriched is non-nil.
func renderActivity(bundle *activity.Bundle, enriched *activity.EnrichedBundle, report *activity.Report, format, outputFile string) error {
	switch format {
	case "console", "":
		console := output.NewConsole(os.Stdout)
		if enriched != nil {
			console.RenderEnrichedBundle(enriched, report)
		} else {
			console.RenderBundle(bundle)
		}
		return nil
	case "ndjson":
		writer, err := newRecordWriter(outputFile)
		if err != nil {
			return err
		}
		defer writer.Close()

		if enriched != nil {
			return writer.Write(enriched)
		}
		return writer.Write(bundle)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func newRecordWriter(outputFile string) (output.OutputWriter, error) {
	if outputFile == "" {
		return output.NewWriter(os.Stdout), nil
	}
	return output.NewFileWriter(outputFile)
}

// resolveWindow parses the --since/--until flags into a half-open window.
func resolveWindow(since, until string) (github.Window, error) {
	end := time.Now().UTC()
	if until != "" {
		t, err := time.Parse("2006-01-02", until)
		if err != nil {
			return github.Window{}, fmt.Errorf("invalid --until date %q: expected YYYY-MM-DD", until)
		}
		end = t
	}

	start := end.AddDate(0, -1, 0)
	if since != "" {
		t, err := time.Parse("2006-01-02", since)
		if err != nil {
			return github.Window{}, fmt.Errorf("invalid --since date %q: expected YYYY-MM-DD", since)
		}
		start = t
	}

	if !start.Before(end) {
		return github.Window{}, fmt.Errorf("window start %s is not before end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return github.Window{Start: start, End: end}, nil
}
