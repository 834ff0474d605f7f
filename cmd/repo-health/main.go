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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	rherrors "github.com/rvagg/repo-health-metrics/internal/errors"
	"github.com/rvagg/repo-health-metrics/pkg/version"
)

var (
	configPath string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "repo-health",
		Short: "Measure GitHub contributor activity and repository responsiveness",
		Long: `repo-health collects GitHub activity and repository health metrics via
the GraphQL API. The activity command aggregates a single user's pull
requests, reviews, issues and commits over a date window; the health
command derives per-pull-request response and resolution times for a
repository against its maintainer team.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: .repo-health.yaml, ~/.repo-health/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(newActivityCommand())
	rootCmd.AddCommand(newHealthCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// buildLogger constructs the process logger. Logs go to stderr so that
// NDJSON output on stdout stays clean.
func buildLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, rherrors.ErrInvalidToken) ||
		errors.Is(err, rherrors.ErrQuery) ||
		errors.Is(err, rherrors.ErrNotFound) {
		return 2 // Authentication/query errors
	}

	if errors.Is(err, rherrors.ErrTransport) {
		return 3 // Network errors
	}

	return 1 // General error
}
