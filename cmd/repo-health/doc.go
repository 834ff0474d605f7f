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

// Package main implements the repo-health command-line tool.
//
// The CLI measures GitHub activity through two subcommands:
//   - activity: aggregate one user's pull requests, reviews, issues and
//     commits over a date window, optionally enriched with per-item detail
//   - health: derive per-pull-request response and resolution times for a
//     repository against its maintainer team, optionally posting a summary
//     to Slack
//
// Output is a colorized console summary or NDJSON for machine consumers.
// Errors map to exit codes: 2 for authentication, query and not-found
// failures, 3 for network failures, 1 otherwise.
//
// Usage:
//
//	repo-health activity <login> [flags]
//	repo-health health <owner>/<repo> [flags]
//
// Example:
//
//	repo-health activity rvagg --enrich --format ndjson
//	repo-health health filecoin-project/lotus --team filecoin-project/lotus-maintainers
package main
