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

// Package config provides configuration management with a well-defined
// precedence order: command-line flags, then environment variables, then
// the configuration file, then built-in defaults.
package config

// Config represents the complete configuration for a run.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Health   HealthConfig   `yaml:"health"`
	Slack    SlackConfig    `yaml:"slack"`
}

// GitHubConfig contains API endpoints and authentication settings. Custom
// endpoints support GitHub Enterprise deployments.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// DefaultsConfig contains settings that apply to all runs unless overridden
// by command-line flags.
type DefaultsConfig struct {
	Concurrency  int    `yaml:"concurrency"`
	OutputFormat string `yaml:"output_format"`
}

// HealthConfig controls the repository-health analysis: the maintainer team
// in "org/slug" form, the window length, and how many days before now the
// window ends so recent pull requests have had a chance to draw responses.
type HealthConfig struct {
	Team         string `yaml:"team"`
	WindowMonths int    `yaml:"window_months"`
	SettleDays   int    `yaml:"settle_days"`
}

// SlackConfig configures the optional Slack notification.
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// DefaultConfig returns a Config with defaults suitable for public
// github.com usage.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com",
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			Concurrency:  8,
			OutputFormat: "console",
		},
		Health: HealthConfig{
			WindowMonths: 3,
			SettleDays:   7,
		},
	}
}
