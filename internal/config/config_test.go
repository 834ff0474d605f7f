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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.GraphQLEndpoint != "https://api.github.com/graphql" {
		t.Errorf("GraphQLEndpoint = %q, want the github.com default", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GITHUB_TOKEN" {
		t.Errorf("TokenEnv = %q, want GITHUB_TOKEN", cfg.GitHub.TokenEnv)
	}
	if cfg.Defaults.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", cfg.Defaults.Concurrency)
	}
	if cfg.Health.WindowMonths != 3 || cfg.Health.SettleDays != 7 {
		t.Errorf("health defaults = %d months / %d settle days, want 3/7",
			cfg.Health.WindowMonths, cfg.Health.SettleDays)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
github:
  graphql_endpoint: https://ghe.example.com/api/graphql
defaults:
  concurrency: 4
  output_format: ndjson
health:
  team: octo/maintainers
  window_months: 6
slack:
  webhook_url: https://hooks.slack.com/services/T/B/X
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.GraphQLEndpoint != "https://ghe.example.com/api/graphql" {
		t.Errorf("GraphQLEndpoint = %q, want the file value", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.Defaults.Concurrency != 4 || cfg.Defaults.OutputFormat != "ndjson" {
		t.Errorf("defaults = %+v, want file overrides applied", cfg.Defaults)
	}
	if cfg.Health.Team != "octo/maintainers" || cfg.Health.WindowMonths != 6 {
		t.Errorf("health = %+v, want file overrides applied", cfg.Health)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Health.SettleDays != 7 {
		t.Errorf("SettleDays = %d, want default 7", cfg.Health.SettleDays)
	}
	if cfg.Slack.WebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("WebhookURL = %q, want the file value", cfg.Slack.WebhookURL)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "github: [not: a: mapping")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
defaults:
  concurrency: 4
health:
  team: octo/from-file
`)

	t.Setenv("REPO_HEALTH_CONCURRENCY", "16")
	t.Setenv("REPO_HEALTH_TEAM", "octo/from-env")
	t.Setenv("REPO_HEALTH_SLACK_WEBHOOK", "https://hooks.slack.com/services/env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Defaults.Concurrency != 16 {
		t.Errorf("Concurrency = %d, want env override 16", cfg.Defaults.Concurrency)
	}
	if cfg.Health.Team != "octo/from-env" {
		t.Errorf("Team = %q, want env override", cfg.Health.Team)
	}
	if cfg.Slack.WebhookURL != "https://hooks.slack.com/services/env" {
		t.Errorf("WebhookURL = %q, want env override", cfg.Slack.WebhookURL)
	}
}

func TestLoadConfig_InvalidEnvConcurrencyIgnored(t *testing.T) {
	t.Setenv("REPO_HEALTH_CONCURRENCY", "not-a-number")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Defaults.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want default 8 when env value is invalid", cfg.Defaults.Concurrency)
	}
}

func TestToken(t *testing.T) {
	tests := []struct {
		name      string
		flagToken string
		tokenEnv  string
		envValue  string
		want      string
	}{
		{
			name:      "flag wins over env",
			flagToken: "flag-token",
			tokenEnv:  "GITHUB_TOKEN",
			envValue:  "env-token",
			want:      "flag-token",
		},
		{
			name:     "env fallback",
			tokenEnv: "GITHUB_TOKEN",
			envValue: "env-token",
			want:     "env-token",
		},
		{
			name:     "custom env var",
			tokenEnv: "MY_GH_TOKEN",
			envValue: "custom-token",
			want:     "custom-token",
		},
		{
			name:     "nothing set",
			tokenEnv: "GITHUB_TOKEN",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(tt.tokenEnv, tt.envValue)
			} else {
				t.Setenv(tt.tokenEnv, "")
			}

			cfg := DefaultConfig()
			cfg.GitHub.TokenEnv = tt.tokenEnv

			if got := cfg.Token(tt.flagToken); got != tt.want {
				t.Errorf("Token(%q) = %q, want %q", tt.flagToken, got, tt.want)
			}
		})
	}
}
