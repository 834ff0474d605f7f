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
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from configPath if provided, otherwise
// searches standard locations:
//   - .repo-health.yaml (current directory)
//   - .repo-health.yml (current directory)
//   - ~/.repo-health/config.yaml
//
// Environment variables are applied after the file, allowing runtime
// overrides. A missing file in the standard locations is not an error; a
// missing explicit configPath is.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".repo-health.yaml",
			".repo-health.yml",
			filepath.Join(os.Getenv("HOME"), ".repo-health", "config.yaml"),
		}
		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies REPO_HEALTH_* environment variables on top of
// file and default values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REPO_HEALTH_GRAPHQL_ENDPOINT"); v != "" {
		cfg.GitHub.GraphQLEndpoint = v
	}
	if v := os.Getenv("REPO_HEALTH_API_ENDPOINT"); v != "" {
		cfg.GitHub.APIEndpoint = v
	}
	if v := os.Getenv("REPO_HEALTH_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Defaults.Concurrency = n
		}
	}
	if v := os.Getenv("REPO_HEALTH_TEAM"); v != "" {
		cfg.Health.Team = v
	}
	if v := os.Getenv("REPO_HEALTH_SLACK_WEBHOOK"); v != "" {
		cfg.Slack.WebhookURL = v
	}
}

// Token resolves the API credential from the configured environment
// variable, preferring an explicit flag value. Core logic never reads
// ambient environment state; the credential is resolved once here at the
// process boundary and injected.
func (c *Config) Token(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	env := c.GitHub.TokenEnv
	if env == "" {
		env = "GITHUB_TOKEN"
	}
	return os.Getenv(env)
}
