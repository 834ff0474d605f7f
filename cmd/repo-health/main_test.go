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
	"fmt"
	"os"
	"testing"
	"time"

	rherrors "github.com/rvagg/repo-health-metrics/internal/errors"
)

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{
			name:     "nil error",
			err:      nil,
			wantCode: 0,
		},
		{
			name:     "general error",
			err:      os.ErrClosed,
			wantCode: 1,
		},
		{
			name:     "invalid token",
			err:      fmt.Errorf("fetch: %w", rherrors.ErrInvalidToken),
			wantCode: 2,
		},
		{
			name:     "query rejection",
			err:      fmt.Errorf("fetch: %w", rherrors.ErrQuery),
			wantCode: 2,
		},
		{
			name:     "not found",
			err:      fmt.Errorf("fetch: %w", rherrors.ErrNotFound),
			wantCode: 2,
		},
		{
			name:     "transport failure",
			err:      fmt.Errorf("fetch: %w", rherrors.ErrTransport),
			wantCode: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapErrorToExitCode(tt.err)
			if got != tt.wantCode {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.wantCode)
			}
		})
	}
}

func TestParseRepository(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{name: "valid", input: "octo/widgets", wantOwner: "octo", wantRepo: "widgets"},
		{name: "whitespace trimmed", input: " octo / widgets ", wantOwner: "octo", wantRepo: "widgets"},
		{name: "missing slash", input: "octowidgets", wantErr: true},
		{name: "too many parts", input: "a/b/c", wantErr: true},
		{name: "empty owner", input: "/widgets", wantErr: true},
		{name: "empty repo", input: "octo/", wantErr: true},
		{name: "empty input", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := parseRepository(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseRepository(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRepository(%q) failed: %v", tt.input, err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("parseRepository(%q) = %q/%q, want %q/%q",
					tt.input, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestParseTeam(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOrg  string
		wantSlug string
		wantErr  bool
	}{
		{name: "valid", input: "octo/maintainers", wantOrg: "octo", wantSlug: "maintainers"},
		{name: "unset", input: "", wantErr: true},
		{name: "no slash", input: "maintainers", wantErr: true},
		{name: "empty slug", input: "octo/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org, slug, err := parseTeam(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseTeam(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTeam(%q) failed: %v", tt.input, err)
			}
			if org != tt.wantOrg || slug != tt.wantSlug {
				t.Errorf("parseTeam(%q) = %q/%q, want %q/%q",
					tt.input, org, slug, tt.wantOrg, tt.wantSlug)
			}
		})
	}
}

func TestResolveWindow(t *testing.T) {
	t.Run("explicit dates", func(t *testing.T) {
		window, err := resolveWindow("2025-06-01", "2025-07-01")
		if err != nil {
			t.Fatalf("resolveWindow failed: %v", err)
		}
		if !window.Start.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Start = %s, want 2025-06-01", window.Start)
		}
		if !window.End.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("End = %s, want 2025-07-01", window.End)
		}
	})

	t.Run("defaults to one month ending now", func(t *testing.T) {
		window, err := resolveWindow("", "")
		if err != nil {
			t.Fatalf("resolveWindow failed: %v", err)
		}
		if time.Since(window.End) > time.Minute {
			t.Errorf("default End = %s, want approximately now", window.End)
		}
		if !window.Start.Equal(window.End.AddDate(0, -1, 0)) {
			t.Errorf("default Start = %s, want one month before End", window.Start)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		if _, err := resolveWindow("June 1st", ""); err == nil {
			t.Fatal("expected error for unparseable date")
		}
	})

	t.Run("inverted window", func(t *testing.T) {
		if _, err := resolveWindow("2025-07-01", "2025-06-01"); err == nil {
			t.Fatal("expected error for start after end")
		}
	})
}
