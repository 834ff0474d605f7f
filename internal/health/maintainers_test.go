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
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	metricserrors "github.com/rvagg/repo-health-metrics/internal/errors"
)

func teamServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestFetchMaintainers(t *testing.T) {
	server := teamServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/orgs/octo/teams/maintainers/members" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"login":"alice"},{"login":"bob"}]`)
	})

	client, err := NewTeamClient(context.Background(), "test-token", server.URL)
	if err != nil {
		t.Fatalf("NewTeamClient failed: %v", err)
	}

	set, err := FetchMaintainers(context.Background(), client, "octo", "maintainers")
	if err != nil {
		t.Fatalf("FetchMaintainers failed: %v", err)
	}

	if len(set) != 2 || !set.Contains("alice") || !set.Contains("bob") {
		t.Errorf("maintainer set = %v, want alice and bob", set.Logins())
	}
	if set.Contains("mallory") {
		t.Error("Contains reported a non-member")
	}
}

func TestFetchMaintainers_Paginated(t *testing.T) {
	server := teamServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"login":"carol"}]`)
			return
		}
		w.Header().Set("Link",
			fmt.Sprintf(`<http://%s%s?page=2>; rel="next"`, r.Host, r.URL.Path))
		fmt.Fprint(w, `[{"login":"alice"},{"login":"bob"}]`)
	})

	client, err := NewTeamClient(context.Background(), "test-token", server.URL)
	if err != nil {
		t.Fatalf("NewTeamClient failed: %v", err)
	}

	set, err := FetchMaintainers(context.Background(), client, "octo", "maintainers")
	if err != nil {
		t.Fatalf("FetchMaintainers failed: %v", err)
	}
	if len(set) != 3 {
		t.Errorf("maintainer set = %v, want three members across pages", set.Logins())
	}
}

func TestFetchMaintainers_NotFound(t *testing.T) {
	server := teamServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})

	client, err := NewTeamClient(context.Background(), "test-token", server.URL)
	if err != nil {
		t.Fatalf("NewTeamClient failed: %v", err)
	}

	_, err = FetchMaintainers(context.Background(), client, "octo", "ghost-team")
	if !errors.Is(err, metricserrors.ErrNotFound) {
		t.Fatalf("FetchMaintainers error = %v, want ErrNotFound", err)
	}
}
