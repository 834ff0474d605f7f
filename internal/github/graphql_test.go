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

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	metricserrors "github.com/rvagg/repo-health-metrics/internal/errors"
)

// graphqlServer starts a test server that responds with the given body and
// records the last request it saw.
func graphqlServer(t *testing.T, status int, body string) (*GraphQLClient, *http.Request, *[]byte) {
	t.Helper()
	var (
		lastReq  http.Request
		lastBody []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastReq = *r
		lastBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	client := NewGraphQLClient("test-token", server.URL)
	return client, &lastReq, &lastBody
}

func TestAuthTransportHeaders(t *testing.T) {
	client, req, _ := graphqlServer(t, http.StatusOK,
		`{"data":{"user":{"id":"U_abc123"}}}`)

	id, err := client.ResolveUserID(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("ResolveUserID failed: %v", err)
	}
	if id != "U_abc123" {
		t.Errorf("ResolveUserID = %q, want %q", id, "U_abc123")
	}

	if got := req.Header.Get("Authorization"); got != "Bearer test-token" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer test-token")
	}
	if got := req.Header.Get("X-Github-Next-Global-ID"); got != "1" {
		t.Errorf("X-Github-Next-Global-ID = %q, want %q", got, "1")
	}
	if got := req.Header.Get("User-Agent"); !strings.HasPrefix(got, "repo-health-metrics/") {
		t.Errorf("User-Agent = %q, want repo-health-metrics/<version>", got)
	}
}

func TestResolveUserID_NotFound(t *testing.T) {
	client, _, _ := graphqlServer(t, http.StatusOK, `{"data":{"user":null}}`)

	_, err := client.ResolveUserID(context.Background(), "ghost")
	if !errors.Is(err, metricserrors.ErrNotFound) {
		t.Fatalf("ResolveUserID error = %v, want ErrNotFound", err)
	}
}

func TestFetchRepoMetadata(t *testing.T) {
	client, _, _ := graphqlServer(t, http.StatusOK, `{"data":{"repository":{
		"nameWithOwner":"octo/widgets",
		"description":"A widget factory",
		"repositoryTopics":{"nodes":[
			{"topic":{"name":"widgets"}},
			{"topic":{"name":"golang"}}
		]}
	}}}`)

	repo, err := client.FetchRepoMetadata(context.Background(), "octo", "widgets")
	if err != nil {
		t.Fatalf("FetchRepoMetadata failed: %v", err)
	}
	if repo.NameWithOwner != "octo/widgets" {
		t.Errorf("NameWithOwner = %q, want %q", repo.NameWithOwner, "octo/widgets")
	}
	if repo.Description != "A widget factory" {
		t.Errorf("Description = %q, want %q", repo.Description, "A widget factory")
	}
	if len(repo.Topics) != 2 || repo.Topics[0] != "widgets" || repo.Topics[1] != "golang" {
		t.Errorf("Topics = %v, want [widgets golang]", repo.Topics)
	}
}

func TestFetchPullRequestContributions(t *testing.T) {
	client, _, reqBody := graphqlServer(t, http.StatusOK, `{"data":{"user":{
		"contributionsCollection":{"pullRequestContributions":{
			"pageInfo":{"hasNextPage":true,"endCursor":"abc"},
			"nodes":[{"pullRequest":{
				"number":42,
				"title":"Fix the flange",
				"repository":{"nameWithOwner":"octo/widgets"},
				"author":{"login":"octocat"},
				"createdAt":"2025-06-01T10:00:00Z",
				"updatedAt":"2025-06-05T12:00:00Z",
				"mergedAt":"2025-06-05T12:00:00Z",
				"closedAt":null,
				"isDraft":false,
				"state":"MERGED",
				"additions":120,
				"deletions":30,
				"comments":{"totalCount":3},
				"reviews":{"totalCount":2},
				"body":"flange was broken"
			}}]
		}}
	}}}`)

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	cursor := "prev"

	page, err := client.FetchPullRequestContributions(context.Background(), "octocat", from, to, &cursor)
	if err != nil {
		t.Fatalf("FetchPullRequestContributions failed: %v", err)
	}

	if !page.PageInfo.HasNextPage || page.PageInfo.EndCursor != "abc" {
		t.Errorf("PageInfo = %+v, want hasNextPage=true endCursor=abc", page.PageInfo)
	}
	if len(page.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(page.Nodes))
	}

	pr := page.Nodes[0]
	if pr.Number != 42 || pr.Repo != "octo/widgets" || pr.Author != "octocat" {
		t.Errorf("unexpected identity fields: %+v", pr)
	}
	if pr.State != "MERGED" || pr.MergedAt == nil || pr.ClosedAt != nil {
		t.Errorf("unexpected state fields: %+v", pr)
	}
	if pr.Additions != 120 || pr.Deletions != 30 || pr.CommentCount != 3 || pr.ReviewCount != 2 {
		t.Errorf("unexpected count fields: %+v", pr)
	}

	// The request must pass window and cursor variables through.
	var sent struct {
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.Unmarshal(*reqBody, &sent); err != nil {
		t.Fatalf("failed to parse request body: %v", err)
	}
	if got := sent.Variables["cursor"]; got != "prev" {
		t.Errorf("cursor variable = %v, want %q", got, "prev")
	}
	if got := sent.Variables["from"]; got != "2025-05-01T00:00:00Z" {
		t.Errorf("from variable = %v, want RFC3339 window start", got)
	}
}

func TestMapError(t *testing.T) {
	client := NewGraphQLClient("t", "http://unused.invalid")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "unauthorized status",
			err:  errors.New(`non-200 OK status code: 401 Unauthorized body: "{\"message\":\"Bad credentials\"}"`),
			want: metricserrors.ErrInvalidToken,
		},
		{
			name: "bad credentials message",
			err:  errors.New("bad credentials"),
			want: metricserrors.ErrInvalidToken,
		},
		{
			name: "server error status",
			err:  errors.New(`non-200 OK status code: 502 Bad Gateway body: ""`),
			want: metricserrors.ErrTransport,
		},
		{
			name: "connection refused",
			err:  errors.New("Post \"https://api.github.com/graphql\": dial tcp: connection refused"),
			want: metricserrors.ErrTransport,
		},
		{
			name: "unknown host",
			err:  errors.New("Post \"https://api.github.invalid/graphql\": dial tcp: lookup api.github.invalid: no such host"),
			want: metricserrors.ErrTransport,
		},
		{
			name: "unresolvable object",
			err:  errors.New("Could not resolve to a User with the login of 'ghost'."),
			want: metricserrors.ErrNotFound,
		},
		{
			name: "query rejection",
			err:  errors.New("Field 'bogus' doesn't exist on type 'Query'"),
			want: metricserrors.ErrQuery,
		},
		{
			name: "context cancellation passes through",
			err:  fmt.Errorf("Post failed: %w", context.Canceled),
			want: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := client.mapError(tt.err, "test op")
			if !errors.Is(got, tt.want) {
				t.Errorf("mapError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestQueryErrorCarriesMessage(t *testing.T) {
	client, _, _ := graphqlServer(t, http.StatusOK,
		`{"errors":[{"message":"Something went wrong while executing your query."}]}`)

	_, err := client.ResolveUserID(context.Background(), "octocat")
	if !errors.Is(err, metricserrors.ErrQuery) {
		t.Fatalf("error = %v, want ErrQuery", err)
	}
	if !strings.Contains(err.Error(), "Something went wrong") {
		t.Errorf("error %q should carry the server's message", err)
	}
}

func TestLimitedReader(t *testing.T) {
	lr := &limitedReader{
		ReadCloser: io.NopCloser(strings.NewReader(strings.Repeat("x", 100))),
		limit:      10,
	}

	buf := make([]byte, 64)
	n, err := lr.Read(buf)
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if n != 10 {
		t.Errorf("first read returned %d bytes, want 10", n)
	}

	if _, err := lr.Read(buf); err == nil {
		t.Error("read past the limit should fail")
	}
}
