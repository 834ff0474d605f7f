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
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shurcooL/graphql"

	metricserrors "github.com/rvagg/repo-health-metrics/internal/errors"
)

// Page size for paginated queries. GitHub caps connections at 100 nodes.
const pageSize = 100

// GraphQLClient implements the Client interface against GitHub's GraphQL
// API. It fails fast: transport and GraphQL-level errors are classified and
// propagated, never retried.
type GraphQLClient struct {
	client *graphql.Client
	token  string
}

// NewGraphQLClient creates a new GitHub GraphQL client with the provided
// token and endpoint. The client is configured with:
//   - Authentication via the provided token
//   - Custom GraphQL endpoint URL (e.g., for GitHub Enterprise)
//   - Response size limiting to prevent memory issues
//   - User-Agent header for API compliance
//   - Optimized connection pooling for API performance
func NewGraphQLClient(token, endpoint string) *GraphQLClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  transport,
		},
	}

	return &GraphQLClient{
		client: graphql.NewClient(endpoint, httpClient),
		token:  token,
	}
}

// query executes a GraphQL query and classifies any failure.
func (c *GraphQLClient) query(ctx context.Context, q interface{}, variables map[string]interface{}, what string) error {
	if err := c.client.Query(ctx, q, variables); err != nil {
		return c.mapError(err, what)
	}
	return nil
}

// mapError maps client errors onto the sentinel taxonomy. Non-success HTTP
// statuses and connection failures become ErrTransport; everything the
// server reported through the GraphQL error list becomes ErrQuery, except
// for the auth and not-found messages which get their own sentinels.
func (c *GraphQLClient) mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	// Context cancellation is not an API failure; pass it through.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "401") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "bad credentials"):
		return fmt.Errorf("%s: authentication failed, provide a valid token: %w", what, metricserrors.ErrInvalidToken)

	case strings.Contains(msg, "non-200 ok status code") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "dial tcp") ||
		strings.Contains(msg, "tls handshake") ||
		strings.Contains(msg, "network is unreachable"):
		return fmt.Errorf("%s: %v: %w", what, err, metricserrors.ErrTransport)

	case strings.Contains(msg, "could not resolve") ||
		strings.Contains(msg, "not found"):
		return fmt.Errorf("%s: %v: %w", what, err, metricserrors.ErrNotFound)
	}

	// The graphql client surfaces the first message from the response's
	// error list; carry it verbatim.
	return fmt.Errorf("%s: %v: %w", what, err, metricserrors.ErrQuery)
}
