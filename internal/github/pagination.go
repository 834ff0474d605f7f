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

import "context"

// PageInfo carries cursor pagination state as reported by the API.
type PageInfo struct {
	HasNextPage bool
	EndCursor   string
}

// Page is one page of a cursor-paginated collection.
type Page[T any] struct {
	Nodes    []T
	PageInfo PageInfo
}

// PageFunc fetches one page of a collection. A nil cursor requests the first
// page; subsequent calls pass the previous page's end cursor.
type PageFunc[T any] func(ctx context.Context, cursor *string) (Page[T], error)

// CollectAll drives fetch to exhaustion and returns the concatenation of all
// pages in arrival order. Each page's cursor depends on the prior page's
// response, so the loop is strictly sequential. Nodes are never reordered or
// deduplicated.
func CollectAll[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	return CollectUntil(ctx, fetch, nil)
}

// CollectUntil is CollectAll with an early-exit hook: after each page is
// appended, stop is consulted and a true return ends the loop without
// requesting further pages. This is only valid when the collection is known
// to be ordered such that later pages cannot contain wanted items, e.g. the
// newest-first pull request listing. A nil stop paginates to exhaustion.
func CollectUntil[T any](ctx context.Context, fetch PageFunc[T], stop func(Page[T]) bool) ([]T, error) {
	var (
		items  []T
		cursor *string
	)
	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Nodes...)
		if !page.PageInfo.HasNextPage {
			return items, nil
		}
		if stop != nil && stop(page) {
			return items, nil
		}
		end := page.PageInfo.EndCursor
		cursor = &end
	}
}
