package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-console/cache"
	"hotel-console/store"
)

// cachedList reads a collection through the query cache. Callers get their
// own copy of the cached slice.
func cachedList[T any](ctx context.Context, c cache.Reader, tag cache.Tag, coll store.Collection[T], opts store.ListOptions) ([]T, error) {
	key := fmt.Sprintf("order=%s|limit=%d|filters=%v", opts.Order, opts.Limit, opts.Filters)
	list, err := cache.Get(ctx, c, tag, key, func(ctx context.Context) ([]T, error) {
		return coll.List(ctx, opts)
	})
	if err != nil {
		return nil, err
	}
	return append(make([]T, 0, len(list)), list...), nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
