package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCache_ReadThrough(t *testing.T) {
	c := New()
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"101", "102"}, nil
	}

	first, err := Get(ctx, c, Rooms, "all", load)
	require.NoError(t, err)
	second, err := Get(ctx, c, Rooms, "all", load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.Len(Rooms))
}

func TestQueryCache_InvalidateDropsOnlyTaggedCollections(t *testing.T) {
	c := New()
	ctx := context.Background()
	roomLoads, bookingLoads := 0, 0

	loadRooms := func(context.Context) (int, error) { roomLoads++; return roomLoads, nil }
	loadBookings := func(context.Context) (int, error) { bookingLoads++; return bookingLoads, nil }

	_, _ = Get(ctx, c, Rooms, "all", loadRooms)
	_, _ = Get(ctx, c, Bookings, "all", loadBookings)

	c.Invalidate(Rooms)

	rooms, err := Get(ctx, c, Rooms, "all", loadRooms)
	require.NoError(t, err)
	bookings, err := Get(ctx, c, Bookings, "all", loadBookings)
	require.NoError(t, err)

	assert.Equal(t, 2, rooms)
	assert.Equal(t, 1, bookings)
}

func TestQueryCache_ReadAfterInvalidateDoesNotJoinOlderLoad(t *testing.T) {
	c := New()
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string, 1)
	go func() {
		v, _ := Get(ctx, c, Rooms, "all", func(context.Context) (string, error) {
			close(started)
			<-release
			return "before-write", nil
		})
		done <- v
	}()
	<-started

	c.Invalidate(Rooms)

	v, err := Get(ctx, c, Rooms, "all", func(context.Context) (string, error) { return "after-write", nil })
	require.NoError(t, err)
	assert.Equal(t, "after-write", v)

	close(release)
	assert.Equal(t, "before-write", <-done)

	cached, err := Get(ctx, c, Rooms, "all", func(context.Context) (string, error) { return "reloaded", nil })
	require.NoError(t, err)
	assert.Equal(t, "after-write", cached)
}

func TestQueryCache_CancelledCallerDoesNotFailWaiters(t *testing.T) {
	c := New()
	started := make(chan struct{})
	release := make(chan struct{})
	var loadErr error
	load := func(ctx context.Context) (int, error) {
		close(started)
		<-release
		loadErr = ctx.Err()
		return 42, nil
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := Get(firstCtx, c, Bookings, "all", load)
		firstErr <- err
	}()
	<-started

	type result struct {
		v   int
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := Get(context.Background(), c, Bookings, "all", func(context.Context) (int, error) { return -1, nil })
		second <- result{v, err}
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, 42, res.v)
	assert.NoError(t, loadErr)
	assert.Equal(t, 1, c.Len(Bookings))
}

func TestQueryCache_LoadErrorIsNotCached(t *testing.T) {
	c := New()
	ctx := context.Background()
	boom := errors.New("store unavailable")

	_, err := Get(ctx, c, Transactions, "all", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len(Transactions))

	v, err := Get(ctx, c, Transactions, "all", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestNoop_AlwaysLoads(t *testing.T) {
	calls := 0
	load := func(context.Context) (int, error) { calls++; return calls, nil }

	_, _ = Get[int](context.Background(), Noop{}, Rooms, "all", load)
	v, err := Get[int](context.Background(), Noop{}, Rooms, "all", load)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
