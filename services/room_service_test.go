package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-console/cache"
	"hotel-console/models"
	"hotel-console/store"
)

func TestRoomService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	log, hook := newTestLogger()
	svc := NewRoomService(st, cache.New(), log)

	price := decimal.RequireFromString("288.00")
	room, err := svc.Create(ctx, RoomInput{RoomNumber: " 305 ", PricePerNight: &price, Floor: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, "305", room.RoomNumber)
	assert.Equal(t, models.RoomTypeStandard, room.RoomType)
	assert.Equal(t, models.RoomAvailable, room.Status)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "room created", hook.LastEntry().Message)

	t.Run("Duplicate number", func(t *testing.T) {
		_, err := svc.Create(ctx, RoomInput{RoomNumber: "305", PricePerNight: &price})
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("Validation", func(t *testing.T) {
		negative := decimal.NewFromInt(-5)
		inputs := map[string]RoomInput{
			"no number":      {PricePerNight: &price},
			"no price":       {RoomNumber: "401"},
			"negative price": {RoomNumber: "401", PricePerNight: &negative},
			"bad type":       {RoomNumber: "401", PricePerNight: &price, RoomType: "penthouse"},
			"bad status":     {RoomNumber: "401", PricePerNight: &price, Status: "dirty"},
		}
		for name, in := range inputs {
			_, err := svc.Create(ctx, in)
			assert.ErrorIs(t, err, ErrValidation, name)
		}
	})

	t.Run("Update and filter", func(t *testing.T) {
		_, err := svc.Create(ctx, RoomInput{RoomNumber: "306", PricePerNight: &price})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, room.ID, RoomChanges{Status: ptr(models.RoomMaintenance), RoomType: ptr(models.RoomTypeSuite)})
		require.NoError(t, err)
		assert.Equal(t, models.RoomMaintenance, updated.Status)
		assert.Equal(t, models.RoomTypeSuite, updated.RoomType)

		all, err := svc.List(ctx, RoomFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "305", all[0].RoomNumber)

		maintenance, err := svc.List(ctx, RoomFilter{Status: models.RoomMaintenance})
		require.NoError(t, err)
		assert.Len(t, maintenance, 1)

		search, err := svc.List(ctx, RoomFilter{Search: "06"})
		require.NoError(t, err)
		require.Len(t, search, 1)
		assert.Equal(t, "306", search[0].RoomNumber)

		_, err = svc.Update(ctx, room.ID, RoomChanges{RoomNumber: ptr("306")})
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, room.ID))
		assert.ErrorIs(t, svc.Delete(ctx, room.ID), store.ErrNotFound)
		_, err := svc.Update(ctx, room.ID, RoomChanges{Floor: ptr(4)})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
