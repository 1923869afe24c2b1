package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-console/cache"
	"hotel-console/models"
	"hotel-console/store"
)

type RoomInput struct {
	RoomNumber    string            `json:"room_number"`
	RoomType      models.RoomType   `json:"room_type"`
	PricePerNight *decimal.Decimal  `json:"price_per_night"`
	Floor         *int              `json:"floor"`
	Status        models.RoomStatus `json:"status"`
}

type RoomChanges struct {
	RoomNumber    *string            `json:"room_number"`
	RoomType      *models.RoomType   `json:"room_type"`
	PricePerNight *decimal.Decimal   `json:"price_per_night"`
	Floor         *int               `json:"floor"`
	Status        *models.RoomStatus `json:"status"`
}

type RoomFilter struct {
	Search string
	Status models.RoomStatus
}

type RoomService struct {
	Store  *store.Store
	Cache  cache.Reader
	Logger *logrus.Logger
}

func NewRoomService(st *store.Store, c cache.Reader, logger *logrus.Logger) *RoomService {
	return &RoomService{Store: st, Cache: c, Logger: logger}
}

func (s *RoomService) List(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	rooms, err := cachedList(ctx, s.Cache, cache.Rooms, s.Store.Rooms, store.ListOptions{Order: "room_number"})
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	out := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if f.Search != "" && !containsFold(r.RoomNumber, f.Search) {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (models.Room, error) {
	return s.Store.Rooms.Get(ctx, id)
}

func (s *RoomService) Create(ctx context.Context, in RoomInput) (*models.Room, error) {
	room := models.Room{
		RoomNumber: strings.TrimSpace(in.RoomNumber),
		RoomType:   in.RoomType,
		Floor:      in.Floor,
		Status:     in.Status,
	}
	if room.RoomNumber == "" {
		return nil, invalid("room_number is required")
	}
	if room.RoomType == "" {
		room.RoomType = models.RoomTypeStandard
	}
	if !room.RoomType.Valid() {
		return nil, invalid("unknown room_type %q", room.RoomType)
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if !room.Status.Valid() {
		return nil, invalid("unknown room status %q", room.Status)
	}
	if in.PricePerNight == nil {
		return nil, invalid("price_per_night is required")
	}
	if in.PricePerNight.IsNegative() {
		return nil, invalid("price_per_night must not be negative")
	}
	room.PricePerNight = *in.PricePerNight

	if err := s.Store.Rooms.Create(ctx, &room); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("room number %q already exists: %w", room.RoomNumber, err)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	s.Cache.Invalidate(cache.Rooms)

	s.Logger.WithFields(logrus.Fields{"room_id": room.ID, "room_number": room.RoomNumber}).Info("room created")
	return &room, nil
}

func (s *RoomService) Update(ctx context.Context, id uint, ch RoomChanges) (models.Room, error) {
	fields := map[string]any{}
	if ch.RoomNumber != nil {
		num := strings.TrimSpace(*ch.RoomNumber)
		if num == "" {
			return models.Room{}, invalid("room_number must not be empty")
		}
		fields["room_number"] = num
	}
	if ch.RoomType != nil {
		if !ch.RoomType.Valid() {
			return models.Room{}, invalid("unknown room_type %q", *ch.RoomType)
		}
		fields["room_type"] = *ch.RoomType
	}
	if ch.PricePerNight != nil {
		if ch.PricePerNight.IsNegative() {
			return models.Room{}, invalid("price_per_night must not be negative")
		}
		fields["price_per_night"] = *ch.PricePerNight
	}
	if ch.Floor != nil {
		fields["floor"] = *ch.Floor
	}
	if ch.Status != nil {
		if !ch.Status.Valid() {
			return models.Room{}, invalid("unknown room status %q", *ch.Status)
		}
		fields["status"] = *ch.Status
	}

	if err := s.Store.Rooms.Update(ctx, id, fields); err != nil {
		return models.Room{}, fmt.Errorf("failed to update room %d: %w", id, err)
	}
	s.Cache.Invalidate(cache.Rooms)
	return s.Store.Rooms.Get(ctx, id)
}

func (s *RoomService) Delete(ctx context.Context, id uint) error {
	if err := s.Store.Rooms.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, err)
	}
	s.Cache.Invalidate(cache.Rooms)
	s.Logger.WithField("room_id", id).Info("room deleted")
	return nil
}
