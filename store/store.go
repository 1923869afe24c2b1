package store

import (
	"gorm.io/gorm"

	"hotel-console/models"
)

// Store bundles the collections of every entity type.
type Store struct {
	Rooms        Collection[models.Room]
	Bookings     Collection[models.Booking]
	Transactions Collection[models.Transaction]
	ScenicSpots  Collection[models.ScenicSpot]
	TicketSales  Collection[models.TicketSale]
}

func New(db *gorm.DB) *Store {
	return &Store{
		Rooms:        NewGormCollection[models.Room](db),
		Bookings:     NewGormCollection[models.Booking](db),
		Transactions: NewGormCollection[models.Transaction](db),
		ScenicSpots:  NewGormCollection[models.ScenicSpot](db),
		TicketSales:  NewGormCollection[models.TicketSale](db),
	}
}

// Models lists every persisted model in migration order.
func Models() []any {
	return []any{
		&models.Room{},
		&models.Booking{},
		&models.Transaction{},
		&models.ScenicSpot{},
		&models.TicketSale{},
	}
}
