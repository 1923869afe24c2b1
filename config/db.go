package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-console/models"
	"hotel-console/store"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// MySQLDSN resolves the DSN from a URL when one is configured, else from the
// individual DB_* settings.
func (c DBConfig) MySQLDSN() (string, error) {
	if c.URL != "" {
		if strings.HasPrefix(c.URL, "mysql://") {
			return mysqlDSNFromURL(c.URL)
		}
		return c.URL, nil
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User, c.Pass, c.Host, c.Port, c.Name,
	), nil
}

func (c DBConfig) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case "sqlite":
		return sqlite.Open(c.SQLitePath), nil
	case "mysql", "":
		dsn, err := c.MySQLDSN()
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
}

// ConnectDatabase opens the configured database and migrates the schema.
func ConnectDatabase(cfg DBConfig, log *logrus.Logger) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: NewGormLogger(log)})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	if cfg.Seed {
		SeedDatabase(db, log)
	}
	return db, nil
}

// NewGormLogger routes gorm's SQL log through logrus.
func NewGormLogger(l *logrus.Logger) logger.Interface {
	level := logger.Warn
	if l.IsLevelEnabled(logrus.DebugLevel) {
		level = logger.Info
	}
	return logger.New(
		log.New(l.Writer(), "", 0),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(store.Models()...)
}

func intPtr(v int) *int { return &v }

// SeedDatabase inserts sample rooms and scenic spots into empty tables.
func SeedDatabase(db *gorm.DB, log *logrus.Logger) {
	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{RoomNumber: "101", RoomType: models.RoomTypeStandard, PricePerNight: decimal.NewFromInt(200), Floor: intPtr(1), Status: models.RoomAvailable},
			{RoomNumber: "102", RoomType: models.RoomTypeStandard, PricePerNight: decimal.NewFromInt(200), Floor: intPtr(1), Status: models.RoomAvailable},
			{RoomNumber: "201", RoomType: models.RoomTypeDeluxe, PricePerNight: decimal.NewFromInt(380), Floor: intPtr(2), Status: models.RoomAvailable},
			{RoomNumber: "301", RoomType: models.RoomTypeSuite, PricePerNight: decimal.NewFromInt(680), Floor: intPtr(3), Status: models.RoomAvailable},
			{RoomNumber: "801", RoomType: models.RoomTypePresidential, PricePerNight: decimal.NewFromInt(1880), Floor: intPtr(8), Status: models.RoomAvailable},
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.WithError(err).Warn("failed to seed rooms")
		} else {
			log.WithField("count", len(rooms)).Info("rooms seeded")
		}
	}

	var spotCount int64
	db.Model(&models.ScenicSpot{}).Count(&spotCount)
	if spotCount == 0 {
		active := true
		spots := []models.ScenicSpot{
			{Name: "Lakeside Garden", AdultPrice: decimal.NewFromInt(100), ChildPrice: decimal.NewFromInt(50), SeniorPrice: decimal.NewFromInt(60), OpeningHours: "08:00-18:00", IsActive: &active},
			{Name: "Old Town Museum", AdultPrice: decimal.NewFromInt(60), OpeningHours: "09:00-17:00", IsActive: &active},
		}
		if err := db.Create(&spots).Error; err != nil {
			log.WithError(err).Warn("failed to seed scenic spots")
		} else {
			log.WithField("count", len(spots)).Info("scenic spots seeded")
		}
	}
}
