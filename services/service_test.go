package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database, migrates the schema
// and points the package-level handle at it so the services under test
// and their notification side writes share one store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Vehicle{},
		&models.Guide{},
		&models.Tour{},
		&models.UnitAvailability{},
		&models.Booking{},
		&models.SeasonalRate{},
		&models.Notification{},
	)
	require.NoError(t, err)

	storage.DB = db
	return db
}

func day(offset int) time.Time {
	return utils.Today().AddDate(0, 0, offset)
}

// seedRoom creates an owner, a hotel and one room type and returns the
// room's booking-core snapshot.
func seedRoom(t *testing.T, db *gorm.DB, totalUnits int, basePrice float64) models.Unit {
	t.Helper()

	owner := models.User{Email: fmt.Sprintf("owner-%s@test.lk", t.Name()), Role: models.RoleHotelOwner}
	require.NoError(t, db.Create(&owner).Error)

	hotel := models.Hotel{
		OwnerID:            owner.ID,
		Name:               "Galle Fort Villa",
		City:               "Galle",
		Country:            "Sri Lanka",
		CancellationPolicy: models.PolicyFlexible,
		Status:             models.UnitActive,
	}
	require.NoError(t, db.Create(&hotel).Error)

	room := models.Room{
		HotelID:    hotel.ID,
		Name:       "Deluxe Double",
		TotalUnits: totalUnits,
		BasePrice:  basePrice,
		Currency:   "LKR",
		Status:     models.UnitActive,
	}
	require.NoError(t, db.Create(&room).Error)
	room.Hotel = &hotel

	return room.AsUnit()
}

func seedGuest(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	guest := models.User{Email: fmt.Sprintf("guest-%s@test.lk", t.Name()), Role: models.RoleTourist}
	require.NoError(t, db.Create(&guest).Error)
	return guest
}
