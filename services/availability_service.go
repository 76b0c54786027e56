package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AvailabilityService owns the per-day calendar state for every unit.
// All date ranges handed to it are already day-truncated; stay-style
// ranges are exclusive of the end date (checkout day is not a night).
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// DayFields is the merge payload for calendar edits. Nil pointers leave
// the stored value untouched.
type DayFields struct {
	Status             *string
	AvailableUnits     *int
	TotalUnits         *int
	PriceOverride      *float64
	ClearPriceOverride bool
	Detail             datatypes.JSON
}

// GetRange returns the persisted rows for [start, end] ordered by date.
// Missing days are NOT synthesized; an empty result is a valid,
// fully-available answer. Use MaterializeRange for a gapless view.
func (s *AvailabilityService) GetRange(unitType string, unitID uint, start, end time.Time) ([]models.UnitAvailability, error) {
	var rows []models.UnitAvailability
	err := s.DB.
		Where("unit_type = ? AND unit_id = ? AND date >= ? AND date <= ?",
			unitType, unitID, utils.DateOnly(start), utils.DateOnly(end)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MaterializeRange returns one DayView per night of [checkIn, checkOut),
// synthesizing "available, full capacity, base price" for days that have
// no row yet. This is the only place absent-row semantics live.
func (s *AvailabilityService) MaterializeRange(unit models.Unit, checkIn, checkOut time.Time) ([]models.DayView, error) {
	rows, err := s.GetRange(unit.Type, unit.ID, checkIn, checkOut.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]models.UnitAvailability, len(rows))
	for _, row := range rows {
		byDay[row.Date.Format("2006-01-02")] = row
	}

	nights := utils.EachNight(checkIn, checkOut)
	views := make([]models.DayView, 0, len(nights))
	for _, day := range nights {
		if row, ok := byDay[day.Format("2006-01-02")]; ok {
			price := unit.BasePrice
			if row.PriceOverride != nil {
				price = *row.PriceOverride
			}
			views = append(views, models.DayView{
				Date:           day,
				Status:         row.Status,
				AvailableUnits: row.AvailableUnits,
				TotalUnits:     row.TotalUnits,
				Price:          price,
				Currency:       unit.Currency,
				Persisted:      true,
			})
			continue
		}
		views = append(views, models.DayView{
			Date:           day,
			Status:         models.DayAvailable,
			AvailableUnits: unit.TotalUnits,
			TotalUnits:     unit.TotalUnits,
			Price:          unit.BasePrice,
			Currency:       unit.Currency,
			Persisted:      false,
		})
	}
	return views, nil
}

// CheckConflicts returns every night of [checkIn, checkOut) whose row
// carries a blocking status. excludeID skips one row (used when editing
// an existing schedule entry in place).
func (s *AvailabilityService) CheckConflicts(unitType string, unitID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.UnitAvailability, error) {
	return s.checkConflictsTx(s.DB, unitType, unitID, checkIn, checkOut, excludeID)
}

func (s *AvailabilityService) checkConflictsTx(tx *gorm.DB, unitType string, unitID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.UnitAvailability, error) {
	q := tx.
		Where("unit_type = ? AND unit_id = ? AND date >= ? AND date < ?",
			unitType, unitID, utils.DateOnly(checkIn), utils.DateOnly(checkOut)).
		Where("status IN ?", []string{
			models.DayBooked,
			models.DayOfflineBooked,
			models.DayMaintenance,
			models.DayBlocked,
			models.DayOutOfOrder,
		})
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []models.UnitAvailability
	if err := q.Order("date ASC").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

// SetDay upserts one calendar day: created with availability defaults
// when absent, otherwise merged field by field.
func (s *AvailabilityService) SetDay(unit models.Unit, date time.Time, fields DayFields) (models.UnitAvailability, error) {
	var row models.UnitAvailability
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		row, txErr = s.setDayTx(tx, unit, date, fields)
		return txErr
	})
	if err != nil {
		return models.UnitAvailability{}, err
	}
	storage.InvalidateAvailability(unit.Type, unit.ID)
	return row, nil
}

func (s *AvailabilityService) setDayTx(tx *gorm.DB, unit models.Unit, date time.Time, fields DayFields) (models.UnitAvailability, error) {
	day := utils.DateOnly(date)

	var row models.UnitAvailability
	err := tx.Where("unit_type = ? AND unit_id = ? AND date = ?", unit.Type, unit.ID, day).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.UnitAvailability{
			UnitType:       unit.Type,
			UnitID:         unit.ID,
			Date:           day,
			Status:         models.DayAvailable,
			AvailableUnits: unit.TotalUnits,
			TotalUnits:     unit.TotalUnits,
			Currency:       unit.Currency,
		}
	} else if err != nil {
		return models.UnitAvailability{}, err
	}

	if fields.Status != nil {
		row.Status = *fields.Status
	}
	if fields.TotalUnits != nil {
		row.TotalUnits = *fields.TotalUnits
	}
	if fields.AvailableUnits != nil {
		row.AvailableUnits = *fields.AvailableUnits
	}
	if fields.PriceOverride != nil {
		row.PriceOverride = fields.PriceOverride
	} else if fields.ClearPriceOverride {
		row.PriceOverride = nil
	}
	if fields.Detail != nil {
		row.Detail = fields.Detail
	}

	if row.TotalUnits < 1 {
		return models.UnitAvailability{}, makeErr(ErrInvalidRange, "totalUnits must be >= 1")
	}
	if row.AvailableUnits < 0 {
		row.AvailableUnits = 0
	}
	if row.AvailableUnits > row.TotalUnits {
		row.AvailableUnits = row.TotalUnits
	}

	if err := tx.Save(&row).Error; err != nil {
		return models.UnitAvailability{}, err
	}
	return row, nil
}

// BulkSetRange applies SetDay to every night of [start, end) in one
// transaction. Callers decide the convention: booking paths pass a
// checkout-style exclusive end, schedule routes normalize an inclusive
// operator date by adding one day first.
func (s *AvailabilityService) BulkSetRange(unit models.Unit, start, end time.Time, fields DayFields) ([]models.UnitAvailability, error) {
	nights := utils.EachNight(start, end)
	if len(nights) == 0 {
		return nil, makeErr(ErrInvalidRange, "empty date range")
	}

	rows := make([]models.UnitAvailability, 0, len(nights))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, day := range nights {
			row, txErr := s.setDayTx(tx, unit, day, fields)
			if txErr != nil {
				return txErr
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	storage.InvalidateAvailability(unit.Type, unit.ID)
	return rows, nil
}

// DecrementForBooking reserves qty units for every night of
// [checkIn, checkOut) inside the caller's transaction. Each day uses a
// conditional decrement, so a concurrent booking that would overdraw a
// day makes the whole transaction fail with a ConflictError and no day
// is left half-reserved.
func (s *AvailabilityService) DecrementForBooking(tx *gorm.DB, unit models.Unit, checkIn, checkOut time.Time, qty int) error {
	for _, day := range utils.EachNight(checkIn, checkOut) {
		if err := s.decrementDay(tx, unit, day, qty); err != nil {
			return err
		}
	}
	return nil
}

func (s *AvailabilityService) decrementDay(tx *gorm.DB, unit models.Unit, day time.Time, qty int) error {
	res := tx.Model(&models.UnitAvailability{}).
		Where("unit_type = ? AND unit_id = ? AND date = ? AND status = ? AND available_units >= ?",
			unit.Type, unit.ID, day, models.DayAvailable, qty).
		UpdateColumn("available_units", gorm.Expr("available_units - ?", qty))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		// Either no row exists yet for this day, or the row cannot take
		// the booking. Distinguish the two.
		var existing models.UnitAvailability
		err := tx.Where("unit_type = ? AND unit_id = ? AND date = ?", unit.Type, unit.ID, day).First(&existing).Error
		if err == nil {
			return &ConflictError{Days: []time.Time{day}}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if unit.TotalUnits < qty {
			return &ConflictError{Days: []time.Time{day}}
		}

		row := models.UnitAvailability{
			UnitType:       unit.Type,
			UnitID:         unit.ID,
			Date:           day,
			Status:         models.DayAvailable,
			AvailableUnits: unit.TotalUnits - qty,
			TotalUnits:     unit.TotalUnits,
			Currency:       unit.Currency,
		}
		if row.AvailableUnits == 0 {
			row.Status = models.DayBooked
		}
		// A concurrent insert for the same day trips the unique index and
		// rolls back the surrounding transaction.
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("reserve %s: %w", day.Format("2006-01-02"), err)
		}
		return nil
	}

	// Mark the day fully booked once capacity hits zero.
	return tx.Model(&models.UnitAvailability{}).
		Where("unit_type = ? AND unit_id = ? AND date = ? AND available_units = 0 AND status = ?",
			unit.Type, unit.ID, day, models.DayAvailable).
		UpdateColumn("status", models.DayBooked).Error
}

// RestoreForCancellation gives back qty units for every night of
// [checkIn, checkOut). Days that independently became maintenance,
// blocked or out-of-order keep their status; only booked days flip back
// to available once they hold capacity again.
func (s *AvailabilityService) RestoreForCancellation(tx *gorm.DB, unit models.Unit, checkIn, checkOut time.Time, qty int) error {
	for _, day := range utils.EachNight(checkIn, checkOut) {
		var row models.UnitAvailability
		err := tx.Where("unit_type = ? AND unit_id = ? AND date = ?", unit.Type, unit.ID, day).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing persisted means the day is already fully available.
			continue
		}
		if err != nil {
			return err
		}

		row.AvailableUnits += qty
		if row.AvailableUnits > row.TotalUnits {
			row.AvailableUnits = row.TotalUnits
		}
		if row.Status == models.DayBooked && row.AvailableUnits > 0 {
			row.Status = models.DayAvailable
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
