package services

import (
	"math"
	"time"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"gorm.io/gorm"
)

// Flat percentages applied to the room-price subtotal; they do not
// compound on each other.
const (
	TaxRate           = 0.10
	ServiceChargeRate = 0.05
)

type PricingService struct {
	DB *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{DB: db}
}

type NightPrice struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Quote is the pricing snapshot stored on a booking at creation time.
type Quote struct {
	BasePrice     float64      `json:"basePrice"`
	Nights        int          `json:"nights"`
	PerNight      []NightPrice `json:"perNight"`
	Subtotal      float64      `json:"subtotal"`
	Taxes         float64      `json:"taxes"`
	ServiceCharge float64      `json:"serviceCharge"`
	Total         float64      `json:"total"`
	Currency      string       `json:"currency"`
}

// Price quotes a stay of [checkIn, checkOut) for qty units. Per night:
// a calendar price override wins, otherwise the base price scaled by
// any seasonal rate covering the day. Tax and service charge are flat
// percentages of the subtotal. Currency is the unit's; no conversion.
func (s *PricingService) Price(unit models.Unit, checkIn, checkOut time.Time, qty int) (*Quote, error) {
	nights := utils.EachNight(checkIn, checkOut)
	if len(nights) == 0 {
		return nil, makeErr(ErrInvalidRange, "stay must cover at least one night")
	}

	overrides, err := s.priceOverrides(unit, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	var rates []models.SeasonalRate
	err = s.DB.
		Where("unit_type = ? AND is_active = ? AND start_date <= ? AND end_date >= ?",
			unit.Type, true, utils.DateOnly(checkOut).AddDate(0, 0, -1), utils.DateOnly(checkIn)).
		Where("unit_id IS NULL OR unit_id = ?", unit.ID).
		Find(&rates).Error
	if err != nil {
		return nil, err
	}

	perNight := make([]NightPrice, 0, len(nights))
	subtotal := 0.0
	for _, day := range nights {
		price := unit.BasePrice
		for i := range rates {
			if rates[i].AppliesTo(unit.Type, unit.ID, day) {
				price = unit.BasePrice * rates[i].Multiplier
				break
			}
		}
		if override, ok := overrides[day.Format("2006-01-02")]; ok {
			price = override
		}
		perNight = append(perNight, NightPrice{Date: day, Price: price})
		subtotal += price
	}
	subtotal = round2(subtotal * float64(qty))

	taxes := round2(subtotal * TaxRate)
	serviceCharge := round2(subtotal * ServiceChargeRate)

	return &Quote{
		BasePrice:     unit.BasePrice,
		Nights:        len(nights),
		PerNight:      perNight,
		Subtotal:      subtotal,
		Taxes:         taxes,
		ServiceCharge: serviceCharge,
		Total:         round2(subtotal + taxes + serviceCharge),
		Currency:      unit.Currency,
	}, nil
}

func (s *PricingService) priceOverrides(unit models.Unit, checkIn, checkOut time.Time) (map[string]float64, error) {
	var rows []models.UnitAvailability
	err := s.DB.
		Where("unit_type = ? AND unit_id = ? AND date >= ? AND date < ? AND price_override IS NOT NULL",
			unit.Type, unit.ID, utils.DateOnly(checkIn), utils.DateOnly(checkOut)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]float64, len(rows))
	for _, row := range rows {
		overrides[row.Date.Format("2006-01-02")] = *row.PriceOverride
	}
	return overrides, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
