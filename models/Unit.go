package models

// Bookable unit kinds. Every calendar row and booking is keyed by
// (unit type, unit id) so rooms, vehicles and tour departures share
// one availability core.
const (
	UnitTypeRoom    = "room"
	UnitTypeVehicle = "vehicle"
	UnitTypeTour    = "tour"
)

// Unit statuses.
const (
	UnitActive      = "active"
	UnitInactive    = "inactive"
	UnitMaintenance = "maintenance"
)

// Cancellation policies, carried on the owning hotel / vehicle / tour.
const (
	PolicyFlexible = "flexible"
	PolicyModerate = "moderate"
	PolicyStrict   = "strict"
)

// Unit is the read-model snapshot the booking core works against.
// Rooms, vehicles and tours each know how to produce one.
type Unit struct {
	Type               string  `json:"type"`
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	OwnerID            uint    `json:"ownerID"`
	TotalUnits         int     `json:"totalUnits"`
	BasePrice          float64 `json:"basePrice"`
	Currency           string  `json:"currency"`
	Status             string  `json:"status"`
	CancellationPolicy string  `json:"cancellationPolicy"`
}

func ValidUnitType(t string) bool {
	return t == UnitTypeRoom || t == UnitTypeVehicle || t == UnitTypeTour
}
