package routes

import (
	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/kataras/iris/v12"
)

type CreateVehicleInput struct {
	Name               string  `json:"name" validate:"required,max=256"`
	VehicleType        string  `json:"vehicleType" validate:"required,oneof=car van tuk_tuk bus"`
	Seats              int     `json:"seats" validate:"omitempty,gte=1,lte=60"`
	WithDriver         *bool   `json:"withDriver"`
	TotalUnits         int     `json:"totalUnits" validate:"required,gte=1"`
	BasePrice          float64 `json:"basePrice" validate:"required,gt=0"` // per day
	Currency           string  `json:"currency" validate:"omitempty,len=3"`
	CancellationPolicy string  `json:"cancellationPolicy" validate:"omitempty,oneof=flexible moderate strict"`
}

func CreateVehicle(ctx iris.Context) {
	var input CreateVehicleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	vehicle := models.Vehicle{
		OwnerID:            utils.ActorID(ctx),
		Name:               input.Name,
		VehicleType:        input.VehicleType,
		Seats:              input.Seats,
		WithDriver:         true,
		TotalUnits:         input.TotalUnits,
		BasePrice:          input.BasePrice,
		Currency:           input.Currency,
		CancellationPolicy: input.CancellationPolicy,
	}
	if input.WithDriver != nil {
		vehicle.WithDriver = *input.WithDriver
	}
	if vehicle.Seats == 0 {
		vehicle.Seats = 4
	}
	if vehicle.CancellationPolicy == "" {
		vehicle.CancellationPolicy = models.PolicyFlexible
	}

	if res := storage.DB.Create(&vehicle); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "vehicle.create", "vehicle", vehicle.ID, nil, vehicle)
	utils.JSONSuccess(ctx, "Vehicle created successfully", vehicle)
}

func GetVehicles(ctx iris.Context) {
	db := storage.DB.Where("status = ?", models.UnitActive)
	if vehicleType := ctx.URLParam("vehicleType"); vehicleType != "" {
		db = db.Where("vehicle_type = ?", vehicleType)
	}
	if minSeats := ctx.URLParamIntDefault("minSeats", 0); minSeats > 0 {
		db = db.Where("seats >= ?", minSeats)
	}

	var vehicles []models.Vehicle
	if res := db.Order("base_price ASC").Find(&vehicles); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(vehicles)
}

func GetVehicle(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid vehicle ID", ctx)
		return
	}

	var vehicle models.Vehicle
	if err := storage.DB.First(&vehicle, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(vehicle)
}

func GetMyVehicles(ctx iris.Context) {
	var vehicles []models.Vehicle
	res := storage.DB.
		Where("owner_id = ?", utils.ActorID(ctx)).
		Find(&vehicles)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(vehicles)
}

type UpdateVehicleInput struct {
	Name               *string  `json:"name" validate:"omitempty,max=256"`
	Seats              *int     `json:"seats" validate:"omitempty,gte=1,lte=60"`
	WithDriver         *bool    `json:"withDriver"`
	TotalUnits         *int     `json:"totalUnits" validate:"omitempty,gte=1"`
	BasePrice          *float64 `json:"basePrice" validate:"omitempty,gt=0"`
	CancellationPolicy *string  `json:"cancellationPolicy" validate:"omitempty,oneof=flexible moderate strict"`
	Status             *string  `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
}

func UpdateVehicle(ctx iris.Context) {
	vehicle, ok := loadOwnedVehicle(ctx)
	if !ok {
		return
	}

	var input UpdateVehicleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := vehicle
	if input.Name != nil {
		vehicle.Name = *input.Name
	}
	if input.Seats != nil {
		vehicle.Seats = *input.Seats
	}
	if input.WithDriver != nil {
		vehicle.WithDriver = *input.WithDriver
	}
	if input.TotalUnits != nil {
		vehicle.TotalUnits = *input.TotalUnits
	}
	if input.BasePrice != nil {
		vehicle.BasePrice = *input.BasePrice
	}
	if input.CancellationPolicy != nil {
		vehicle.CancellationPolicy = *input.CancellationPolicy
	}
	if input.Status != nil {
		vehicle.Status = *input.Status
	}

	if res := storage.DB.Save(&vehicle); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAvailability(models.UnitTypeVehicle, vehicle.ID)
	utils.Audit(ctx, "vehicle.update", "vehicle", vehicle.ID, before, vehicle)
	utils.JSONSuccess(ctx, "Vehicle updated successfully", vehicle)
}

func RetireVehicle(ctx iris.Context) {
	vehicle, ok := loadOwnedVehicle(ctx)
	if !ok {
		return
	}

	before := vehicle
	vehicle.Status = models.UnitInactive
	if res := storage.DB.Save(&vehicle); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAvailability(models.UnitTypeVehicle, vehicle.ID)
	utils.Audit(ctx, "vehicle.retire", "vehicle", vehicle.ID, before, vehicle)
	utils.JSONSuccess(ctx, "Vehicle retired", vehicle)
}

func loadOwnedVehicle(ctx iris.Context) (models.Vehicle, bool) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid vehicle ID", ctx)
		return models.Vehicle{}, false
	}

	var vehicle models.Vehicle
	if err := storage.DB.First(&vehicle, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return models.Vehicle{}, false
	}

	if utils.ActorID(ctx) != vehicle.OwnerID && !models.IsStaff(utils.ActorRole(ctx)) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "you do not manage this vehicle", ctx)
		return models.Vehicle{}, false
	}
	return vehicle, true
}
