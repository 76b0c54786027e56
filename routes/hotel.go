package routes

import (
	"encoding/json"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type CreateHotelInput struct {
	Name               string   `json:"name" validate:"required,max=256"`
	Description        string   `json:"description"`
	AddressLine1       string   `json:"addressLine1"`
	City               string   `json:"city" validate:"required"`
	Country            string   `json:"country" validate:"required"`
	Lat                float32  `json:"lat"`
	Lng                float32  `json:"lng"`
	StarRating         int      `json:"starRating" validate:"omitempty,gte=1,lte=5"`
	Amenities          []string `json:"amenities"`
	CancellationPolicy string   `json:"cancellationPolicy" validate:"omitempty,oneof=flexible moderate strict"`
}

func CreateHotel(ctx iris.Context) {
	var input CreateHotelInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Ensure arrays are never null
	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	hotel := models.Hotel{
		OwnerID:            utils.ActorID(ctx),
		Name:               input.Name,
		Description:        input.Description,
		AddressLine1:       input.AddressLine1,
		City:               input.City,
		Country:            input.Country,
		Lat:                input.Lat,
		Lng:                input.Lng,
		StarRating:         input.StarRating,
		Amenities:          datatypes.JSON(amenitiesJSON),
		CancellationPolicy: input.CancellationPolicy,
	}
	if hotel.CancellationPolicy == "" {
		hotel.CancellationPolicy = models.PolicyFlexible
	}

	if res := storage.DB.Create(&hotel); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "hotel.create", "hotel", hotel.ID, nil, hotel)
	utils.JSONSuccess(ctx, "Hotel created successfully", hotel)
}

func GetHotels(ctx iris.Context) {
	db := storage.DB.Where("status = ?", models.UnitActive)
	if city := ctx.URLParam("city"); city != "" {
		db = db.Where("city = ?", city)
	}

	var hotels []models.Hotel
	if res := db.Order("star_rating DESC").Find(&hotels); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(hotels)
}

func GetHotel(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid hotel ID", ctx)
		return
	}

	var hotel models.Hotel
	if err := storage.DB.Preload("Rooms", "status = ?", models.UnitActive).First(&hotel, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(hotel)
}

func GetMyHotels(ctx iris.Context) {
	var hotels []models.Hotel
	res := storage.DB.
		Preload("Rooms").
		Where("owner_id = ?", utils.ActorID(ctx)).
		Find(&hotels)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(hotels)
}

type UpdateHotelInput struct {
	Name               *string  `json:"name" validate:"omitempty,max=256"`
	Description        *string  `json:"description"`
	AddressLine1       *string  `json:"addressLine1"`
	City               *string  `json:"city"`
	StarRating         *int     `json:"starRating" validate:"omitempty,gte=1,lte=5"`
	Amenities          []string `json:"amenities"`
	CancellationPolicy *string  `json:"cancellationPolicy" validate:"omitempty,oneof=flexible moderate strict"`
	Status             *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

func UpdateHotel(ctx iris.Context) {
	hotel, ok := loadOwnedHotel(ctx)
	if !ok {
		return
	}

	var input UpdateHotelInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := hotel
	if input.Name != nil {
		hotel.Name = *input.Name
	}
	if input.Description != nil {
		hotel.Description = *input.Description
	}
	if input.AddressLine1 != nil {
		hotel.AddressLine1 = *input.AddressLine1
	}
	if input.City != nil {
		hotel.City = *input.City
	}
	if input.StarRating != nil {
		hotel.StarRating = *input.StarRating
	}
	if input.Amenities != nil {
		amenitiesJSON, _ := json.Marshal(input.Amenities)
		hotel.Amenities = datatypes.JSON(amenitiesJSON)
	}
	if input.CancellationPolicy != nil {
		hotel.CancellationPolicy = *input.CancellationPolicy
	}
	if input.Status != nil {
		hotel.Status = *input.Status
	}

	if res := storage.DB.Save(&hotel); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "hotel.update", "hotel", hotel.ID, before, hotel)
	utils.JSONSuccess(ctx, "Hotel updated successfully", hotel)
}

// RetireHotel deactivates a hotel and all its rooms. Listings are never
// hard-deleted; history keeps pointing at them.
func RetireHotel(ctx iris.Context) {
	hotel, ok := loadOwnedHotel(ctx)
	if !ok {
		return
	}

	before := hotel
	hotel.Status = models.UnitInactive
	if res := storage.DB.Save(&hotel); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	storage.DB.Model(&models.Room{}).
		Where("hotel_id = ?", hotel.ID).
		Update("status", models.UnitInactive)

	utils.Audit(ctx, "hotel.retire", "hotel", hotel.ID, before, hotel)
	utils.JSONSuccess(ctx, "Hotel retired", hotel)
}

func loadOwnedHotel(ctx iris.Context) (models.Hotel, bool) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid hotel ID", ctx)
		return models.Hotel{}, false
	}

	var hotel models.Hotel
	if err := storage.DB.First(&hotel, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return models.Hotel{}, false
	}

	if utils.ActorID(ctx) != hotel.OwnerID && !models.IsStaff(utils.ActorRole(ctx)) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "you do not manage this hotel", ctx)
		return models.Hotel{}, false
	}
	return hotel, true
}
