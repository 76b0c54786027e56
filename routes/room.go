package routes

import (
	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/kataras/iris/v12"
)

type CreateRoomInput struct {
	Name        string  `json:"name" validate:"required,max=256"`
	Description string  `json:"description"`
	MaxGuests   int     `json:"maxGuests" validate:"omitempty,gte=1,lte=20"`
	TotalUnits  int     `json:"totalUnits" validate:"required,gte=1"`
	BasePrice   float64 `json:"basePrice" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3"`
}

// CreateRoom adds a room type to a hotel the caller owns.
func CreateRoom(ctx iris.Context) {
	hotel, ok := loadOwnedHotel(ctx)
	if !ok {
		return
	}

	var input CreateRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	room := models.Room{
		HotelID:     hotel.ID,
		Name:        input.Name,
		Description: input.Description,
		MaxGuests:   input.MaxGuests,
		TotalUnits:  input.TotalUnits,
		BasePrice:   input.BasePrice,
		Currency:    input.Currency,
	}
	if room.MaxGuests == 0 {
		room.MaxGuests = 2
	}

	if res := storage.DB.Create(&room); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "room.create", "room", room.ID, nil, room)
	utils.JSONSuccess(ctx, "Room created successfully", room)
}

func GetRoom(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid room ID", ctx)
		return
	}

	var room models.Room
	if err := storage.DB.Preload("Hotel").First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(room)
}

type UpdateRoomInput struct {
	Name        *string  `json:"name" validate:"omitempty,max=256"`
	Description *string  `json:"description"`
	MaxGuests   *int     `json:"maxGuests" validate:"omitempty,gte=1,lte=20"`
	TotalUnits  *int     `json:"totalUnits" validate:"omitempty,gte=1"`
	BasePrice   *float64 `json:"basePrice" validate:"omitempty,gt=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
}

// UpdateRoom edits a room type. Changing TotalUnits only affects days
// that have no calendar row yet; persisted days keep their snapshot.
func UpdateRoom(ctx iris.Context) {
	room, ok := loadOwnedRoom(ctx)
	if !ok {
		return
	}

	var input UpdateRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := room
	if input.Name != nil {
		room.Name = *input.Name
	}
	if input.Description != nil {
		room.Description = *input.Description
	}
	if input.MaxGuests != nil {
		room.MaxGuests = *input.MaxGuests
	}
	if input.TotalUnits != nil {
		room.TotalUnits = *input.TotalUnits
	}
	if input.BasePrice != nil {
		room.BasePrice = *input.BasePrice
	}
	if input.Status != nil {
		room.Status = *input.Status
	}

	if res := storage.DB.Save(&room); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAvailability(models.UnitTypeRoom, room.ID)
	utils.Audit(ctx, "room.update", "room", room.ID, before, room)
	utils.JSONSuccess(ctx, "Room updated successfully", room)
}

func RetireRoom(ctx iris.Context) {
	room, ok := loadOwnedRoom(ctx)
	if !ok {
		return
	}

	before := room
	room.Status = models.UnitInactive
	if res := storage.DB.Save(&room); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.InvalidateAvailability(models.UnitTypeRoom, room.ID)
	utils.Audit(ctx, "room.retire", "room", room.ID, before, room)
	utils.JSONSuccess(ctx, "Room retired", room)
}

func loadOwnedRoom(ctx iris.Context) (models.Room, bool) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid room ID", ctx)
		return models.Room{}, false
	}

	var room models.Room
	if err := storage.DB.Preload("Hotel").First(&room, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return models.Room{}, false
	}

	if room.Hotel == nil || (utils.ActorID(ctx) != room.Hotel.OwnerID && !models.IsStaff(utils.ActorRole(ctx))) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "you do not manage this room", ctx)
		return models.Room{}, false
	}
	return room, true
}
