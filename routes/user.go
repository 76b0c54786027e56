package routes

import (
	"encoding/json"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

// Identity issuance lives in a separate service; these endpoints only
// read and edit the profile row behind the verified token.

func GetMyProfile(ctx iris.Context) {
	var user models.User
	if err := storage.DB.First(&user, utils.ActorID(ctx)).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(user)
}

type UpdateProfileInput struct {
	FirstName   *string  `json:"firstName" validate:"omitempty,max=256"`
	LastName    *string  `json:"lastName" validate:"omitempty,max=256"`
	PhoneNumber *string  `json:"phoneNumber" validate:"omitempty,max=20"`
	AvatarURL   *string  `json:"avatarURL" validate:"omitempty,url"`
	Languages   []string `json:"languages"`
}

func UpdateMyProfile(ctx iris.Context) {
	var user models.User
	if err := storage.DB.First(&user, utils.ActorID(ctx)).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input UpdateProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if input.Languages != nil {
		languagesJSON, _ := json.Marshal(input.Languages)
		user.Languages = datatypes.JSON(languagesJSON)
	}

	if res := storage.DB.Save(&user); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONSuccess(ctx, "Profile updated successfully", &user)
}

type UpdateRoleInput struct {
	Role string `json:"role" validate:"required,oneof=tourist hotel_owner vehicle_owner guide staff admin"`
}

// UpdateUserRole grants or revokes roles. Admin only.
func UpdateUserRole(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid user ID", ctx)
		return
	}

	var input UpdateRoleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := user
	user.Role = input.Role
	if res := storage.DB.Save(&user); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "user.update_role", "user", user.ID, before, user)
	utils.JSONSuccess(ctx, "User role updated", &user)
}
