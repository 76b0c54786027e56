package routes

import (
	"encoding/json"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type CreateGuideInput struct {
	Bio       string   `json:"bio"`
	Languages []string `json:"languages"`
	Regions   []string `json:"regions"`
	DailyRate float64  `json:"dailyRate" validate:"omitempty,gt=0"`
	Currency  string   `json:"currency" validate:"omitempty,len=3"`
	LicenseNo string   `json:"licenseNo"`
}

// CreateGuideProfile creates the caller's guide profile. One per user;
// the unique index on user_id rejects a second.
func CreateGuideProfile(ctx iris.Context) {
	var input CreateGuideInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	languages := input.Languages
	if languages == nil {
		languages = []string{}
	}
	languagesJSON, _ := json.Marshal(languages)

	regions := input.Regions
	if regions == nil {
		regions = []string{}
	}
	regionsJSON, _ := json.Marshal(regions)

	guide := models.Guide{
		UserID:    utils.ActorID(ctx),
		Bio:       input.Bio,
		Languages: datatypes.JSON(languagesJSON),
		Regions:   datatypes.JSON(regionsJSON),
		DailyRate: input.DailyRate,
		Currency:  input.Currency,
		LicenseNo: input.LicenseNo,
	}

	if res := storage.DB.Create(&guide); res.Error != nil {
		utils.CreateError(iris.StatusConflict, "Conflict", "guide profile already exists", ctx)
		return
	}

	utils.Audit(ctx, "guide.create", "guide", guide.ID, nil, guide)
	utils.JSONSuccess(ctx, "Guide profile created", guide)
}

func GetGuides(ctx iris.Context) {
	db := storage.DB.Preload("User").Where("status = ?", models.UnitActive)
	if ctx.URLParamBoolDefault("verifiedOnly", false) {
		db = db.Where("is_verified = ?", true)
	}

	var guides []models.Guide
	if res := db.Order("daily_rate ASC").Find(&guides); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(guides)
}

func GetGuide(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid guide ID", ctx)
		return
	}

	var guide models.Guide
	if err := storage.DB.Preload("User").First(&guide, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(guide)
}

type UpdateGuideInput struct {
	Bio       *string  `json:"bio"`
	Languages []string `json:"languages"`
	Regions   []string `json:"regions"`
	DailyRate *float64 `json:"dailyRate" validate:"omitempty,gt=0"`
	LicenseNo *string  `json:"licenseNo"`
	Status    *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

func UpdateGuideProfile(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid guide ID", ctx)
		return
	}

	var guide models.Guide
	if err := storage.DB.First(&guide, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if utils.ActorID(ctx) != guide.UserID && !models.IsStaff(utils.ActorRole(ctx)) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "not your guide profile", ctx)
		return
	}

	var input UpdateGuideInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := guide
	if input.Bio != nil {
		guide.Bio = *input.Bio
	}
	if input.Languages != nil {
		languagesJSON, _ := json.Marshal(input.Languages)
		guide.Languages = datatypes.JSON(languagesJSON)
	}
	if input.Regions != nil {
		regionsJSON, _ := json.Marshal(input.Regions)
		guide.Regions = datatypes.JSON(regionsJSON)
	}
	if input.DailyRate != nil {
		guide.DailyRate = *input.DailyRate
	}
	if input.LicenseNo != nil {
		guide.LicenseNo = *input.LicenseNo
	}
	if input.Status != nil {
		guide.Status = *input.Status
	}

	if res := storage.DB.Save(&guide); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "guide.update", "guide", guide.ID, before, guide)
	utils.JSONSuccess(ctx, "Guide profile updated", guide)
}

// VerifyGuide marks a guide as license-checked. Staff only.
func VerifyGuide(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid guide ID", ctx)
		return
	}

	var guide models.Guide
	if err := storage.DB.First(&guide, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := guide
	guide.IsVerified = true
	if res := storage.DB.Save(&guide); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "guide.verify", "guide", guide.ID, before, guide)
	utils.JSONSuccess(ctx, "Guide verified", guide)
}
