package routes

import (
	"time"

	"github.com/SSMShehan/serendibgo-v2-sub007/services"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/kataras/iris/v12"
)

// QuoteUnitPrice returns the full price breakdown for a prospective
// stay without creating anything. Same math the booking path uses.
// checkOut is exclusive, as on a real stay.
func QuoteUnitPrice(ctx iris.Context) {
	unit, ok := resolveUnitFromParams(ctx)
	if !ok {
		return
	}

	checkIn, err := time.Parse("2006-01-02", ctx.URLParam("checkIn"))
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid checkIn date", ctx)
		return
	}
	checkOut, err := time.Parse("2006-01-02", ctx.URLParam("checkOut"))
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid checkOut date", ctx)
		return
	}
	quantity := ctx.URLParamIntDefault("quantity", 1)
	if quantity < 1 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "quantity must be at least 1", ctx)
		return
	}

	svc := services.NewPricingService(storage.DB)
	quote, err := svc.Price(unit, checkIn, checkOut, quantity)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": quote})
}
