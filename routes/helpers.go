package routes

import (
	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/services"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/kataras/iris/v12"
)

// resolveUnitFromParams loads the unit snapshot addressed by the
// {unitType}/{unitID} route params. Writes the error response itself
// and returns false when the unit cannot be resolved.
func resolveUnitFromParams(ctx iris.Context) (models.Unit, bool) {
	unitType := ctx.Params().Get("unitType")
	if !models.ValidUnitType(unitType) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "unknown unit type", ctx)
		return models.Unit{}, false
	}

	unitID, err := ctx.Params().GetUint("unitID")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid unit ID", ctx)
		return models.Unit{}, false
	}

	unit, err := services.ResolveUnit(storage.DB, unitType, unitID)
	if err != nil {
		handleServiceError(err, ctx)
		return models.Unit{}, false
	}
	return unit, true
}

// requireUnitOwnership allows the unit owner and platform staff through;
// everyone else gets a 403.
func requireUnitOwnership(ctx iris.Context, unit models.Unit) bool {
	if utils.ActorID(ctx) == unit.OwnerID || models.IsStaff(utils.ActorRole(ctx)) {
		return true
	}
	utils.CreateError(iris.StatusForbidden, "Forbidden", "you do not manage this unit", ctx)
	return false
}

// handleServiceError maps the booking core's coded errors onto HTTP
// responses; Conflict responses carry the blocking days for the UI.
func handleServiceError(err error, ctx iris.Context) {
	switch services.Code(err) {
	case services.ErrNotFound:
		utils.CreateError(iris.StatusNotFound, "Not Found", services.Detail(err), ctx)
	case services.ErrInvalidRange:
		utils.CreateError(iris.StatusBadRequest, "Invalid Range", services.Detail(err), ctx)
	case services.ErrForbidden:
		utils.CreateError(iris.StatusForbidden, "Forbidden", services.Detail(err), ctx)
	case services.ErrInvalidState:
		utils.CreateError(iris.StatusBadRequest, "Invalid State", services.Detail(err), ctx)
	case services.ErrConflict:
		days := services.ConflictDays(err)
		conflictDays := make([]string, 0, len(days))
		for _, d := range days {
			conflictDays = append(conflictDays, d.Format("2006-01-02"))
		}
		ctx.StopWithJSON(iris.StatusConflict, iris.Map{
			"success":      false,
			"title":        "Conflict",
			"detail":       services.Detail(err),
			"conflictDays": conflictDays,
		})
	default:
		utils.CreateInternalServerError(ctx)
	}
}
