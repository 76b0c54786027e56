package routes

import (
	"time"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/kataras/iris/v12"
)

// GetMyNotifications lists the caller's notifications, unread first.
func GetMyNotifications(ctx iris.Context) {
	var notifications []models.Notification
	res := storage.DB.
		Where("user_id = ?", utils.ActorID(ctx)).
		Order("is_read ASC, created_at DESC").
		Limit(100).
		Find(&notifications)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(notifications)
}

func MarkNotificationRead(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid notification ID", ctx)
		return
	}

	var notification models.Notification
	if err := storage.DB.First(&notification, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if notification.UserID != utils.ActorID(ctx) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "not your notification", ctx)
		return
	}

	now := time.Now().UTC()
	notification.IsRead = true
	notification.ReadAt = &now
	if res := storage.DB.Save(&notification); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONSuccess(ctx, "Notification marked as read", notification)
}

// MarkAllNotificationsRead clears the caller's unread pile in one shot.
func MarkAllNotificationsRead(ctx iris.Context) {
	now := time.Now().UTC()
	res := storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", utils.ActorID(ctx), false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONSuccess(ctx, "Notifications marked as read", iris.Map{"updated": res.RowsAffected})
}
