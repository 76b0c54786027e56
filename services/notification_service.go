package services

import (
	"fmt"
	"log"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"

	"gorm.io/gorm"
)

// NotificationService persists booking events for users. Delivery
// (push, email) is handled by a separate worker reading these rows;
// callers treat every method as fire-and-forget.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (ns *NotificationService) create(n models.Notification) {
	if err := ns.DB.Create(&n).Error; err != nil {
		log.Printf("failed to store %s notification for user %d: %v", n.Type, n.UserID, err)
	}
}

func (ns *NotificationService) BookingCreated(b *models.Booking, unit models.Unit) {
	ns.create(models.Notification{
		UserID: unit.OwnerID,
		Type:   "booking_created",
		Title:  "New Booking Request",
		Message: fmt.Sprintf("New booking for %s from %s to %s",
			unit.Name, b.CheckIn.Format("Jan 2, 2006"), b.CheckOut.Format("Jan 2, 2006")),
		RefType: "booking",
		RefID:   b.ID,
	})
}

func (ns *NotificationService) BookingCancelled(b *models.Booking, unit models.Unit, refund float64) {
	ns.create(models.Notification{
		UserID: b.GuestID,
		Type:   "booking_cancelled",
		Title:  "Booking Cancelled",
		Message: fmt.Sprintf("Your booking for %s has been cancelled. Refund: %.2f %s",
			unit.Name, refund, b.Currency),
		RefType: "booking",
		RefID:   b.ID,
	})
	ns.create(models.Notification{
		UserID:  unit.OwnerID,
		Type:    "booking_cancelled",
		Title:   "Booking Cancelled",
		Message: fmt.Sprintf("Booking %s for %s was cancelled", b.ReferenceCode, unit.Name),
		RefType: "booking",
		RefID:   b.ID,
	})
}

func (ns *NotificationService) BookingStatusChanged(b *models.Booking, unit models.Unit, status string) {
	ns.create(models.Notification{
		UserID:  b.GuestID,
		Type:    "booking_status",
		Title:   "Booking Status Updated",
		Message: fmt.Sprintf("Your booking for %s is now %s", unit.Name, status),
		RefType: "booking",
		RefID:   b.ID,
	})
}
