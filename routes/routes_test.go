package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/SSMShehan/serendibgo-v2-sub007/models"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// buildTestApp wires an in-memory database and the real middlewares
// around the route handlers under test.
func buildTestApp(t *testing.T) *iris.Application {
	t.Helper()
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.Room{},
		&models.Vehicle{},
		&models.Guide{},
		&models.Tour{},
		&models.UnitAvailability{},
		&models.Booking{},
		&models.SeasonalRate{},
		&models.Notification{},
		&models.PermissionTemplate{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	storage.DB = db

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })
	authenticated := []iris.Handler{accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware}

	availability := app.Party("/api/availability/{unitType}/{unitID:uint}")
	{
		availability.Get("/", QueryAvailability)
		availability.Get("/quote", QuoteUnitPrice)
	}

	booking := app.Party("/api/bookings", authenticated...)
	{
		booking.Post("/{unitType}/{unitID:uint}", CreateUnitBooking)
		booking.Get("/mine", GetMyBookings)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/audit-logs", GetAuditLogs)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

func signTestToken(id uint, role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: id, Role: role})
	return string(token)
}

// seedTestRoom creates owner, hotel and room directly in the test DB.
func seedTestRoom(t *testing.T) models.Room {
	t.Helper()

	owner := models.User{Email: "owner@route-test.lk", Role: models.RoleHotelOwner}
	if err := storage.DB.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	hotel := models.Hotel{
		OwnerID:            owner.ID,
		Name:               "Kandy Lake Hotel",
		City:               "Kandy",
		Country:            "Sri Lanka",
		CancellationPolicy: models.PolicyFlexible,
		Status:             models.UnitActive,
	}
	if err := storage.DB.Create(&hotel).Error; err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	room := models.Room{
		HotelID:    hotel.ID,
		Name:       "Lake View Twin",
		TotalUnits: 2,
		BasePrice:  100,
		Currency:   "LKR",
		Status:     models.UnitActive,
	}
	if err := storage.DB.Create(&room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return room
}

func TestAuditLogsRBAC(t *testing.T) {
	app := buildTestApp(t)

	// No token.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/audit-logs", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Tourist gets 403.
	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/audit-logs", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken(1, models.RoleTourist))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for tourist, got %d", resp2.Code)
	}

	// Admin gets through.
	req3 := httptest.NewRequest(http.MethodGet, "/api/admin/audit-logs", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken(1, models.RoleAdmin))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp3.Code)
	}
}

func TestQueryAvailabilityEndpoint(t *testing.T) {
	app := buildTestApp(t)
	room := seedTestRoom(t)

	start := utils.Today().AddDate(0, 0, 10).Format("2006-01-02")
	end := utils.Today().AddDate(0, 0, 12).Format("2006-01-02")
	url := fmt.Sprintf("/api/availability/room/%d?startDate=%s&endDate=%s", room.ID, start, end)

	req := httptest.NewRequest(http.MethodGet, url, nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		IsAvailable         bool                     `json:"isAvailable"`
		TotalAvailableUnits int                      `json:"totalAvailableUnits"`
		PerDayDetail        []map[string]interface{} `json:"perDayDetail"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.IsAvailable {
		t.Error("expected a fresh room to be available")
	}
	if body.TotalAvailableUnits != 2 {
		t.Errorf("expected 2 available units, got %d", body.TotalAvailableUnits)
	}
	if len(body.PerDayDetail) != 3 {
		t.Errorf("expected 3 days for an inclusive range, got %d", len(body.PerDayDetail))
	}

	// Unknown unit type is a 400, not a crash.
	req2 := httptest.NewRequest(http.MethodGet, "/api/availability/boat/1?startDate="+start+"&endDate="+end, nil)
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown unit type, got %d", resp2.Code)
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	app := buildTestApp(t)
	room := seedTestRoom(t)

	guest := models.User{Email: "guest@route-test.lk", Role: models.RoleTourist}
	if err := storage.DB.Create(&guest).Error; err != nil {
		t.Fatalf("seed guest: %v", err)
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"checkIn":  utils.Today().AddDate(0, 0, 10),
		"checkOut": utils.Today().AddDate(0, 0, 12),
		"quantity": 1,
	})

	url := fmt.Sprintf("/api/bookings/room/%d", room.ID)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signTestToken(guest.ID, models.RoleTourist))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var booking models.Booking
	if err := storage.DB.Where("guest_id = ?", guest.ID).First(&booking).Error; err != nil {
		t.Fatalf("booking not persisted: %v", err)
	}
	if booking.TotalPrice != 230 {
		t.Errorf("expected total 230, got %v", booking.TotalPrice)
	}

	// Booking without a token is rejected.
	req2 := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req2.Header.Set("Content-Type", "application/json")
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp2.Code)
	}
}
