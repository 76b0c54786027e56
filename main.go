package main

import (
	"os"

	"github.com/SSMShehan/serendibgo-v2-sub007/routes"
	"github.com/SSMShehan/serendibgo-v2-sub007/storage"
	"github.com/SSMShehan/serendibgo-v2-sub007/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})
	authenticated := []iris.Handler{accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware}

	user := app.Party("/api/user")
	{
		user.Get("/profile", append(authenticated, routes.GetMyProfile)...)
		user.Patch("/profile", append(authenticated, routes.UpdateMyProfile)...)
	}

	hotel := app.Party("/api/hotels")
	{
		hotel.Get("/", routes.GetHotels)
		hotel.Get("/{id:uint}", routes.GetHotel)
		hotel.Post("/", append(authenticated, routes.CreateHotel)...)
		hotel.Get("/mine", append(authenticated, routes.GetMyHotels)...)
		hotel.Patch("/{id:uint}", append(authenticated, routes.UpdateHotel)...)
		hotel.Delete("/{id:uint}", append(authenticated, routes.RetireHotel)...)
		hotel.Post("/{id:uint}/rooms", append(authenticated, routes.CreateRoom)...)
	}

	room := app.Party("/api/rooms")
	{
		room.Get("/{id:uint}", routes.GetRoom)
		room.Patch("/{id:uint}", append(authenticated, routes.UpdateRoom)...)
		room.Delete("/{id:uint}", append(authenticated, routes.RetireRoom)...)
	}

	vehicle := app.Party("/api/vehicles")
	{
		vehicle.Get("/", routes.GetVehicles)
		vehicle.Get("/{id:uint}", routes.GetVehicle)
		vehicle.Post("/", append(authenticated, routes.CreateVehicle)...)
		vehicle.Get("/mine", append(authenticated, routes.GetMyVehicles)...)
		vehicle.Patch("/{id:uint}", append(authenticated, routes.UpdateVehicle)...)
		vehicle.Delete("/{id:uint}", append(authenticated, routes.RetireVehicle)...)
	}

	tour := app.Party("/api/tours")
	{
		tour.Get("/", routes.GetTours)
		tour.Get("/{id:uint}", routes.GetTour)
		tour.Post("/", append(authenticated, routes.CreateTour)...)
		tour.Get("/mine", append(authenticated, routes.GetMyTours)...)
		tour.Patch("/{id:uint}", append(authenticated, routes.UpdateTour)...)
		tour.Delete("/{id:uint}", append(authenticated, routes.RetireTour)...)
	}

	guide := app.Party("/api/guides")
	{
		guide.Get("/", routes.GetGuides)
		guide.Get("/{id:uint}", routes.GetGuide)
		guide.Post("/", append(authenticated, routes.CreateGuideProfile)...)
		guide.Patch("/{id:uint}", append(authenticated, routes.UpdateGuideProfile)...)
		guide.Post("/{id:uint}/verify", accessTokenVerifierMiddleware, utils.StaffOrAdminMiddleware, routes.VerifyGuide)
	}

	availability := app.Party("/api/availability/{unitType}/{unitID:uint}")
	{
		availability.Get("/", routes.QueryAvailability)
		availability.Get("/quote", routes.QuoteUnitPrice)
		availability.Get("/calendar", append(authenticated, routes.GetUnitCalendar)...)
		availability.Put("/day", append(authenticated, routes.SetUnitDay)...)
		availability.Post("/maintenance", append(authenticated, routes.ScheduleMaintenance)...)
		availability.Post("/block", append(authenticated, routes.BlockUnitDates)...)
		availability.Post("/offline-booking", append(authenticated, routes.CreateOfflineBooking)...)
	}

	booking := app.Party("/api/bookings", authenticated...)
	{
		booking.Post("/{unitType}/{unitID:uint}", routes.CreateUnitBooking)
		booking.Get("/unit/{unitType}/{unitID:uint}", routes.GetUnitBookings)
		booking.Get("/mine", routes.GetMyBookings)
		booking.Get("/{id:uint}", routes.GetBooking)
		booking.Post("/{id:uint}/cancel", routes.CancelBooking)
		booking.Patch("/{id:uint}/status", routes.UpdateBookingStatus)
	}

	notification := app.Party("/api/notifications", authenticated...)
	{
		notification.Get("/", routes.GetMyNotifications)
		notification.Patch("/{id:uint}/read", routes.MarkNotificationRead)
		notification.Patch("/read-all", routes.MarkAllNotificationsRead)
	}

	staff := app.Party("/api/staff", accessTokenVerifierMiddleware, utils.StaffOrAdminMiddleware)
	{
		staff.Get("/bookings", routes.GetAllBookings)
		staff.Patch("/bookings/{id:uint}/payment", routes.SetBookingPaymentStatus)
		staff.Post("/bookings/{id:uint}/override", routes.OverrideBookingStatus)
		staff.Get("/seasonal-rates", routes.GetSeasonalRates)
		staff.Post("/seasonal-rates", routes.CreateSeasonalRate)
		staff.Delete("/seasonal-rates/{id:uint}", routes.DeactivateSeasonalRate)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/permission-templates", routes.GetPermissionTemplates)
		admin.Post("/permission-templates", routes.CreatePermissionTemplate)
		admin.Put("/permission-templates/{id:uint}", routes.UpdatePermissionTemplate)
		admin.Delete("/permission-templates/{id:uint}", routes.DeletePermissionTemplate)
		admin.Patch("/users/{id:uint}/role", routes.UpdateUserRole)
		admin.Get("/audit-logs", routes.GetAuditLogs)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	app.Listen(":" + port)
}
