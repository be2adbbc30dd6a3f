package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	bookingdomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/realtime"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
	ucSlot "github.com/BruksfildServices01/barbershop-booking/internal/usecase/slot"
)

// Deps reúne a infraestrutura montada no main.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Log         *slog.Logger
	Issuer      *auth.TokenIssuer
	Events      events.Publisher
	Audit       audit.Recorder
	AuditLogger *audit.Logger
	Locker      bookingdomain.SlotLocker
	Images      storage.ImageStore // nil sem S3
	Hub         *realtime.Hub
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	db := d.DB

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	slotRepo := infraRepo.NewSlotGormRepository(db)
	reportRepo := infraRepo.NewReportSQLRepository(db)

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, d.Locker, d.Events, d.Audit)
	updateStatusUC := ucBooking.NewUpdateBookingStatus(bookingRepo, d.Events, d.Audit)
	getBookingUC := ucBooking.NewGetBooking(bookingRepo)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	reviewBookingUC := ucBooking.NewReviewBooking(bookingRepo, d.Audit)

	// ======================================================
	// 🧠 USE CASES — SLOTS
	// ======================================================
	days := d.Config.SlotGenerationDays
	availableSlotsUC := ucSlot.NewListAvailableSlots(slotRepo, days)
	barberSlotsUC := ucSlot.NewListBarberSlots(slotRepo)
	generateSlotsUC := ucSlot.NewGenerateSlots(slotRepo, d.Audit, days)
	blockSlotUC := ucSlot.NewSetSlotBlocked(slotRepo, d.Events, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, d.Issuer, d.Audit)
	userHandler := handlers.NewUserHandler(db)
	shopHandler := handlers.NewShopHandler(db, d.Images, reportRepo, d.Audit)
	serviceHandler := handlers.NewServiceHandler(db, d.Audit)
	specialtyHandler := handlers.NewSpecialtyHandler(db)
	templateHandler := handlers.NewServiceTemplateHandler(db, d.Audit)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, d.Audit)

	slotHandler := handlers.NewSlotHandler(
		availableSlotsUC,
		barberSlotsUC,
		generateSlotsUC,
		blockSlotUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updateStatusUC,
		getBookingUC,
		listBookingsUC,
		reviewBookingUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db, d.AuditLogger)
	realtimeHandler := handlers.NewRealtimeHandler(d.Hub, d.Issuer, d.Log)

	authRequired := middleware.AuthMiddleware(d.Issuer)
	admin := middleware.RequireRole(models.RoleAdmin)
	owners := middleware.RequireRole(models.RoleShopOwner, models.RoleAdmin)
	staff := middleware.RequireRole(models.RoleBarber, models.RoleShopOwner, models.RoleAdmin)

	// ======================================================
	// 🔌 WEBSOCKET
	// ======================================================
	r.GET("/ws", realtimeHandler.Serve)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")

	// ------------------------------
	// 🔐 AUTH
	// ------------------------------
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", authRequired, userHandler.GetMe)
		authGroup.PUT("/password", authRequired, authHandler.ChangePassword)
	}

	// ------------------------------
	// 👤 USERS
	// ------------------------------
	users := api.Group("/users", authRequired)
	{
		users.GET("/me", userHandler.GetMe)
		users.PUT("/me", userHandler.UpdateMe)
		users.GET("/me/favorites", userHandler.ListFavorites)
		users.POST("/me/favorites/:shopId", userHandler.AddFavorite)
		users.DELETE("/me/favorites/:shopId", userHandler.RemoveFavorite)

		users.GET("", admin, userHandler.List)
		users.PATCH("/:id/active", admin, userHandler.SetActive)
	}

	// ------------------------------
	// 💈 SHOPS
	// ------------------------------
	shops := api.Group("/shops")
	{
		shops.GET("", shopHandler.List)
		shops.GET("/mine", authRequired, owners, shopHandler.Mine)
		shops.GET("/:id", shopHandler.Get)
		shops.GET("/:id/services", shopHandler.ListServices)
		shops.GET("/:id/barbers", shopHandler.ListBarbers)
		shops.GET("/:id/reviews", shopHandler.ListReviews)

		shops.POST("", authRequired, owners, shopHandler.Create)
		shops.PUT("/:id", authRequired, owners, shopHandler.Update)
		shops.DELETE("/:id", authRequired, owners, shopHandler.Delete)
		shops.PATCH("/:id/status", authRequired, admin, shopHandler.SetStatus)
		shops.PUT("/:id/hours", authRequired, owners, shopHandler.ReplaceHours)
		shops.POST("/:id/barbers", authRequired, owners, shopHandler.AddBarber)
		shops.DELETE("/:id/barbers/:barberId", authRequired, owners, shopHandler.RemoveBarber)
		shops.POST("/:id/image", authRequired, owners, shopHandler.UploadImage)
		shops.GET("/:id/stats", authRequired, owners, shopHandler.Stats)
	}

	// ------------------------------
	// ✂️ SERVICES
	// ------------------------------
	services := api.Group("/services")
	{
		services.GET("", serviceHandler.List)
		services.GET("/categories", serviceHandler.Categories)
		services.GET("/:id", serviceHandler.Get)
		services.POST("", authRequired, owners, serviceHandler.Create)
		services.PUT("/:id", authRequired, owners, serviceHandler.Update)
		services.DELETE("/:id", authRequired, owners, serviceHandler.Delete)
	}

	specialties := api.Group("/specialties")
	{
		specialties.GET("", specialtyHandler.List)
		specialties.POST("", authRequired, admin, specialtyHandler.Create)
		specialties.DELETE("/:id", authRequired, admin, specialtyHandler.Delete)
	}

	templates := api.Group("/service-templates")
	{
		templates.GET("", templateHandler.List)
		templates.POST("", authRequired, admin, templateHandler.Create)
		templates.PUT("/:id", authRequired, admin, templateHandler.Update)
		templates.DELETE("/:id", authRequired, admin, templateHandler.Delete)
		templates.POST("/:id/apply", authRequired, owners, templateHandler.Apply)
	}

	// ------------------------------
	// 🕒 WORKING HOURS / SLOTS
	// ------------------------------
	workingHours := api.Group("/working-hours")
	{
		workingHours.GET("/barber/:barberId", workingHoursHandler.Get)
		workingHours.PUT("/barber/:barberId", authRequired, staff, workingHoursHandler.Update)
	}

	slots := api.Group("/slots")
	{
		slots.GET("/available", slotHandler.Available)
		slots.GET("/barber/:barberId", authRequired, staff, slotHandler.ByBarber)
		slots.POST("/generate", authRequired, staff, slotHandler.Generate)
		slots.PATCH("/:id/block", authRequired, staff, slotHandler.Block)
		slots.PATCH("/:id/unblock", authRequired, staff, slotHandler.Unblock)
	}

	// ------------------------------
	// 📅 BOOKINGS
	// ------------------------------
	bookings := api.Group("/bookings", authRequired)
	{
		bookings.POST("", middleware.RequireRole(models.RoleCustomer), bookingHandler.Create)
		bookings.GET("/my", bookingHandler.My)
		bookings.GET("/barber", middleware.RequireRole(models.RoleBarber), bookingHandler.Barber)
		bookings.GET("/shop/:shopId", owners, bookingHandler.Shop)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.PUT("/:id/status", bookingHandler.UpdateStatus)
		bookings.PATCH("/:id/cancel", bookingHandler.Cancel)
		bookings.POST("/:id/review", middleware.RequireRole(models.RoleCustomer), bookingHandler.Review)
	}

	// ------------------------------
	// 📜 AUDIT
	// ------------------------------
	api.GET("/audit-logs", authRequired, owners, auditLogsHandler.List)
}
