package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.ShopHours{},
		&models.Specialty{},
		&models.BarberProfile{},
		&models.ServiceTemplate{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Slot{},
		&models.Booking{},
		&models.BookingService{},
		&models.Review{},
		&models.Favorite{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE shops
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, cfg.DefaultTimezone)

	return db
}
