package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/config"
	"github.com/Wasi-Muzammil/Biometric-Attendance-System/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.AttendanceRecord{},
		&models.Device{},
		&models.Admin{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}
