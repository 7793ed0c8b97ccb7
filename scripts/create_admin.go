// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/config"
	"github.com/Wasi-Muzammil/Biometric-Attendance-System/database"
	"github.com/Wasi-Muzammil/Biometric-Attendance-System/models"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "Admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "1234"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.Admin
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query admins: %v", err)
		}
	} else {
		fmt.Println("admin already exists with username:", username)
		os.Exit(0)
	}

	a := models.Admin{
		Username: username,
		Password: string(hashed),
		Role:     "admin",
	}
	if err := database.DB.Create(&a).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}
	fmt.Println("admin created:", username)
}
