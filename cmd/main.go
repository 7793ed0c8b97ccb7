package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/config"
	"github.com/Wasi-Muzammil/Biometric-Attendance-System/database"
	"github.com/Wasi-Muzammil/Biometric-Attendance-System/handlers"
	"github.com/Wasi-Muzammil/Biometric-Attendance-System/routes"
)

func main() {
	cfg := config.Load()

	// Fail early if the database is not up.
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
