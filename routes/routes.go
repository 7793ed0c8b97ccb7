package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/Wasi-Muzammil/Biometric-Attendance-System/config"
	"github.com/Wasi-Muzammil/Biometric-Attendance-System/database"
	"github.com/Wasi-Muzammil/Biometric-Attendance-System/handlers"
	"github.com/Wasi-Muzammil/Biometric-Attendance-System/middlewares"
	"github.com/Wasi-Muzammil/Biometric-Attendance-System/store"
)

// Register wires all HTTP routes. One authoritative route per operation.
func Register(e *echo.Echo, cfg *config.Config) {
	users := store.NewUserStore(database.DB)
	attendance := store.NewAttendanceStore(database.DB)
	devices := store.NewDeviceStore(database.DB, cfg.OfflineThreshold)

	usr := handlers.NewUserHandler(users)
	att := handlers.NewAttendanceHandler(attendance)
	dev := handlers.NewDeviceHandler(devices)
	auth := handlers.NewAuthHandler(cfg.JWTSecret)

	e.GET("/health", handlers.Health)

	// ===== Device heartbeat / liveness =====
	e.POST("/esp32/status", dev.UpdateStatus)
	e.GET("/esp32/status", dev.ListStatus)
	e.GET("/esp32/status/:device_id", dev.GetStatus)

	// ===== Enrollment / user directory =====
	e.POST("/esp32/user", usr.Create)
	e.DELETE("/esp32/user/delete", usr.Delete)
	e.GET("/esp32/user/slot/:slot_id", usr.GetBySlot)
	e.GET("/esp32/user/:user_id", usr.GetByID)
	e.GET("/esp32/users", usr.List)
	e.POST("/esp32/users/usersync", usr.BulkSync)
	e.DELETE("/esp32/users/sync-delete", usr.SyncDelete)

	// ===== Attendance ledger =====
	e.POST("/esp32/attendance", att.Log)
	e.POST("/esp32/attendance/bulk", att.LogBulk)
	e.GET("/esp32/attendance/range", att.ListRange)
	e.GET("/esp32/attendance/date/:date", att.ListByDate)
	e.GET("/esp32/attendance/:user_id/:date", att.GetByUserDate)

	// ===== Admin =====
	e.POST("/admin/login", auth.AdminLogin)

	admin := e.Group("/admin", middlewares.RequireAuth(cfg.JWTSecret), middlewares.RequireRole("admin"))
	admin.POST("/admins", auth.AdminCreate)
	admin.PUT("/users/:user_id", usr.Update)
}
