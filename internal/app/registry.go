package app

import (
	"database/sql"
	"path/filepath"

	"github.com/HirziKhalis/hrms-system/internal/attendance"
	"github.com/HirziKhalis/hrms-system/internal/auth"
	"github.com/HirziKhalis/hrms-system/internal/employee"
	"github.com/HirziKhalis/hrms-system/internal/holiday"
	"github.com/HirziKhalis/hrms-system/internal/incentive"
	"github.com/HirziKhalis/hrms-system/internal/leave"
	"github.com/HirziKhalis/hrms-system/internal/messaging/kafka"
	"github.com/HirziKhalis/hrms-system/internal/overtime"
	"github.com/HirziKhalis/hrms-system/internal/payroll"
	"github.com/HirziKhalis/hrms-system/internal/rbac"
	"github.com/HirziKhalis/hrms-system/internal/rbac/infra"
	"github.com/HirziKhalis/hrms-system/internal/referral"
	"github.com/HirziKhalis/hrms-system/internal/shared/counter"
	"github.com/HirziKhalis/hrms-system/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB, db)
	quotaRepo := leave.NewQuotaRepository(db)
	attendanceRepo := attendance.NewRepository(gormDB)
	overtimeRepo := overtime.NewRepository(gormDB, db)
	payrollRepo := payroll.NewRepository(gormDB, db)
	incentiveRepo := incentive.NewRepository(gormDB)
	referralRepo := referral.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC core ---
	enforcer, err := infra.NewEnforcer(
		filepath.Join("internal", "rbac", "infra", "model.conf"),
		filepath.Join("internal", "rbac", "infra", "policy.csv"),
	)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	holidayService := holiday.NewService(holidayRepo)
	leaveService := leave.NewService(db, leaveRepo, quotaRepo, employeeRepo, holidayRepo, outboxRepo, rdb)
	attendanceService := attendance.NewService(db, attendanceRepo)
	overtimeService := overtime.NewService(db, overtimeRepo, employeeRepo)
	payrollService := payroll.NewService(db, payrollRepo, employeeRepo)
	incentiveService := incentive.NewService(incentiveRepo, employeeRepo)
	referralService := referral.NewService(referralRepo)
	userService := user.NewService(userRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	overtimeHandler := overtime.NewHandler(overtimeService)
	payrollHandler := payroll.NewHandler(payrollService, rdb)
	incentiveHandler := incentive.NewHandler(incentiveService)
	referralHandler := referral.NewHandler(referralService)
	userHandler := user.NewHandler(userService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		user.RegisterRoutes(api, userHandler, authService, rbacService)
		employee.RegisterRoutes(api, employeeHandler, authService, rbacService)
		holiday.RegisterRoutes(api, holidayHandler, authService, rbacService)
		leave.RegisterRoutes(api, leaveHandler, authService, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, authService, rbacService)
		overtime.RegisterRoutes(api, overtimeHandler, authService, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, authService, rbacService, rdb)
		incentive.RegisterRoutes(api, incentiveHandler, authService, rbacService)
		referral.RegisterRoutes(api, referralHandler, authService, rbacService)
	}

	return nil
}
