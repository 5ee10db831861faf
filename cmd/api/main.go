package main

import (
	"fmt"
	"net/http"

	"github.com/factorydesk/workforce-backend-go/internal/config"
	appHTTP "github.com/factorydesk/workforce-backend-go/internal/handler/http"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/clock"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/jwt"
	"github.com/factorydesk/workforce-backend-go/internal/repository/postgresql"
	advanceService "github.com/factorydesk/workforce-backend-go/internal/service/advance"
	attendanceService "github.com/factorydesk/workforce-backend-go/internal/service/attendance"
	authService "github.com/factorydesk/workforce-backend-go/internal/service/auth"
	shiftService "github.com/factorydesk/workforce-backend-go/internal/service/shift"
	wageService "github.com/factorydesk/workforce-backend-go/internal/service/wage"
	workerService "github.com/factorydesk/workforce-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	wageRepo := postgresql.NewWageRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	clk := clock.System()

	authSvc := authService.NewAuthService(db, userRepo, JWTService)
	workerSvc := workerService.NewWorkerService(db, workerRepo, shiftRepo)
	shiftSvc := shiftService.NewShiftService(db, shiftRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, workerRepo, shiftRepo, clk)
	wageSvc := wageService.NewWageService(db, wageRepo, workerRepo, attendanceRepo, advanceRepo)
	advanceSvc := advanceService.NewAdvanceService(db, advanceRepo, workerRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	workerHandler := appHTTP.NewWorkerHandler(workerSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	advanceHandler := appHTTP.NewAdvanceHandler(advanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(wageSvc)

	router := appHTTP.NewRouter(
		JWTService,
		cfg.App.FrontendURL,
		cfg.App.Env,
		authHandler,
		attendanceHandler,
		workerHandler,
		shiftHandler,
		advanceHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
