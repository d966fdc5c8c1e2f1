package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/astrahr/payroll-backend-go/internal/config"
	appHTTP "github.com/astrahr/payroll-backend-go/internal/handler/http"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/astrahr/payroll-backend-go/internal/pkg/jwt"
	"github.com/astrahr/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/astrahr/payroll-backend-go/internal/service/attendance"
	leaveService "github.com/astrahr/payroll-backend-go/internal/service/leave"
	lookupService "github.com/astrahr/payroll-backend-go/internal/service/lookup"
	payrollService "github.com/astrahr/payroll-backend-go/internal/service/payroll"
	"github.com/astrahr/payroll-backend-go/internal/service/punchimport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	lookupRepo := postgresql.NewLookupRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	importJobRepo := postgresql.NewImportJobRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	weekendResolver := lookupService.NewWeekendResolver(lookupRepo)
	leaveAggregator := leaveService.NewAggregator(leaveRequestRepo)
	leaveRequestService := leaveService.NewRequestService(leaveRequestRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, attendanceRepo, leaveAggregator, weekendResolver)

	importRunner := punchimport.NewRunner()
	importSvc := punchimport.NewService(importJobRepo, attendanceRepo, employeeRepo, weekendResolver, importRunner)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, importSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveRequestService)

	router := appHTTP.NewRouter(jwtService, payrollHandler, attendanceHandler, leaveHandler, cfg.App.Env)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	// Let in-flight import jobs finish so none is left in a non-terminal state.
	if err := importRunner.Drain(shutdownCtx); err != nil {
		slog.Warn("Import workers did not finish before timeout", "error", err)
	}

	slog.Info("Server stopped")
}
