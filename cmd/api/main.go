package main

import (
	"fmt"
	"net/http"

	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/config"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/domain/policy"
	appHTTP "github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/handler/http"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/cron"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/database"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/pkg/jwt"
	"github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/repository/postgresql"
	leaveService "github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/service/leave"
	payrollService "github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/service/payroll"
	policyService "github.com/dharmeshparikh-cloud/DVBC-ERP-sub002/internal/service/policy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	snapshotRepo := postgresql.NewSnapshotRepository(db)
	encashmentRepo := postgresql.NewEncashmentRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	resolver := policyService.NewResolver(policyRepo, policy.BuiltInDefault(), cfg.Leave.PolicyExpiryCheck)
	policySvc := policyService.NewPolicyService(db, policyRepo)
	balanceSvc := leaveService.NewBalanceCalculator(resolver, employeeRepo, leaveRequestRepo, snapshotRepo)
	adjustmentSvc := payrollService.NewAdjustmentComputer(resolver, employeeRepo, leaveRequestRepo, encashmentRepo, payrollService.Rates{
		BasicSalaryRatio:    cfg.Leave.BasicSalaryRatio,
		WorkingDaysPerMonth: cfg.Leave.WorkingDaysPerMonth,
	})
	encashmentSvc := leaveService.NewEncashmentService(balanceSvc, employeeRepo, resolver, adjustmentSvc, encashmentRepo)
	yearEndSvc := leaveService.NewYearEndProcessor(employeeRepo, balanceSvc, snapshotRepo)

	policyHandler := appHTTP.NewPolicyHandler(policySvc, resolver, employeeRepo)
	leaveHandler := appHTTP.NewLeaveHandler(balanceSvc, encashmentSvc, yearEndSvc)
	payrollHandler := appHTTP.NewPayrollHandler(adjustmentSvc)

	scheduler := cron.NewScheduler()
	cron.NewYearEndJobs(yearEndSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	r := appHTTP.NewRouter(JWTService, policyHandler, leaveHandler, payrollHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server started at", addr)
	http.ListenAndServe(addr, r)
}
