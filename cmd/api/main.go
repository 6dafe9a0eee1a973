package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "nexo-backend/internal/adapter/http"
	"nexo-backend/internal/adapter/middleware"
	"nexo-backend/internal/adapter/repository/mysql"
	"nexo-backend/internal/config"
	"nexo-backend/internal/infrastructure/cache"
	"nexo-backend/internal/infrastructure/db"
	"nexo-backend/internal/notify"
	investmentUC "nexo-backend/internal/usecase/investment"
	loanUC "nexo-backend/internal/usecase/loan"
	repaymentUC "nexo-backend/internal/usecase/repayment"
	walletUC "nexo-backend/internal/usecase/wallet"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	u := mysql.NewGormUoW(gdb)
	notifier := notify.NewLogNotifier()
	scorer := notify.NewLogCreditScorer()

	walletUc := walletUC.NewUsecase(u)
	loanUc := loanUC.NewUsecase(u)
	investmentUc := investmentUC.NewUsecase(u, notifier)
	repaymentUc := repaymentUC.NewUsecase(u, notifier, scorer)

	h := httpadp.NewHandler()
	wh := httpadp.NewWalletHandler(walletUc)
	lh := httpadp.NewLoanHandler(loanUc, repaymentUc)
	ih := httpadp.NewInvestmentHandler(investmentUc, repaymentUc)
	rh := httpadp.NewRepaymentHandler(repaymentUc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	e.GET("/health", h.Health)

	e.POST("/wallets", wh.CreateWallet)
	e.GET("/wallets/me", wh.GetWallet)
	e.POST("/wallets/me/deposits", wh.Deposit)
	e.POST("/wallets/me/withdrawals", wh.RequestWithdraw)
	e.POST("/withdrawals/:reference_code/settle", wh.SettleWithdraw)
	e.GET("/wallets/me/transactions", wh.ListTransactions)
	e.GET("/transactions/:reference_code", wh.GetTransaction)
	e.GET("/wallets/me/reconciliation", wh.Reconcile)

	e.POST("/loans", lh.CreateLoan)
	e.GET("/loans", lh.ListFundingLoans)
	e.GET("/loans/:loan_code", lh.GetLoan)
	e.POST("/loans/:loan_code/submit", lh.SubmitLoan)
	e.POST("/loans/:loan_code/cancel", lh.CancelLoan)
	e.POST("/loans/:loan_code/review", lh.ReviewLoan)
	e.GET("/loans/:loan_code/schedule", lh.GetSchedule)
	e.POST("/loans/:loan_code/schedule/regenerate", lh.RegenerateSchedule)
	e.GET("/loans/:loan_code/repayments", rh.ListHistory)

	e.POST("/investments", ih.CreateInvestment)
	e.GET("/investments", ih.ListInvestments)
	e.GET("/investments/:investment_code", ih.GetInvestment)
	e.GET("/investments/:investment_code/returns", ih.ListReturns)

	e.POST("/repayments/schedules/:schedule_id/pay", rh.PayInstallment)
	e.GET("/repayments/upcoming", rh.ListUpcoming)
	e.GET("/repayments/overdue", rh.ListOverdue)
	e.POST("/repayments/scan-overdue", rh.ScanOverdue)

	if cfg.OverdueScanIntervalSecs > 0 {
		go overdueTicker(repaymentUc, time.Duration(cfg.OverdueScanIntervalSecs)*time.Second)
	}

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

func overdueTicker(uc *repaymentUC.Usecase, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for range t.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := uc.ScanOverdueSchedules(ctx); err != nil {
			log.Printf("overdue scan: %v", err)
		}
		cancel()
	}
}
