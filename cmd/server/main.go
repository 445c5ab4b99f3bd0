package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/config"
	"github.com/adityasharma9336/society-management-system/internal/database"
	"github.com/adityasharma9336/society-management-system/internal/handler"
	"github.com/adityasharma9336/society-management-system/internal/middleware"
	"github.com/adityasharma9336/society-management-system/internal/queue"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/router"
	"github.com/adityasharma9336/society-management-system/internal/scheduler"
	"github.com/adityasharma9336/society-management-system/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	if cfg.Env == "dev" {
		if err := database.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("schema setup failed: %v", err)
		}
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and stats caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	if n, err := tokens.PurgeExpired(context.Background(), 30); err != nil {
		log.Printf("refresh token purge failed: %v", err)
	} else if n > 0 {
		log.Printf("purged %d expired refresh tokens", n)
	}
	visitors := repository.NewVisitorRepo(db)
	amenities := repository.NewAmenityRepo(db)
	bookings := repository.NewBookingRepo(db)
	polls := repository.NewPollRepo(db)
	bills := repository.NewBillRepo(db)
	complaints := repository.NewComplaintRepo(db)
	notices := repository.NewNoticeRepo(db)

	visitorSvc := service.NewVisitorService(visitors)
	bookingSvc := service.NewBookingService(bookings, amenities)
	pollSvc := service.NewPollService(polls)
	billingSvc := service.NewBillingService(bills, users, uint32(cfg.MaintAmountCents))

	authH := handler.NewAuthHandler(cfg, users, tokens)
	visitorH := handler.NewVisitorHandler(visitorSvc, rdb)
	amenityH := handler.NewAmenityHandler(amenities)
	bookingH := handler.NewBookingHandler(bookingSvc)
	pollH := handler.NewPollHandler(pollSvc)
	billH := handler.NewBillHandler(billingSvc)
	complaintH := handler.NewComplaintHandler(complaints)
	noticeH := handler.NewNoticeHandler(notices)

	e := echo.New()
	// Applied per route group, after JWTAuth, so the bucket key can
	// include the authenticated user.
	rl := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, rl)
	router.RegisterResident(e, router.ResidentHandlers{
		Visitors:   visitorH,
		Amenities:  amenityH,
		Bookings:   bookingH,
		Polls:      pollH,
		Bills:      billH,
		Complaints: complaintH,
		Notices:    noticeH,
	}, cfg.JWTSecret, rl)
	router.RegisterGate(e, visitorH, cfg.JWTSecret, rl)
	router.RegisterAdmin(e, router.AdminHandlers{
		Amenities:  amenityH,
		Bookings:   bookingH,
		Polls:      pollH,
		Bills:      billH,
		Complaints: complaintH,
		Notices:    noticeH,
	}, cfg.JWTSecret, rl)

	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()
	scheduler.StartMonthlyBilling(context.Background(), billingSvc)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
