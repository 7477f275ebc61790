package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v79"

	authHandler "github.com/beautylounge/salon-booking-service/internal/api/handlers/auth"
	bookingsHandler "github.com/beautylounge/salon-booking-service/internal/api/handlers/bookings"
	contactHandler "github.com/beautylounge/salon-booking-service/internal/api/handlers/contact"
	createBookingHandler "github.com/beautylounge/salon-booking-service/internal/api/handlers/create_booking"
	getAvailabilitiesHandler "github.com/beautylounge/salon-booking-service/internal/api/handlers/get_availabilities"
	menuHandler "github.com/beautylounge/salon-booking-service/internal/api/handlers/menu"
	paymentsHandler "github.com/beautylounge/salon-booking-service/internal/api/handlers/payments"
	scheduleHandler "github.com/beautylounge/salon-booking-service/internal/api/handlers/schedule"
	"github.com/beautylounge/salon-booking-service/internal/api/middleware"
	"github.com/beautylounge/salon-booking-service/internal/availability"
	"github.com/beautylounge/salon-booking-service/internal/config"
	"github.com/beautylounge/salon-booking-service/internal/infra/sessions"
	bookingRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/booking"
	menuRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/menu"
	scheduleRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/schedule"
	userRepo "github.com/beautylounge/salon-booking-service/internal/infra/storage/user"
	"github.com/beautylounge/salon-booking-service/internal/mailer"
	authService "github.com/beautylounge/salon-booking-service/internal/service/auth"
	bookingsService "github.com/beautylounge/salon-booking-service/internal/service/bookings"
	menuService "github.com/beautylounge/salon-booking-service/internal/service/menu"
	paymentsService "github.com/beautylounge/salon-booking-service/internal/service/payments"
	scheduleService "github.com/beautylounge/salon-booking-service/internal/service/schedule"
	createBookingUC "github.com/beautylounge/salon-booking-service/internal/usecase/create_booking"
	getAvailabilitiesUC "github.com/beautylounge/salon-booking-service/internal/usecase/get_availabilities"
	"github.com/beautylounge/salon-booking-service/pkg/dbmetrics"
	"github.com/beautylounge/salon-booking-service/pkg/logger"
	"github.com/beautylounge/salon-booking-service/pkg/metrics"
	"github.com/beautylounge/salon-booking-service/pkg/simpletxmanager"
	"github.com/beautylounge/salon-booking-service/pkg/txmanager"
	"github.com/beautylounge/salon-booking-service/pkg/types"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting salon-booking-service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)

	stripe.Key = cfg.Stripe.SecretKey
	if cfg.Stripe.SecretKey == "" {
		log.Warn("Stripe secret key is not configured, card payments will fail")
	}

	// Slot computation runs in the salon's local timezone. The identifier is
	// validated at config load.
	salonLocation, err := time.LoadLocation(cfg.Salon.Timezone)
	if err != nil {
		log.Fatal("Failed to load salon timezone: %v", err)
	}
	engine := availability.NewEngine(availability.Config{
		Timezone:      salonLocation,
		ClosedWeekday: time.Weekday(*cfg.Salon.ClosedWeekday),
		LunchStart:    types.TimeString(cfg.Salon.LunchStart),
		LunchEnd:      types.TimeString(cfg.Salon.LunchEnd),
	})
	log.Info("Availability engine initialized (timezone=%s, closed_weekday=%d, lunch=%s-%s)",
		cfg.Salon.Timezone, *cfg.Salon.ClosedWeekday, cfg.Salon.LunchStart, cfg.Salon.LunchEnd)

	// The mailer is optional; without SES credentials every send fails softly
	// and the failure is logged where it happens.
	mailClient, err := mailer.NewClient(
		cfg.Email.Region,
		cfg.Email.AccessKeyID,
		cfg.Email.SecretAccessKey,
		cfg.Email.Sender,
		log,
	)
	if err != nil {
		log.Warn("Mailer is not configured, emails will not be sent: %v", err)
	}

	var (
		bookingRepository  *bookingRepo.Repository
		menuRepository     *menuRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		userRepository     *userRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		menuRepository = menuRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB, log)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		menuRepository = menuRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db, log)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	sessionStore := sessions.NewStore(redisClient, cfg.Redis.SessionsPrefix, cfg.Redis.SessionTTL())

	authSvc := authService.NewService(
		userRepository,
		sessionStore,
		mailClient,
		authService.Config{
			BcryptCost:    cfg.Auth.BcryptCost,
			ResetTokenTTL: cfg.Auth.ResetTokenTTL(),
			PublicBaseURL: cfg.Salon.PublicBaseURL,
		},
		log,
	)
	menuSvc := menuService.NewService(menuRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		engine,
		txMgr,
		mailClient,
		log,
	)
	paymentsSvc := paymentsService.NewService(
		bookingRepository,
		engine,
		mailClient,
		paymentsService.Config{
			Currency:   cfg.Stripe.Currency,
			SuccessURL: cfg.Stripe.SuccessURL,
			CancelURL:  cfg.Stripe.CancelURL,
			AdminEmail: cfg.Salon.AdminEmail,
		},
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		menuRepository,
		scheduleRepository,
		engine,
		txMgr,
		mailClient,
		cfg.Salon.AdminEmail,
		log,
	)
	getAvailabilitiesUseCase := getAvailabilitiesUC.NewUseCase(
		menuRepository,
		scheduleRepository,
		bookingRepository,
		engine,
		log,
	)

	getAvailabilities := getAvailabilitiesHandler.NewHandler(getAvailabilitiesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, salonLocation, log)
	bookings := bookingsHandler.NewHandler(bookingSvc, log)
	schedule := scheduleHandler.NewHandler(scheduleSvc, log)
	menu := menuHandler.NewHandler(menuSvc, log)
	auth := authHandler.NewHandler(authSvc, authHandler.Config{
		CookieSecure: cfg.Auth.SessionCookieSecure,
		CookieTTL:    cfg.Redis.SessionTTL(),
	}, log)
	payments := paymentsHandler.NewHandler(paymentsSvc, cfg.Stripe.WebhookSecret, log)
	contact := contactHandler.NewHandler(mailClient, cfg.Salon.AdminEmail, log)

	authMW := middleware.NewAuth(sessionStore, userRepository, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/availabilities", getAvailabilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/menu/categories", menu.HandleListCategories).Methods(http.MethodGet)
	api.HandleFunc("/menu/items", menu.HandleListItems).Methods(http.MethodGet)
	api.HandleFunc("/menu/items/{id}", menu.HandleGetItem).Methods(http.MethodGet)
	api.HandleFunc("/contact", contact.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/webhook", payments.HandleWebhook).Methods(http.MethodPost)
	api.HandleFunc("/auth/signup", auth.HandleSignup).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", auth.HandleSignin).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-email", auth.HandleVerifyEmail).Methods(http.MethodPost)
	api.HandleFunc("/auth/request-reset", auth.HandleRequestReset).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", auth.HandleResetPassword).Methods(http.MethodPost)

	// Guests can book; a session attaches the booking to the account.
	api.Handle("/bookings", authMW.Optional(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)

	// Routes that require a session.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMW.Required)
	protected.HandleFunc("/auth/me", auth.HandleMe).Methods(http.MethodGet)
	protected.HandleFunc("/auth/logout", auth.HandleLogout).Methods(http.MethodPost)
	protected.HandleFunc("/me/bookings", bookings.HandleMyBookings).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", bookings.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", bookings.HandleCancel).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{id}/checkout", payments.HandleCheckout).Methods(http.MethodPost)

	// Back-office routes.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMW.AdminOnly)
	admin.HandleFunc("/bookings", bookings.HandleAdminList).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", bookings.HandleAdminUpdateStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id}/reschedule", bookings.HandleAdminReschedule).Methods(http.MethodPost)
	admin.HandleFunc("/schedule", schedule.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/schedule", schedule.HandleUpsert).Methods(http.MethodPut)
	admin.HandleFunc("/schedule", schedule.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/menu/items", menu.HandleCreateItem).Methods(http.MethodPost)
	admin.HandleFunc("/menu/items/{id}", menu.HandleUpdateItem).Methods(http.MethodPut)
	admin.HandleFunc("/menu/items/{id}", menu.HandleDeleteItem).Methods(http.MethodDelete)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
