package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/PraveshYadav900/codenest-website/internal/chatbot"
	"github.com/PraveshYadav900/codenest-website/internal/gateway"
	h "github.com/PraveshYadav900/codenest-website/internal/http"
	"github.com/PraveshYadav900/codenest-website/internal/publisher"
	"github.com/PraveshYadav900/codenest-website/internal/repository"
	"github.com/PraveshYadav900/codenest-website/internal/service"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	MigrationsPath string

	RedisAddr    string
	KafkaBrokers []string

	PaytmMerchantID  string
	PaytmMerchantKey string
	PaytmWebsite     string
	PaytmCallbackURL string
	PaytmPaymentURL  string

	JWTSecret string
}

func loadConfig() (*Config, error) {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	baseURL := getEnv("APP_BASE_URL", "http://localhost:8080")

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         dbPort,
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "codenest"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./internal/repository/migrations"),

		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: []string{getEnv("KAFKA_BROKER", "localhost:9092")},

		PaytmMerchantID:  os.Getenv("PAYTM_MERCHANT_ID"),
		PaytmMerchantKey: os.Getenv("PAYTM_MERCHANT_KEY"),
		PaytmWebsite:     getEnv("PAYTM_WEBSITE", "WEBSTAGING"),
		PaytmCallbackURL: baseURL + "/api/v1/payments/callback",
		PaytmPaymentURL:  os.Getenv("PAYTM_PAYMENT_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	log.Println("storefront server starting...")

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Merchant credentials are checked here, not at first use: a server
	// that cannot sign payment forms should not come up at all.
	gw, err := gateway.New(gateway.Config{
		MerchantID:  cfg.PaytmMerchantID,
		MerchantKey: cfg.PaytmMerchantKey,
		Website:     cfg.PaytmWebsite,
		CallbackURL: cfg.PaytmCallbackURL,
		PaymentURL:  cfg.PaytmPaymentURL,
	})
	if err != nil {
		log.Fatalf("Payment gateway configuration error: %v", err)
	}

	creds := &repository.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.MigrationsPath,
	}

	repo, err := repository.NewRepository(creds)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	orderService := service.NewOrderService(repo)
	contactService := service.NewContactService(repo)
	bot := chatbot.New(chatbot.NewRedisStore(rdb))

	orderHandler := h.NewOrderHandler(orderService, cfg.RequestTimeout)
	paymentHandler := h.NewPaymentHandler(orderService, gw, cfg.RequestTimeout)
	contactHandler := h.NewContactHandler(contactService, cfg.RequestTimeout)
	chatbotHandler := h.NewChatbotHandler(bot)
	catalogHandler := h.NewCatalogHandler()

	// Outbox poller publishes payment audit events to Kafka.
	pollerCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	poller := publisher.NewPaymentEventPoller(repo, cfg.KafkaBrokers...)
	go poller.Run(pollerCtx)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Landing pages the gateway callback redirects the browser to.
	r.Get("/payment/success", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<h1>Payment successful</h1><p>Thank you, your order is confirmed.</p>"))
	})
	r.Get("/payment/failed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<h1>Payment failed</h1><p>The payment could not be completed.</p>"))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/packages", catalogHandler.ListPackages)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderHandler.CreateOrder)
			r.Get("/{order_id}", orderHandler.GetOrder)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/initiate", paymentHandler.InitiatePayment)
			r.Post("/callback", paymentHandler.Callback)
		})

		r.Post("/contact", contactHandler.Submit)
		r.Post("/chatbot", chatbotHandler.Chat)

		if cfg.JWTSecret != "" {
			authHandler := h.NewAuthHandler(service.NewAuthService(repo, cfg.JWTSecret), cfg.RequestTimeout)
			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
			})
		} else {
			log.Println("JWT_SECRET not set, auth routes disabled")
		}
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopPoller()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
