package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nebulashop/storefront/internal/catalog"
	"github.com/nebulashop/storefront/internal/config"
	"github.com/nebulashop/storefront/internal/es"
	"github.com/nebulashop/storefront/internal/handlers"
	"github.com/nebulashop/storefront/internal/logging"
	"github.com/nebulashop/storefront/internal/middleware/csrf"
	loggingmw "github.com/nebulashop/storefront/internal/middleware/logging"
	"github.com/nebulashop/storefront/internal/mykafka"
	"github.com/nebulashop/storefront/internal/service/search"
	"github.com/nebulashop/storefront/internal/service/token"
	"github.com/nebulashop/storefront/internal/simulate"
	httpserver "github.com/nebulashop/storefront/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	prod := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := search.IndexCatalog(ctx, esClient, "products", catalog.Products); err != nil {
		logger.Warn("catalog indexing failed, search degraded", "error", err)
	}
	cancel()

	var sim *simulate.Simulator
	if configuration.SIMULATE_ORDERS {
		sim = simulate.New(db, logger, 15*time.Second, 60*time.Second)
		if err := sim.TrackExisting(); err != nil {
			logger.Warn("simulator startup scan failed", "error", err)
		}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(csrf.Middleware(csrf.Config{
		SkipPaths: []string{
			"/api/v1/register",
			"/api/v1/login",
			"/api/v1/forgot-password",
			"/api/v1/reset-password",
		},
		Secure:    true,
	}))

	orderHandler := &handlers.OrderHandler{DB: db, Producer: prod, JWTSecret: jwtSecret}
	if sim != nil {
		orderHandler.Tracker = sim
	}

	deps := httpserver.Deps{
		DB: db,
		AuthHandler: &handlers.AuthHandler{
			DB:            db,
			JWTSecret:     jwtSecret,
			RefreshSecret: refreshSecret,
			Producer:      prod,
			BaseURL:       configuration.BASE_URL,
		},
		OrderHandler:   orderHandler,
		CommentHandler: &handlers.CommentHandler{DB: db, Producer: prod, JWTSecret: jwtSecret},
		ProfileHandler: &handlers.ProfileHandler{DB: db},
		ProductHandler: &handlers.ProductHandler{},
		SearchHandler:  &handlers.SearchHandler{ES: esClient, Index: "products"},
		TokenService:   &token.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("shutting down...")

	if sim != nil {
		sim.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
