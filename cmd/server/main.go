package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ikhfad/sporton-backend/internal/config"
	"github.com/ikhfad/sporton-backend/internal/es"
	"github.com/ikhfad/sporton-backend/internal/httpserver"
	"github.com/ikhfad/sporton-backend/internal/logging"
	"github.com/ikhfad/sporton-backend/internal/middleware/loggingmw"
	"github.com/ikhfad/sporton-backend/internal/mykafka"
	"github.com/ikhfad/sporton-backend/internal/repo"
	"github.com/ikhfad/sporton-backend/internal/service"
	"github.com/ikhfad/sporton-backend/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	assets, err := storage.New(cfg.UPLOAD_DIR)
	if err != nil {
		log.Fatalf("upload dir init failed: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer(strings.Split(cfg.KAFKA_ADDRESS, ","), "shop_events")
	}

	r := &repo.GormRepo{DB: db}
	jwtSecret := []byte(cfg.JWT_SECRET)

	catalogSvc := &service.CatalogService{Repo: r, Assets: assets}
	deps := &httpserver.Deps{
		JWTSecret: jwtSecret,
		UploadDir: cfg.UPLOAD_DIR,
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{Repo: r, JWTSecret: jwtSecret},
		},
		CategoryHandler: &httpserver.CategoryHTTP{
			Svc: catalogSvc, Assets: assets, Producer: producer,
		},
		ProductHandler: &httpserver.ProductHTTP{
			Svc: catalogSvc, Assets: assets, Producer: producer,
		},
		BankHandler: &httpserver.BankHTTP{
			Svc: &service.BankService{Repo: r},
		},
		TransactionHandler: &httpserver.TransactionHTTP{
			Svc:    &service.TransactionService{Repo: r, Assets: assets},
			Assets: assets, Producer: producer,
		},
	}

	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
		deps.SearchHandler = &httpserver.SearchHTTP{ES: esClient, Index: "products"}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         ":" + cfg.PORT,
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
