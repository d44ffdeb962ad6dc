package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/scent_shop/internal/config"
	"github.com/Skotchmaster/scent_shop/internal/httpserver"
	"github.com/Skotchmaster/scent_shop/internal/mykafka"
	"github.com/Skotchmaster/scent_shop/internal/notify"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/Skotchmaster/scent_shop/internal/search"
	"github.com/Skotchmaster/scent_shop/internal/service"
	pkgdb "github.com/Skotchmaster/scent_shop/pkg/db"
	"github.com/Skotchmaster/scent_shop/pkg/logging"
	loggingmw "github.com/Skotchmaster/scent_shop/pkg/middleware/logging"
)

func main() {
	cfg := config.Load()
	decimal.MarshalJSONWithoutQuotes = true

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var sinks []notify.Sink
	var prod *mykafka.Producer
	if cfg.KafkaEnabled() {
		if err := mykafka.EnsureTopics(cfg.KafkaBrokers[0], cfg.OrderEventsTopic); err != nil {
			logger.Warn("kafka_topics_failed", "error", err)
		}
		prod, err = mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		sinks = append(sinks, &notify.KafkaSink{Producer: prod, Topic: cfg.OrderEventsTopic})
	}
	if cfg.MailEnabled() {
		sinks = append(sinks, &notify.EmailSink{
			Mailer: &notify.SMTPMailer{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				User:     cfg.SMTPUser,
				Password: cfg.SMTPPassword,
				From:     cfg.MailFrom,
			},
			AdminEmail: cfg.AdminEmail,
		})
	}
	if len(sinks) == 0 {
		sinks = append(sinks, &notify.LogSink{Log: logger})
	}
	queue := notify.NewQueue(cfg.NotifyBuffer, logger, sinks...)
	queue.Start()

	r := &repo.GormRepo{DB: db}
	catalog := &service.CatalogService{Repo: r}
	if cfg.SearchEnabled() {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("search_disabled", "error", err)
		} else {
			catalog.Index = search.NewIndex(es, cfg.ESIndex)
			go func() {
				if err := catalog.Reindex(context.Background(), logger); err != nil {
					logger.Warn("search_reindex_failed", "error", err)
				}
			}()
		}
	}

	e := echo.New()
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.Secure())
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		DB:               db,
		CatalogHandler:   &httpserver.CatalogHTTP{Svc: catalog},
		CartHandler:      &httpserver.CartHTTP{Svc: &service.CartService{Repo: r}},
		OrderHandler:     &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Events: queue}},
		AnalyticsHandler: &httpserver.AnalyticsHTTP{Svc: &service.AnalyticsService{Repo: r}},
		AccountHandler:   &httpserver.AccountHTTP{Svc: &service.AccountService{Repo: r}},
		BackOffice:       &httpserver.BackOfficeHTTP{Svc: &service.BackOfficeService{Repo: r, Events: queue}},
		JWTSecret:        cfg.JWTAccessSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := queue.Close(shutdownCtx); err != nil {
		logger.Error("notify_close_failed", "error", err)
	}
	if prod != nil {
		if err := prod.Close(); err != nil {
			logger.Error("kafka_close_failed", "error", err)
		}
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_failed", "error", err)
	}

	logger.Info("shutdown complete")
}
