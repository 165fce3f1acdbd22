package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"mobilityapi/docs"
	"mobilityapi/internal/config"
	"mobilityapi/internal/database"
	"mobilityapi/internal/database/migration"
	handlers "mobilityapi/internal/http/handler"
	"mobilityapi/internal/http/middleware"
	"mobilityapi/internal/logging"
	"mobilityapi/internal/model"
	"mobilityapi/internal/otel"
	"mobilityapi/internal/reconcile"
	"mobilityapi/internal/report"
	"mobilityapi/internal/repository/postgres"
	"mobilityapi/internal/service"
	"mobilityapi/internal/slot"
	"mobilityapi/internal/storage"
)

// @title Resident Mobility API
// @version 1.0
// @description Mobilities, attachments, letter templates, reports and letter batches.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Default().WithError(err).Fatal("failed to load configuration")
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.Location())
	log := logging.Component(logger, "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logrus.NewEntry(logger))
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, logging.Component(logger, "database"))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logrus.NewEntry(logger), cfg.Database.Host); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	roots, err := storage.NewRoots(cfg.Storage, cfg.MinIO)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize storage")
	}
	files := func(c model.Category) storage.Storage {
		s, err := roots.For(c)
		if err != nil {
			log.WithError(err).Fatal("missing storage root")
		}
		return s
	}

	refs := postgres.NewReferencePostgres(db)
	obligatory := postgres.NewObligatoryMobilityPostgres(db)
	optional := postgres.NewOptionalMobilityPostgres(db)
	attachments := postgres.NewAttachmentPostgres(db)
	templates := postgres.NewTemplatePostgres(db)

	slotLog := logging.Component(logger, "slot")
	svcLog := logging.Component(logger, "service")
	rec := reconcile.New(attachments, obligatory, optional)

	templateSvc := service.NewTemplateService(templates,
		slot.NewManager(model.CategoryTemplate, templates, files(model.CategoryTemplate), slotLog), svcLog)
	batchSvc, err := service.NewBatchService(templateSvc, refs,
		service.BatchOptions{Locale: cfg.Locale, ArchiveName: cfg.ArchiveName},
		prometheus.DefaultRegisterer, svcLog, obligatory, optional)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize batch service")
	}

	svc := handlers.Services{
		Obligatory: service.NewMobilityService(obligatory, refs,
			slot.NewManager(model.CategoryObligatory, obligatory, files(model.CategoryObligatory), slotLog), rec, svcLog),
		Optional: service.NewMobilityService(optional, refs,
			slot.NewManager(model.CategoryOptional, optional, files(model.CategoryOptional), slotLog), rec, svcLog),
		Attachment: service.NewAttachmentService(attachments, refs,
			slot.NewManager(model.CategoryAttachment, attachments, files(model.CategoryAttachment), slotLog), rec, svcLog),
		Template: templateSvc,
		Report:   service.NewReportService(report.NewGrouper(cfg.Locale), rec, obligatory, optional),
		Batch:    batchSvc,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
	})

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.WithError(err).Fatal("failed to register http metrics")
	}
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logging.Component(logger, "http")))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, prometheus.DefaultGatherer, svc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("listening")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
