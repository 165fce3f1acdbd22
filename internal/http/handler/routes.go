package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"mobilityapi/internal/service"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Obligatory service.MobilityService
	Optional   service.MobilityService
	Attachment service.AttachmentService
	Template   service.TemplateService
	Report     service.ReportService
	Batch      service.BatchService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, g prometheus.Gatherer, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", Metrics(g))

	registerMobilities(app.Group("/obligatory-mobilities"), svc.Obligatory, svc.Batch)
	registerMobilities(app.Group("/optional-mobilities"), svc.Optional, svc.Batch)

	att := app.Group("/attachments")
	att.Get("/", ListAttachments(svc.Attachment))
	att.Post("/", CreateAttachment(svc.Attachment))
	// before /:id so "covering" is not read as an id
	att.Get("/covering", CoveringAttachments(svc.Attachment))
	att.Get("/:id", GetAttachment(svc.Attachment))
	att.Put("/:id", UpdateAttachment(svc.Attachment))
	att.Delete("/:id", DeleteAttachment(svc.Attachment))
	att.Get("/:id/placements", AttachmentPlacements(svc.Attachment))
	att.Get("/:id/documents", GetAttachmentDocument(svc.Attachment))
	att.Put("/:id/documents", UploadAttachmentDocument(svc.Attachment))
	att.Delete("/:id/documents", ClearAttachmentDocument(svc.Attachment))

	tpl := app.Group("/templates/:kind/:slot")
	tpl.Get("/", GetTemplate(svc.Template))
	tpl.Delete("/", DeleteTemplate(svc.Template))
	tpl.Get("/document", DownloadTemplate(svc.Template))
	tpl.Put("/document", UploadTemplate(svc.Template))

	app.Get("/reports/:kind/:dimension", GetReport(svc.Report))
	app.Post("/batches/:kind/:slot", GenerateBatch(svc.Batch))
}

func registerMobilities(r fiber.Router, svc service.MobilityService, batch service.BatchService) {
	r.Get("/", ListMobilities(svc))
	r.Post("/", CreateMobility(svc))
	r.Get("/:id", GetMobility(svc))
	r.Put("/:id", UpdateMobility(svc))
	r.Delete("/:id", DeleteMobility(svc))
	r.Patch("/:id/cancel", CancelMobility(svc))
	r.Patch("/:id/uncancel", UncancelMobility(svc))
	r.Get("/:id/documents", GetMobilityDocument(svc))
	r.Put("/:id/documents", UploadMobilityDocument(svc))
	r.Delete("/:id/documents", ClearMobilityDocument(svc))
	r.Get("/:id/letter", GenerateMobilityDocument(batch, svc.Kind()))
}
