package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mobilityapi/internal/model"
	"mobilityapi/internal/reconcile"
	"mobilityapi/internal/report"
	"mobilityapi/internal/repository"
)

// Report output formats.
const (
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// ReportQuery selects the placements of one kind to group.
type ReportQuery struct {
	Kind        model.Category
	Dimension   report.Dimension
	InitialDate time.Time
	FinalDate   time.Time
	Filters     report.Filters
}

// ReportService groups the placements of a kind for an interval. Canceled
// placements are part of reports.
type ReportService interface {
	Group(ctx context.Context, q ReportQuery) ([]report.Group, error)
	Export(ctx context.Context, q ReportQuery, format string) (*FileResult, error)
}

type reportService struct {
	repos   mobilityRepos
	rec     *reconcile.Reconciler
	grouper *report.Grouper
}

// NewReportService groups the placements of every kind in repos.
func NewReportService(grouper *report.Grouper, rec *reconcile.Reconciler, repos ...repository.MobilityRepository) ReportService {
	return &reportService{repos: byKind(repos), rec: rec, grouper: grouper}
}

func (s *reportService) Group(ctx context.Context, q ReportQuery) ([]report.Group, error) {
	repo, err := s.repos.get(q.Kind)
	if err != nil {
		return nil, err
	}
	if err := validInterval(q.InitialDate, q.FinalDate); err != nil {
		return nil, err
	}
	views, err := repo.ListViews(ctx, repository.PlacementQuery{
		InitialDate: q.InitialDate,
		FinalDate:   q.FinalDate,
		HospitalID:  q.Filters.HospitalID,
		SpecialtyID: q.Filters.SpecialtyID,
	})
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}
	if views, err = s.rec.Annotate(ctx, views); err != nil {
		return nil, err
	}
	return s.grouper.Group(q.Dimension, q.InitialDate, q.FinalDate, q.Filters, views)
}

var kindTitles = map[model.Category]string{
	model.CategoryObligatory: "Rotaciones obligatorias",
	model.CategoryOptional:   "Rotaciones optativas",
}

func (s *reportService) Export(ctx context.Context, q ReportQuery, format string) (res *FileResult, err error) {
	ctx, span := tracer.Start(ctx, "ReportService.Export", trace.WithAttributes(
		attribute.String("mobility.kind", string(q.Kind)),
		attribute.String("report.dimension", string(q.Dimension)),
		attribute.String("report.format", format),
	))
	defer func() { endSpan(span, err) }()

	groups, err := s.Group(ctx, q)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("%s por %s, %s a %s", kindTitles[q.Kind], q.Dimension.Label(),
		q.InitialDate.Format(model.DateLayout), q.FinalDate.Format(model.DateLayout))
	base := fmt.Sprintf("reporte-%s-%s-%s", q.Kind, q.Dimension, q.InitialDate.Format(model.DateLayout))

	var (
		content     []byte
		contentType string
	)
	switch format {
	case FormatPDF:
		content, err = report.RenderPDF(title, groups)
		contentType = model.MediaTypePDF
	case FormatXLSX:
		content, err = report.RenderXLSX(title, groups)
		contentType = model.MediaTypeXLSX
	case FormatJSON, "":
		format = FormatJSON
		content, err = json.Marshal(groups)
		contentType = "application/json"
	default:
		return nil, fmt.Errorf("%w: %q", report.ErrInvalidFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return &FileResult{Filename: base + "." + format, ContentType: contentType, Content: content, Count: len(groups)}, nil
}
