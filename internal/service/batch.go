package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mobilityapi/internal/merge"
	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
)

// BatchRequest selects the placements that receive a letter.
type BatchRequest struct {
	DocumentKind     model.Category
	SlotKey          model.SlotKey
	NumberingStart   int
	DocumentDate     time.Time
	PresentationDate time.Time
	InitialDate      time.Time
	FinalDate        time.Time
	HospitalID       *uuid.UUID
	SpecialtyID      *uuid.UUID
}

// DocumentRequest asks for the letter of a single placement.
type DocumentRequest struct {
	DocumentKind     model.Category
	SlotKey          model.SlotKey
	PlacementID      uuid.UUID
	Number           int
	DocumentDate     time.Time
	PresentationDate time.Time
}

// BatchService merges letter templates with placement data.
type BatchService interface {
	// GenerateBatch returns a zip holding one letter per non-canceled
	// placement in scope, numbered by one counter across all hospitals.
	GenerateBatch(ctx context.Context, req BatchRequest) (*FileResult, error)
	GenerateDocument(ctx context.Context, req DocumentRequest) (*FileResult, error)
}

type batchService struct {
	repos       mobilityRepos
	refs        repository.ReferenceRepository
	templates   TemplateService
	dates       *merge.DateFormatter
	tag         language.Tag
	archiveName string
	documents   *prometheus.CounterVec
	log         *logrus.Entry
}

// BatchOptions configure letter rendering.
type BatchOptions struct {
	Locale      string
	ArchiveName string
}

// NewBatchService registers the generated documents counter on reg.
func NewBatchService(templates TemplateService, refs repository.ReferenceRepository, opts BatchOptions, reg prometheus.Registerer, log *logrus.Entry, repos ...repository.MobilityRepository) (BatchService, error) {
	tag, err := language.Parse(opts.Locale)
	if err != nil {
		tag = language.Spanish
	}
	if opts.ArchiveName == "" {
		opts.ArchiveName = "documentos.zip"
	}
	s := &batchService{
		repos:       byKind(repos),
		refs:        refs,
		templates:   templates,
		dates:       merge.NewDateFormatter(opts.Locale),
		tag:         tag,
		archiveName: opts.ArchiveName,
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generated_documents_total",
				Help: "Total number of merged letters generated.",
			},
			[]string{"kind", "slot"},
		),
		log: log,
	}
	if err := reg.Register(s.documents); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *batchService) hospitals(ctx context.Context, id *uuid.UUID) ([]model.Hospital, error) {
	if id == nil {
		list, err := s.refs.ListHospitals(ctx)
		if err != nil {
			return nil, fmt.Errorf("list hospitals: %w", err)
		}
		return list, nil
	}
	h, err := s.refs.FindHospital(ctx, *id)
	if err != nil {
		return nil, fmt.Errorf("hospital %s: %w", *id, notFound(err))
	}
	return []model.Hospital{*h}, nil
}

func (s *batchService) GenerateBatch(ctx context.Context, req BatchRequest) (res *FileResult, err error) {
	ctx, span := tracer.Start(ctx, "BatchService.GenerateBatch", trace.WithAttributes(
		attribute.String("mobility.kind", string(req.DocumentKind)),
		attribute.String("template.slot", string(req.SlotKey)),
		attribute.Int("batch.numbering_start", req.NumberingStart),
	))
	defer func() { endSpan(span, err) }()

	if err := validInterval(req.InitialDate, req.FinalDate); err != nil {
		return nil, err
	}
	repo, err := s.repos.get(req.DocumentKind)
	if err != nil {
		return nil, err
	}
	tpl, err := s.templates.Load(ctx, req.DocumentKind, req.SlotKey)
	if err != nil {
		return nil, err
	}
	hospitals, err := s.hospitals(ctx, req.HospitalID)
	if err != nil {
		return nil, err
	}

	start := req.NumberingStart
	if start < 1 {
		start = 1
	}
	upper := cases.Upper(s.tag)
	batch := merge.NewBatch(start)
	for _, h := range hospitals {
		views, err := repo.ListViews(ctx, repository.PlacementQuery{
			InitialDate:     req.InitialDate,
			FinalDate:       req.FinalDate,
			HospitalID:      &h.ID,
			SpecialtyID:     req.SpecialtyID,
			ExcludeCanceled: true,
		})
		if err != nil {
			return nil, fmt.Errorf("list placements of hospital %s: %w", h.ID, err)
		}
		for _, v := range views {
			if v.Canceled {
				continue
			}
			fields := s.fields(upper, v, batch.Next(), req.DocumentDate, req.PresentationDate)
			doc, err := merge.Merge(tpl, fields)
			if err != nil {
				return nil, fmt.Errorf("merge placement %s: %w", v.ID, err)
			}
			if _, err := batch.Add(v.Specialty.Name, v.Student.FullName(), doc); err != nil {
				return nil, err
			}
			s.documents.WithLabelValues(string(req.DocumentKind), string(req.SlotKey)).Inc()
		}
	}

	content, err := batch.Close()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("batch.documents", batch.Count()))
	s.log.WithFields(logrus.Fields{
		"kind":      string(req.DocumentKind),
		"slot":      string(req.SlotKey),
		"hospitals": len(hospitals),
		"documents": batch.Count(),
		"first":     start,
	}).Info("batch generated")

	return &FileResult{
		Filename:    s.archiveName,
		ContentType: model.MediaTypeZIP,
		Content:     content,
		Count:       batch.Count(),
	}, nil
}

func (s *batchService) GenerateDocument(ctx context.Context, req DocumentRequest) (res *FileResult, err error) {
	ctx, span := tracer.Start(ctx, "BatchService.GenerateDocument", trace.WithAttributes(
		attribute.String("mobility.kind", string(req.DocumentKind)),
		attribute.String("template.slot", string(req.SlotKey)),
		attribute.String("placement.id", req.PlacementID.String()),
	))
	defer func() { endSpan(span, err) }()

	repo, err := s.repos.get(req.DocumentKind)
	if err != nil {
		return nil, err
	}
	v, err := repo.FindView(ctx, req.PlacementID)
	if err != nil {
		return nil, notFound(err)
	}
	tpl, err := s.templates.Load(ctx, req.DocumentKind, req.SlotKey)
	if err != nil {
		return nil, err
	}

	n := req.Number
	if n < 1 {
		n = 1
	}
	doc, err := merge.Merge(tpl, s.fields(cases.Upper(s.tag), *v, n, req.DocumentDate, req.PresentationDate))
	if err != nil {
		return nil, fmt.Errorf("merge placement %s: %w", v.ID, err)
	}
	s.documents.WithLabelValues(string(req.DocumentKind), string(req.SlotKey)).Inc()

	return &FileResult{
		Filename:    merge.EntryName(n, v.Specialty.Name, v.Student.FullName()),
		ContentType: model.MediaTypeDOCX,
		Content:     doc,
		Count:       1,
	}, nil
}

// fields builds the placeholder values of one letter. Receiver, hospital and
// specialty names are upper-cased; dates are written out.
func (s *batchService) fields(upper cases.Caser, v model.PlacementView, n int, documentDate, presentationDate time.Time) map[string]string {
	f := map[string]string{
		"numero":                   strconv.Itoa(n),
		"principal.nombre":         upper.String(v.Hospital.PrincipalName),
		"principal.cargo":          upper.String(v.Hospital.PrincipalPosition),
		"hospital.nombre":          upper.String(v.Hospital.Name),
		"especialidad.nombre":      upper.String(v.Specialty.Name),
		"residente.nombre":         v.Student.FirstName,
		"residente.apellidos":      v.Student.LastName,
		"residente.nombreCompleto": v.Student.FullName(),
		"servicio.nombre":          v.RotationService.Name,
		"fecha.inicio":             s.dates.Text(v.InitialDate),
		"fecha.fin":                s.dates.Text(v.FinalDate),
	}
	if !documentDate.IsZero() {
		f["fecha.documento"] = s.dates.Text(documentDate)
	}
	if !presentationDate.IsZero() {
		f["fecha.presentacion"] = s.dates.Text(presentationDate)
	}
	return f
}
