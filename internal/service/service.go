// Package service holds the use cases of mobilities, attachments, templates,
// reports and batch letter generation. It returns the domain errors of
// package model; the transport decides how to present them.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
)

var tracer = otel.Tracer("mobilityapi/internal/service")

// endSpan records err, if any, on span and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// FileResult is a generated or stored file ready to be sent to a client.
type FileResult struct {
	Filename    string
	ContentType string
	Content     []byte
	// Count is the number of documents packed into an archive.
	Count int
}

// notFound turns a missing row into model.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

type refCheck struct {
	ref model.Reference
	id  uuid.UUID
}

// requireRefs fails with model.ErrNotFound naming the first missing reference.
func requireRefs(ctx context.Context, refs repository.ReferenceRepository, checks ...refCheck) error {
	for _, c := range checks {
		ok, err := refs.Exists(ctx, c.ref, c.id)
		if err != nil {
			return fmt.Errorf("check %s: %w", c.ref, err)
		}
		if !ok {
			return fmt.Errorf("%s %s: %w", c.ref, c.id, model.ErrNotFound)
		}
	}
	return nil
}

func validInterval(from, to time.Time) error {
	if !(model.Interval{InitialDate: from, FinalDate: to}).Valid() {
		return model.ErrInvalidInterval
	}
	return nil
}

type mobilityRepos map[model.Category]repository.MobilityRepository

func byKind(repos []repository.MobilityRepository) mobilityRepos {
	m := make(mobilityRepos, len(repos))
	for _, r := range repos {
		m[r.Kind()] = r
	}
	return m
}

func (m mobilityRepos) get(kind model.Category) (repository.MobilityRepository, error) {
	r, ok := m[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a mobility kind", model.ErrInvalidSlot, kind)
	}
	return r, nil
}
