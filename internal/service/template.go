package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
	"mobilityapi/internal/slot"
)

// TemplateService manages the DOCX letter template of each (kind, slot) pair.
type TemplateService interface {
	Get(ctx context.Context, kind model.Category, key model.SlotKey) (*model.Template, error)
	Download(ctx context.Context, kind model.Category, key model.SlotKey) (*slot.File, error)
	// Upload registers or replaces the template file of the pair.
	Upload(ctx context.Context, kind model.Category, key model.SlotKey, up slot.Upload) (*model.Template, error)
	Delete(ctx context.Context, kind model.Category, key model.SlotKey) error
	// Load returns the template bytes, failing with model.ErrTemplateNotFound
	// when the pair has no usable file.
	Load(ctx context.Context, kind model.Category, key model.SlotKey) ([]byte, error)
}

type templateService struct {
	repo  repository.TemplateRepository
	slots *slot.Manager
	log   *logrus.Entry
}

func NewTemplateService(repo repository.TemplateRepository, slots *slot.Manager, log *logrus.Entry) TemplateService {
	return &templateService{repo: repo, slots: slots, log: log}
}

// checkPair accepts the slots of mobility kinds only.
func checkPair(kind model.Category, key model.SlotKey) error {
	if kind != model.CategoryObligatory && kind != model.CategoryOptional {
		return fmt.Errorf("%w: templates are not kept for %q", model.ErrInvalidSlot, kind)
	}
	if !kind.Has(key) {
		return fmt.Errorf("%w: %q is not a %s slot", model.ErrInvalidSlot, key, kind)
	}
	return nil
}

func (s *templateService) Get(ctx context.Context, kind model.Category, key model.SlotKey) (*model.Template, error) {
	if err := checkPair(kind, key); err != nil {
		return nil, err
	}
	t, err := s.repo.Find(ctx, kind, key)
	if err != nil {
		if errors.Is(notFound(err), model.ErrNotFound) {
			return nil, model.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("find template: %w", err)
	}
	return t, nil
}

func (s *templateService) Download(ctx context.Context, kind model.Category, key model.SlotKey) (*slot.File, error) {
	t, err := s.Get(ctx, kind, key)
	if err != nil {
		return nil, err
	}
	return s.slots.Get(ctx, t.ID, model.SlotTemplate)
}

func (s *templateService) Upload(ctx context.Context, kind model.Category, key model.SlotKey, up slot.Upload) (*model.Template, error) {
	if err := checkPair(kind, key); err != nil {
		return nil, err
	}
	t, err := s.repo.Ensure(ctx, kind, key)
	if err != nil {
		return nil, fmt.Errorf("ensure template: %w", err)
	}
	name, err := s.slots.Set(ctx, t.ID, model.SlotTemplate, up)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"kind": string(kind), "slot": string(key), "file": name}).Info("template uploaded")
	return s.Get(ctx, kind, key)
}

func (s *templateService) Delete(ctx context.Context, kind model.Category, key model.SlotKey) error {
	t, err := s.Get(ctx, kind, key)
	if err != nil {
		return err
	}
	if err := s.slots.DeleteAll(ctx, t.ID); err != nil {
		return fmt.Errorf("delete template file: %w", err)
	}
	n, err := s.repo.Delete(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if n == 0 {
		return model.ErrNotDeleted
	}
	return nil
}

func (s *templateService) Load(ctx context.Context, kind model.Category, key model.SlotKey) ([]byte, error) {
	f, err := s.Download(ctx, kind, key)
	if err != nil {
		if errors.Is(err, model.ErrDocumentNotFound) || errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrTemplateNotFound
		}
		return nil, err
	}
	return f.Content, nil
}
