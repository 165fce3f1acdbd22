// Package slot manages the named document slots of a record and keeps the
// files in storage consistent with the filenames the record holds.
//
// Mutations are two-phase and not atomic: the file side happens outside the
// record update, with explicit rollback of newly stored files when the
// record update fails.
package slot

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
	"mobilityapi/internal/storage"
)

// Upload is a file received for a slot.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// File is the content of an occupied slot.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Manager runs slot operations for one category.
type Manager struct {
	category model.Category
	repo     repository.SlotRepository
	files    storage.Storage
	log      *logrus.Entry
	newName  func(ext string) string
}

// NewManager returns a Manager storing the files of category in files.
func NewManager(category model.Category, repo repository.SlotRepository, files storage.Storage, log *logrus.Entry) *Manager {
	return &Manager{
		category: category,
		repo:     repo,
		files:    files,
		log:      log.WithField("category", string(category)),
		newName:  randomName,
	}
}

// randomName is 32 hex characters plus ext.
func randomName(ext string) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}

// Category returns the category the manager serves.
func (m *Manager) Category() model.Category {
	return m.category
}

func (m *Manager) documents(ctx context.Context, id uuid.UUID) (model.DocumentSet, error) {
	docs, err := m.repo.Documents(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("load documents: %w", err)
	}
	return docs, nil
}

func (m *Manager) checkKey(key model.SlotKey) error {
	if !m.category.Has(key) {
		return fmt.Errorf("%w: %q is not a %s slot", model.ErrInvalidSlot, key, m.category)
	}
	return nil
}

// Get returns the file held by the slot. An empty slot or a filename with no
// stored file both yield model.ErrDocumentNotFound.
func (m *Manager) Get(ctx context.Context, id uuid.UUID, key model.SlotKey) (*File, error) {
	if err := m.checkKey(key); err != nil {
		return nil, err
	}
	docs, err := m.documents(ctx, id)
	if err != nil {
		return nil, err
	}
	name, ok := docs.Slot(key)
	if !ok {
		return nil, model.ErrDocumentNotFound
	}

	rc, _, err := m.files.Get(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, model.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("read document: %w", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return &File{Name: name, ContentType: m.category.MediaType(), Content: content}, nil
}

// acceptable reports whether the declared media type names the category's format.
func (m *Manager) acceptable(declared string) bool {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return false
	}
	mt := mimetype.Lookup(mediaType)
	return mt != nil && mt.Is(m.category.MediaType())
}

// Set stores up in the slot and returns the new filename.
//
// The new file is written first, then the record. When the record update
// fails for any reason, including zero affected rows, the new file is
// removed again and the record keeps its previous value. The replaced file
// is deleted only once the record points at the new one.
func (m *Manager) Set(ctx context.Context, id uuid.UUID, key model.SlotKey, up Upload) (string, error) {
	if err := m.checkKey(key); err != nil {
		return "", err
	}
	if up.Reader == nil || !m.acceptable(up.ContentType) {
		return "", model.ErrInvalidFileType
	}
	docs, err := m.documents(ctx, id)
	if err != nil {
		return "", err
	}
	previous, hadPrevious := docs.Slot(key)

	ext := strings.ToLower(filepath.Ext(up.Filename))
	if ext == "" {
		ext = mimetype.Lookup(m.category.MediaType()).Extension()
	}
	name := m.newName(ext)

	size := up.Size
	if size <= 0 {
		size = -1
	}
	if _, err := m.files.Put(ctx, name, up.Reader, storage.PutObjectOptions{
		Size:        size,
		ContentType: m.category.MediaType(),
		Metadata:    map[string]string{"original-filename": up.Filename},
	}); err != nil {
		return "", fmt.Errorf("store document: %w", err)
	}

	n, err := m.repo.UpdateDocument(ctx, id, key, &name)
	if err == nil && n == 0 {
		err = model.ErrNotModified
	}
	if err != nil {
		if rbErr := m.files.Delete(ctx, name); rbErr != nil {
			m.log.WithError(rbErr).WithField("file", name).Error("slot rollback failed, orphaned file left in storage")
			return "", errors.Join(fmt.Errorf("update slot %s: %w", key, err), fmt.Errorf("rollback: %w", rbErr))
		}
		m.log.WithError(err).WithFields(logrus.Fields{"slot": string(key), "file": name}).Warn("slot update failed, stored file rolled back")
		return "", fmt.Errorf("update slot %s: %w", key, err)
	}

	if hadPrevious && previous != name {
		if err := m.files.Delete(ctx, previous); err != nil {
			m.log.WithError(err).WithField("file", previous).Error("replaced document could not be deleted")
		}
	}
	return name, nil
}

// Clear deletes the slot's file, if any, then empties the slot. Zero
// affected rows are reported as model.ErrNotModified, which includes
// clearing an already empty slot.
func (m *Manager) Clear(ctx context.Context, id uuid.UUID, key model.SlotKey) error {
	if err := m.checkKey(key); err != nil {
		return err
	}
	docs, err := m.documents(ctx, id)
	if err != nil {
		return err
	}
	if name, ok := docs.Slot(key); ok {
		if err := m.files.Delete(ctx, name); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
	}
	n, err := m.repo.UpdateDocument(ctx, id, key, nil)
	if err != nil {
		return fmt.Errorf("clear slot %s: %w", key, err)
	}
	if n == 0 {
		return model.ErrNotModified
	}
	return nil
}

// DeleteAll removes the file of every occupied slot. It runs before the
// owning record is deleted; files that are already gone are skipped.
func (m *Manager) DeleteAll(ctx context.Context, id uuid.UUID) error {
	docs, err := m.documents(ctx, id)
	if err != nil {
		return err
	}
	for key, name := range model.Occupied(m.category, docs) {
		if err := m.files.Delete(ctx, name); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		m.log.WithFields(logrus.Fields{"id": id.String(), "slot": string(key), "file": name}).Debug("document deleted")
	}
	return nil
}

// Read loads a whole file from the manager's storage.
func (m *Manager) Read(ctx context.Context, name string) ([]byte, error) {
	rc, _, err := m.files.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
