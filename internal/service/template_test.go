package service

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mobilityapi/internal/model"
)

func TestTemplateService_UploadReplacesFile(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	first, err := w.Template.Upload(ctx, model.CategoryOptional, model.SlotSolicitude, docxUpload(t, "<w:p/>"))
	require.NoError(t, err)
	second, err := w.Template.Upload(ctx, model.CategoryOptional, model.SlotSolicitude, docxUpload(t, "<w:p></w:p>"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "one record per pair")
	assert.NotEqual(t, *first.Documents.Template, *second.Documents.Template)

	entries, err := os.ReadDir(w.roots[model.CategoryTemplate])
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, *second.Documents.Template, entries[0].Name())

	f, err := w.Template.Download(ctx, model.CategoryOptional, model.SlotSolicitude)
	require.NoError(t, err)
	assert.Equal(t, model.MediaTypeDOCX, f.ContentType)
	assert.Contains(t, documentXML(t, f.Content), "<w:p></w:p>")
}

func TestTemplateService_Validation(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	_, err := w.Template.Upload(ctx, model.CategoryOptional, model.SlotSolicitude, pdfUpload("%PDF"))
	assert.ErrorIs(t, err, model.ErrInvalidFileType)

	_, err = w.Template.Upload(ctx, model.CategoryObligatory, model.SlotSolicitude, docxUpload(t, "<w:p/>"))
	assert.ErrorIs(t, err, model.ErrInvalidSlot)

	_, err = w.Template.Upload(ctx, model.CategoryAttachment, model.SlotSolicitude, docxUpload(t, "<w:p/>"))
	assert.ErrorIs(t, err, model.ErrInvalidSlot)

	_, err = w.Template.Get(ctx, model.CategoryOptional, model.SlotEvaluation)
	assert.ErrorIs(t, err, model.ErrTemplateNotFound)
}

func TestTemplateService_LoadAndDelete(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	_, err := w.Template.Load(ctx, model.CategoryObligatory, model.SlotEvaluation)
	assert.ErrorIs(t, err, model.ErrTemplateNotFound)

	_, err = w.Template.Upload(ctx, model.CategoryObligatory, model.SlotEvaluation, docxUpload(t, "<w:p/>"))
	require.NoError(t, err)

	b, err := w.Template.Load(ctx, model.CategoryObligatory, model.SlotEvaluation)
	require.NoError(t, err)
	assert.NotEmpty(t, b)

	require.NoError(t, w.Template.Delete(ctx, model.CategoryObligatory, model.SlotEvaluation))
	entries, err := os.ReadDir(w.roots[model.CategoryTemplate])
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = w.Template.Load(ctx, model.CategoryObligatory, model.SlotEvaluation)
	assert.ErrorIs(t, err, model.ErrTemplateNotFound)
	assert.ErrorIs(t, w.Template.Delete(ctx, model.CategoryObligatory, model.SlotEvaluation), model.ErrTemplateNotFound)
}

func TestTemplateService_EmptyRecordIsNotATemplate(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)

	_, err := w.templates.Ensure(ctx, model.CategoryOptional, model.SlotAcceptance)
	require.NoError(t, err)

	_, err = w.Template.Load(ctx, model.CategoryOptional, model.SlotAcceptance)
	assert.ErrorIs(t, err, model.ErrTemplateNotFound)
}
