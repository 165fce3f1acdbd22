package model

import "errors"

// Domain error kinds. Callers match them with errors.Is; anything else that
// escapes a service is an internal failure.
var (
	ErrNotFound         = errors.New("record not found")
	ErrNotModified      = errors.New("record not modified")
	ErrNotDeleted       = errors.New("record not deleted")
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidFileType  = errors.New("invalid file type")
	ErrInvalidInterval  = errors.New("invalid interval")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidSlot      = errors.New("invalid document type")
)
