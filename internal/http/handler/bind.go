package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"mobilityapi/internal/model"
	"mobilityapi/internal/slot"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// requestError is a malformed request, answered with 400.
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &requestError{code: code, message: message}
}

// respond writes err, which is either a requestError or a service error.
func respond(c *fiber.Ctx, err error) error {
	var re *requestError
	if errors.As(err, &re) {
		return writeError(c, fiber.StatusBadRequest, re.code, re.message)
	}
	return writeServiceError(c, err)
}

func check(dst any) error {
	if err := validate.Struct(dst); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]string, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, fe.Field())
			}
			return badRequest("INVALID_REQUEST", "invalid or missing fields: "+strings.Join(fields, ", "))
		}
		return badRequest("INVALID_REQUEST", "invalid request")
	}
	return nil
}

func bindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return badRequest("INVALID_QUERY", "invalid query parameters")
	}
	return check(dst)
}

func bindBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return badRequest("INVALID_BODY", "invalid request body")
	}
	return check(dst)
}

func paramID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, badRequest("INVALID_ID", "invalid id format")
	}
	return id, nil
}

// mustDate parses a value already checked by a datetime validation tag.
func mustDate(s string) time.Time {
	t, _ := model.ParseDate(s)
	return t
}

func optionalDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	return mustDate(s)
}

func optionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}

// intervalQuery is the inclusive date range and equality filters shared by
// listings and reports.
type intervalQuery struct {
	InitialDate string `query:"initialDate" validate:"required,datetime=2006-01-02"`
	FinalDate   string `query:"finalDate" validate:"required,datetime=2006-01-02"`
	HospitalID  string `query:"hospitalId" validate:"omitempty,uuid"`
	SpecialtyID string `query:"specialtyId" validate:"omitempty,uuid"`
}

func (q intervalQuery) dates() (time.Time, time.Time) {
	return mustDate(q.InitialDate), mustDate(q.FinalDate)
}

var kindsByPath = map[string]model.Category{
	"obligatory-mobilities": model.CategoryObligatory,
	"optional-mobilities":   model.CategoryOptional,
}

func paramKind(c *fiber.Ctx) (model.Category, error) {
	kind, ok := kindsByPath[c.Params("kind")]
	if !ok {
		return "", badRequest("INVALID_KIND", "unknown mobility kind")
	}
	return kind, nil
}

// slotKey validates raw against the slots of category.
func slotKey(category model.Category, raw string) (model.SlotKey, error) {
	if raw == "" {
		return "", badRequest("DOCUMENT_TYPE_REQUIRED", "document type is required")
	}
	return model.ParseSlotKey(category, raw)
}

// withUpload opens the multipart "file" field for the duration of fn.
func withUpload(c *fiber.Ctx, fn func(up slot.Upload) error) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	defer f.Close()

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return fn(slot.Upload{Filename: fh.Filename, ContentType: ct, Size: fh.Size, Reader: f})
}

// sendAttachment answers with content as a downloadable file.
func sendAttachment(c *fiber.Ctx, filename, contentType string, content []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Status(fiber.StatusOK).Send(content)
}
