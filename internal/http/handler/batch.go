package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"mobilityapi/internal/model"
	"mobilityapi/internal/service"
)

type batchRequest struct {
	NumberingStart   int    `json:"numberingStart" validate:"gte=1"`
	DocumentDate     string `json:"documentDate" validate:"omitempty,datetime=2006-01-02"`
	PresentationDate string `json:"presentationDate" validate:"omitempty,datetime=2006-01-02"`
	InitialDate      string `json:"initialDate" validate:"required,datetime=2006-01-02"`
	FinalDate        string `json:"finalDate" validate:"required,datetime=2006-01-02"`
	HospitalID       string `json:"hospitalId" validate:"omitempty,uuid"`
	SpecialtyID      string `json:"specialtyId" validate:"omitempty,uuid"`
}

// GenerateBatch godoc
// @Summary Merge a letter template with every active placement in scope
// @Description Letters are numbered by one counter starting at numberingStart
// @Description and packed into a zip archive.
// @Tags batches
// @Accept json
// @Produce application/zip
// @Param kind path string true "obligatory-mobilities or optional-mobilities"
// @Param slot path string true "template slot key"
// @Param request body batchRequest true "batch scope"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /batches/{kind}/{slot} [post]
func GenerateBatch(svc service.BatchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, key, err := templatePair(c)
		if err != nil {
			return respond(c, err)
		}
		var req batchRequest
		if err := bindBody(c, &req); err != nil {
			return respond(c, err)
		}
		f, err := svc.GenerateBatch(c.UserContext(), service.BatchRequest{
			DocumentKind:     kind,
			SlotKey:          key,
			NumberingStart:   req.NumberingStart,
			DocumentDate:     optionalDate(req.DocumentDate),
			PresentationDate: optionalDate(req.PresentationDate),
			InitialDate:      mustDate(req.InitialDate),
			FinalDate:        mustDate(req.FinalDate),
			HospitalID:       optionalID(req.HospitalID),
			SpecialtyID:      optionalID(req.SpecialtyID),
		})
		if err != nil {
			return respond(c, err)
		}
		c.Set("X-Document-Count", strconv.Itoa(f.Count))
		return sendAttachment(c, f.Filename, f.ContentType, f.Content)
	}
}

type documentQuery struct {
	Type             string `query:"type" validate:"required"`
	Number           int    `query:"number" validate:"gte=0"`
	DocumentDate     string `query:"documentDate" validate:"omitempty,datetime=2006-01-02"`
	PresentationDate string `query:"presentationDate" validate:"omitempty,datetime=2006-01-02"`
}

// GenerateMobilityDocument merges the template of one slot with a single
// placement of kind.
func GenerateMobilityDocument(svc service.BatchService, kind model.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		var q documentQuery
		if err := bindQuery(c, &q); err != nil {
			return respond(c, err)
		}
		key, err := slotKey(kind, q.Type)
		if err != nil {
			return respond(c, err)
		}
		f, err := svc.GenerateDocument(c.UserContext(), service.DocumentRequest{
			DocumentKind:     kind,
			SlotKey:          key,
			PlacementID:      id,
			Number:           q.Number,
			DocumentDate:     optionalDate(q.DocumentDate),
			PresentationDate: optionalDate(q.PresentationDate),
		})
		if err != nil {
			return respond(c, err)
		}
		return sendAttachment(c, f.Filename, f.ContentType, f.Content)
	}
}
