package handler

import (
	"github.com/gofiber/fiber/v2"

	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
	"mobilityapi/internal/service"
	"mobilityapi/internal/slot"
)

type attachmentRequest struct {
	HospitalID  string `json:"hospitalId" validate:"required,uuid"`
	SpecialtyID string `json:"specialtyId" validate:"required,uuid"`
	InitialDate string `json:"initialDate" validate:"required,datetime=2006-01-02"`
	FinalDate   string `json:"finalDate" validate:"required,datetime=2006-01-02"`
}

func (r attachmentRequest) input() service.AttachmentInput {
	return service.AttachmentInput{
		HospitalID:  *optionalID(r.HospitalID),
		SpecialtyID: *optionalID(r.SpecialtyID),
		InitialDate: mustDate(r.InitialDate),
		FinalDate:   mustDate(r.FinalDate),
	}
}

// coveringQuery names one hospital and specialty, unlike a listing where
// both are optional.
type coveringQuery struct {
	InitialDate string `query:"initialDate" validate:"required,datetime=2006-01-02"`
	FinalDate   string `query:"finalDate" validate:"required,datetime=2006-01-02"`
	HospitalID  string `query:"hospitalId" validate:"required,uuid"`
	SpecialtyID string `query:"specialtyId" validate:"required,uuid"`
}

// ListAttachments godoc
// @Summary List attachments overlapping an interval
// @Tags attachments
// @Produce json
// @Param initialDate query string true "YYYY-MM-DD"
// @Param finalDate query string true "YYYY-MM-DD"
// @Param hospitalId query string false "hospital id"
// @Param specialtyId query string false "specialty id"
// @Success 200 {array} model.Attachment
// @Router /attachments [get]
func ListAttachments(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q intervalQuery
		if err := bindQuery(c, &q); err != nil {
			return respond(c, err)
		}
		from, to := q.dates()
		atts, err := svc.List(c.UserContext(), repository.AttachmentQuery{
			InitialDate: from,
			FinalDate:   to,
			HospitalID:  optionalID(q.HospitalID),
			SpecialtyID: optionalID(q.SpecialtyID),
		})
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(atts)
	}
}

// CoveringAttachments godoc
// @Summary Attachments of a hospital and specialty overlapping an interval
// @Tags attachments
// @Produce json
// @Param initialDate query string true "YYYY-MM-DD"
// @Param finalDate query string true "YYYY-MM-DD"
// @Param hospitalId query string true "hospital id"
// @Param specialtyId query string true "specialty id"
// @Success 200 {array} model.Attachment
// @Router /attachments/covering [get]
func CoveringAttachments(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q coveringQuery
		if err := bindQuery(c, &q); err != nil {
			return respond(c, err)
		}
		atts, err := svc.Covering(c.UserContext(),
			*optionalID(q.HospitalID), *optionalID(q.SpecialtyID),
			mustDate(q.InitialDate), mustDate(q.FinalDate))
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(atts)
	}
}

func CreateAttachment(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req attachmentRequest
		if err := bindBody(c, &req); err != nil {
			return respond(c, err)
		}
		a, err := svc.Create(c.UserContext(), req.input())
		if err != nil {
			return respond(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

func GetAttachment(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		a, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(a)
	}
}

func UpdateAttachment(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		var req attachmentRequest
		if err := bindBody(c, &req); err != nil {
			return respond(c, err)
		}
		a, err := svc.Update(c.UserContext(), id, req.input())
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(a)
	}
}

func DeleteAttachment(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return respond(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AttachmentPlacements godoc
// @Summary Placements of every kind covered by an attachment
// @Tags attachments
// @Produce json
// @Param id path string true "attachment id"
// @Success 200 {array} model.PlacementView
// @Failure 404 {object} errorPayload
// @Router /attachments/{id}/placements [get]
func AttachmentPlacements(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		views, err := svc.Placements(c.UserContext(), id)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(views)
	}
}

func GetAttachmentDocument(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		key, err := slotKey(model.CategoryAttachment, c.Query("type"))
		if err != nil {
			return respond(c, err)
		}
		f, err := svc.GetDocument(c.UserContext(), id, key)
		if err != nil {
			return respond(c, err)
		}
		return sendAttachment(c, f.Name, f.ContentType, f.Content)
	}
}

func UploadAttachmentDocument(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		key, err := slotKey(model.CategoryAttachment, c.Query("type"))
		if err != nil {
			return respond(c, err)
		}
		return withUpload(c, func(up slot.Upload) error {
			a, err := svc.SetDocument(c.UserContext(), id, key, up)
			if err != nil {
				return respond(c, err)
			}
			return c.JSON(a)
		})
	}
}

func ClearAttachmentDocument(svc service.AttachmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		key, err := slotKey(model.CategoryAttachment, c.Query("type"))
		if err != nil {
			return respond(c, err)
		}
		a, err := svc.ClearDocument(c.UserContext(), id, key)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(a)
	}
}
