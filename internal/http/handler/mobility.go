package handler

import (
	"github.com/gofiber/fiber/v2"

	"mobilityapi/internal/repository"
	"mobilityapi/internal/service"
	"mobilityapi/internal/slot"
)

type mobilityRequest struct {
	StudentID         string `json:"studentId" validate:"required,uuid"`
	HospitalID        string `json:"hospitalId" validate:"required,uuid"`
	RotationServiceID string `json:"rotationServiceId" validate:"required,uuid"`
	InitialDate       string `json:"initialDate" validate:"required,datetime=2006-01-02"`
	FinalDate         string `json:"finalDate" validate:"required,datetime=2006-01-02"`
}

func (r mobilityRequest) input() service.MobilityInput {
	return service.MobilityInput{
		StudentID:         *optionalID(r.StudentID),
		HospitalID:        *optionalID(r.HospitalID),
		RotationServiceID: *optionalID(r.RotationServiceID),
		InitialDate:       mustDate(r.InitialDate),
		FinalDate:         mustDate(r.FinalDate),
	}
}

type listMobilitiesQuery struct {
	intervalQuery
	ExcludeCanceled bool `query:"excludeCanceled"`
}

// ListMobilities godoc
// @Summary List mobilities overlapping an interval
// @Tags mobilities
// @Produce json
// @Param kind path string true "obligatory-mobilities or optional-mobilities"
// @Param initialDate query string true "YYYY-MM-DD"
// @Param finalDate query string true "YYYY-MM-DD"
// @Param hospitalId query string false "hospital id"
// @Param specialtyId query string false "specialty id"
// @Success 200 {array} model.PlacementView
// @Router /{kind} [get]
func ListMobilities(svc service.MobilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q listMobilitiesQuery
		if err := bindQuery(c, &q); err != nil {
			return respond(c, err)
		}
		from, to := q.dates()
		views, err := svc.List(c.UserContext(), repository.PlacementQuery{
			InitialDate:     from,
			FinalDate:       to,
			HospitalID:      optionalID(q.HospitalID),
			SpecialtyID:     optionalID(q.SpecialtyID),
			ExcludeCanceled: q.ExcludeCanceled,
		})
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(views)
	}
}

// CreateMobility godoc
// @Summary Create a mobility
// @Tags mobilities
// @Accept json
// @Produce json
// @Param kind path string true "obligatory-mobilities or optional-mobilities"
// @Success 201 {object} model.Mobility
// @Router /{kind} [post]
func CreateMobility(svc service.MobilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req mobilityRequest
		if err := bindBody(c, &req); err != nil {
			return respond(c, err)
		}
		m, err := svc.Create(c.UserContext(), req.input())
		if err != nil {
			return respond(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	}
}

func GetMobility(svc service.MobilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		m, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(m)
	}
}

func UpdateMobility(svc service.MobilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		var req mobilityRequest
		if err := bindBody(c, &req); err != nil {
			return respond(c, err)
		}
		m, err := svc.Update(c.UserContext(), id, req.input())
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(m)
	}
}

// CancelMobility godoc
// @Summary Cancel a mobility; canceling twice fails with NOT_MODIFIED
// @Tags mobilities
// @Param kind path string true "obligatory-mobilities or optional-mobilities"
// @Param id path string true "mobility id"
// @Success 200 {object} model.Mobility
// @Failure 409 {object} errorPayload
// @Router /{kind}/{id}/cancel [patch]
func CancelMobility(svc service.MobilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		m, err := svc.Cancel(c.UserContext(), id)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(m)
	}
}

func UncancelMobility(svc service.MobilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		m, err := svc.Uncancel(c.UserContext(), id)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(m)
	}
}

func DeleteMobility(svc service.MobilityService) fiber.Handler {
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

// GetMobilityDocument godoc
// @Summary Download the file of a document slot
// @Tags mobilities
// @Produce application/pdf
// @Param kind path string true "obligatory-mobilities or optional-mobilities"
// @Param id path string true "mobility id"
// @Param type query string true "slot key, e.g. acceptanceDocument"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /{kind}/{id}/documents [get]
func GetMobilityDocument(svc service.MobilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		key, err := slotKey(svc.Kind(), c.Query("type"))
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

// UploadMobilityDocument godoc
// @Summary Store a PDF in a document slot, replacing any previous file
// @Tags mobilities
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "obligatory-mobilities or optional-mobilities"
// @Param id path string true "mobility id"
// @Param type query string true "slot key"
// @Param file formData file true "PDF document"
// @Success 200 {object} model.Mobility
// @Failure 415 {object} errorPayload
// @Router /{kind}/{id}/documents [put]
func UploadMobilityDocument(svc service.MobilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		key, err := slotKey(svc.Kind(), c.Query("type"))
		if err != nil {
			return respond(c, err)
		}
		return withUpload(c, func(up slot.Upload) error {
			m, err := svc.SetDocument(c.UserContext(), id, key, up)
			if err != nil {
				return respond(c, err)
			}
			return c.JSON(m)
		})
	}
}

func ClearMobilityDocument(svc service.MobilityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)
		if err != nil {
			return respond(c, err)
		}
		key, err := slotKey(svc.Kind(), c.Query("type"))
		if err != nil {
			return respond(c, err)
		}
		m, err := svc.ClearDocument(c.UserContext(), id, key)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(m)
	}
}
