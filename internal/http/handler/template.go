package handler

import (
	"github.com/gofiber/fiber/v2"

	"mobilityapi/internal/model"
	"mobilityapi/internal/service"
	"mobilityapi/internal/slot"
)

// templatePair reads the document kind and slot of a template route.
func templatePair(c *fiber.Ctx) (model.Category, model.SlotKey, error) {
	kind, err := paramKind(c)
	if err != nil {
		return "", "", err
	}
	key, err := slotKey(kind, c.Params("slot"))
	if err != nil {
		return "", "", err
	}
	return kind, key, nil
}

func GetTemplate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, key, err := templatePair(c)
		if err != nil {
			return respond(c, err)
		}
		t, err := svc.Get(c.UserContext(), kind, key)
		if err != nil {
			return respond(c, err)
		}
		return c.JSON(t)
	}
}

func DownloadTemplate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, key, err := templatePair(c)
		if err != nil {
			return respond(c, err)
		}
		f, err := svc.Download(c.UserContext(), kind, key)
		if err != nil {
			return respond(c, err)
		}
		return sendAttachment(c, f.Name, f.ContentType, f.Content)
	}
}

// UploadTemplate godoc
// @Summary Register or replace the DOCX template of a document kind and slot
// @Tags templates
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "obligatory-mobilities or optional-mobilities"
// @Param slot path string true "slot key, e.g. presentationOfficeDocument"
// @Param file formData file true "DOCX template"
// @Success 200 {object} model.Template
// @Failure 415 {object} errorPayload
// @Router /templates/{kind}/{slot}/document [put]
func UploadTemplate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, key, err := templatePair(c)
		if err != nil {
			return respond(c, err)
		}
		return withUpload(c, func(up slot.Upload) error {
			t, err := svc.Upload(c.UserContext(), kind, key, up)
			if err != nil {
				return respond(c, err)
			}
			return c.JSON(t)
		})
	}
}

func DeleteTemplate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, key, err := templatePair(c)
		if err != nil {
			return respond(c, err)
		}
		if err := svc.Delete(c.UserContext(), kind, key); err != nil {
			return respond(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
