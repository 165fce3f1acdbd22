package handler

import (
	"github.com/gofiber/fiber/v2"

	"mobilityapi/internal/report"
	"mobilityapi/internal/service"
)

type reportQuery struct {
	intervalQuery
	Format string `query:"format" validate:"omitempty,oneof=json pdf xlsx"`
}

// GetReport godoc
// @Summary Group the placements of a kind by hospital, student or specialty
// @Tags reports
// @Produce json,application/pdf
// @Param kind path string true "obligatory-mobilities or optional-mobilities"
// @Param dimension path string true "hospital, student or specialty"
// @Param initialDate query string true "YYYY-MM-DD"
// @Param finalDate query string true "YYYY-MM-DD"
// @Param hospitalId query string false "hospital id"
// @Param specialtyId query string false "specialty id"
// @Param format query string false "json, pdf or xlsx"
// @Success 200 {array} report.Group
// @Failure 400 {object} errorPayload
// @Router /reports/{kind}/{dimension} [get]
func GetReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := paramKind(c)
		if err != nil {
			return respond(c, err)
		}
		dim, err := report.ParseDimension(c.Params("dimension"))
		if err != nil {
			return respond(c, err)
		}
		var q reportQuery
		if err := bindQuery(c, &q); err != nil {
			return respond(c, err)
		}
		from, to := q.dates()
		rq := service.ReportQuery{
			Kind:        kind,
			Dimension:   dim,
			InitialDate: from,
			FinalDate:   to,
			Filters: report.Filters{
				HospitalID:  optionalID(q.HospitalID),
				SpecialtyID: optionalID(q.SpecialtyID),
			},
		}

		if q.Format == "" || q.Format == service.FormatJSON {
			groups, err := svc.Group(c.UserContext(), rq)
			if err != nil {
				return respond(c, err)
			}
			return c.JSON(groups)
		}
		f, err := svc.Export(c.UserContext(), rq, q.Format)
		if err != nil {
			return respond(c, err)
		}
		return sendAttachment(c, f.Filename, f.ContentType, f.Content)
	}
}
