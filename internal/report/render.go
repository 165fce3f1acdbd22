package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"mobilityapi/internal/model"
)

var columns = []string{"Residente", "Hospital", "Especialidad", "Servicio", "Inicio", "Fin", "Cancelada"}

func row(v model.PlacementView) []string {
	canceled := "No"
	if v.Canceled {
		canceled = "Sí"
	}
	return []string{
		v.Student.FullName(),
		v.Hospital.Name,
		v.Specialty.Name,
		v.RotationService.Name,
		v.InitialDate.Format(model.DateLayout),
		v.FinalDate.Format(model.DateLayout),
		canceled,
	}
}

var pdfWidths = []float64{58, 52, 40, 40, 26, 26, 22}

// RenderPDF lays out one titled table per group on a landscape A4 document.
func RenderPDF(title string, groups []Group) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(title), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	for _, g := range groups {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, tr(fmt.Sprintf("%s (%d)", g.Label, len(g.Members))))
		pdf.Ln(9)

		pdf.SetFont("Arial", "B", 9)
		for i, c := range columns {
			pdf.CellFormat(pdfWidths[i], 7, tr(c), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, m := range g.Members {
			for i, cell := range row(m) {
				pdf.CellFormat(pdfWidths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderXLSX writes every group on a single sheet, a label row above its members.
func RenderXLSX(title string, groups []Group) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reporte"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	r := 1
	set := func(col int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, r)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, value)
	}

	if err := set(1, title); err != nil {
		return nil, fmt.Errorf("write title: %w", err)
	}
	r += 2
	for _, g := range groups {
		if err := set(1, g.Label); err != nil {
			return nil, fmt.Errorf("write group: %w", err)
		}
		r++
		for i, c := range columns {
			if err := set(i+1, c); err != nil {
				return nil, fmt.Errorf("write header: %w", err)
			}
		}
		r++
		for _, m := range g.Members {
			for i, cell := range row(m) {
				if err := set(i+1, cell); err != nil {
					return nil, fmt.Errorf("write row: %w", err)
				}
			}
			r++
		}
		r++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
