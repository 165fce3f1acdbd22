package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"mobilityapi/internal/model"
)

func day(s string) time.Time {
	t, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	norte   = model.Hospital{ID: uuid.New(), Name: "Hospital Norte"}
	angeles = model.Hospital{ID: uuid.New(), Name: "Ángeles"}
	cardio  = model.Specialty{ID: uuid.New(), Name: "Cardiología"}
	pedia   = model.Specialty{ID: uuid.New(), Name: "Pediatría"}
)

func placement(h model.Hospital, s model.Specialty, first, last, from, to string) model.PlacementView {
	return model.PlacementView{
		ID:          uuid.New(),
		InitialDate: day(from),
		FinalDate:   day(to),
		Hospital:    h,
		Specialty:   s,
		Student:     model.Student{ID: uuid.New(), FirstName: first, LastName: last, SpecialtyID: s.ID},
	}
}

func labels(groups []Group) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.Label)
	}
	return out
}

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("student")
	require.NoError(t, err)
	assert.Equal(t, DimensionStudent, d)

	_, err = ParseDimension("rotation")
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestGroup_ByHospital(t *testing.T) {
	late := placement(norte, cardio, "Ana", "López", "2024-05-01", "2024-05-31")
	early := placement(norte, cardio, "Luis", "Díaz", "2024-03-01", "2024-03-31")
	earlyShort := placement(norte, pedia, "Eva", "Ruiz", "2024-03-01", "2024-03-15")
	other := placement(angeles, pedia, "José", "Mora", "2024-04-01", "2024-04-30")
	outside := placement(angeles, pedia, "Raúl", "Soto", "2023-01-01", "2023-01-31")

	groups, err := NewGrouper("es").Group(DimensionHospital, day("2024-01-01"), day("2024-12-31"), Filters{},
		[]model.PlacementView{late, early, other, earlyShort, outside})
	require.NoError(t, err)

	// Accented labels sort with their base letter.
	assert.Equal(t, []string{"Ángeles", "Hospital Norte"}, labels(groups))
	require.Len(t, groups[0].Members, 1)
	assert.Equal(t, other.ID, groups[0].Members[0].ID)

	ids := []uuid.UUID{}
	for _, m := range groups[1].Members {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []uuid.UUID{earlyShort.ID, early.ID, late.ID}, ids)
}

func TestGroup_ByStudentOrdersGroupsByName(t *testing.T) {
	views := []model.PlacementView{
		placement(norte, cardio, "Zoe", "Álvarez", "2024-01-01", "2024-01-31"),
		placement(norte, cardio, "Ana", "Zamora", "2024-01-01", "2024-01-31"),
		placement(norte, cardio, "Ana", "álvarez", "2024-01-01", "2024-01-31"),
	}

	groups, err := NewGrouper("es").Group(DimensionStudent, day("2024-01-01"), day("2024-01-31"), Filters{}, views)
	require.NoError(t, err)
	// groups follow the member rule: last name, then first name
	assert.Equal(t, []string{"álvarez, Ana", "Álvarez, Zoe", "Zamora, Ana"}, labels(groups))
}

func TestGroup_FilteredSpecialtyIsAbsent(t *testing.T) {
	x := placement(norte, cardio, "Ana", "López", "2024-02-01", "2024-02-28")
	y := placement(norte, pedia, "Luis", "Díaz", "2024-02-01", "2024-02-28")

	groups, err := NewGrouper("es").Group(DimensionSpecialty, day("2024-01-01"), day("2024-12-31"),
		Filters{SpecialtyID: &cardio.ID}, []model.PlacementView{x, y})
	require.NoError(t, err)

	require.Len(t, groups, 1)
	assert.Equal(t, cardio.ID, groups[0].ID)
	assert.Equal(t, "Cardiología", groups[0].Label)
}

func TestGroup_HospitalFilterAndBoundaries(t *testing.T) {
	touching := placement(norte, cardio, "Ana", "López", "2023-12-01", "2024-01-01")
	elsewhere := placement(angeles, cardio, "Luis", "Díaz", "2024-01-01", "2024-01-31")

	groups, err := NewGrouper("es").Group(DimensionHospital, day("2024-01-01"), day("2024-12-31"),
		Filters{HospitalID: &norte.ID}, []model.PlacementView{touching, elsewhere})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, touching.ID, groups[0].Members[0].ID)
}

func TestGroup_Errors(t *testing.T) {
	g := NewGrouper("not a locale!")

	_, err := g.Group("rotation", day("2024-01-01"), day("2024-12-31"), Filters{}, nil)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = g.Group(DimensionHospital, day("2024-12-31"), day("2024-01-01"), Filters{}, nil)
	assert.ErrorIs(t, err, model.ErrInvalidInterval)

	groups, err := g.Group(DimensionHospital, day("2024-01-01"), day("2024-12-31"), Filters{}, nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestRenderPDF(t *testing.T) {
	groups := []Group{{ID: norte.ID, Label: "Hospital Norte", Members: []model.PlacementView{
		placement(norte, cardio, "José", "Peña", "2024-01-01", "2024-01-31"),
	}}}

	out, err := RenderPDF("Movilidades por hospital", groups)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderXLSX(t *testing.T) {
	groups := []Group{{ID: norte.ID, Label: "Hospital Norte", Members: []model.PlacementView{
		placement(norte, cardio, "José", "Peña", "2024-01-01", "2024-01-31"),
	}}}

	out, err := RenderXLSX("Movilidades por hospital", groups)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reporte")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Movilidades por hospital", rows[0][0])
	assert.Equal(t, "Hospital Norte", rows[2][0])
	assert.Equal(t, columns, rows[3])
	assert.Equal(t, []string{"José Peña", "Hospital Norte", "Cardiología", "", "2024-01-01", "2024-01-31", "No"}, rows[4])
}
