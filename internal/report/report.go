// Package report groups placements by hospital, student or specialty.
package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mobilityapi/internal/interval"
	"mobilityapi/internal/model"
)

// Dimension is the reference entity a report groups placements by.
type Dimension string

const (
	DimensionHospital  Dimension = "hospital"
	DimensionStudent   Dimension = "student"
	DimensionSpecialty Dimension = "specialty"
)

var (
	// ErrInvalidDimension is returned for an unknown grouping dimension.
	ErrInvalidDimension = errors.New("invalid report dimension")

	// ErrInvalidFormat is returned for an unknown export format.
	ErrInvalidFormat = errors.New("invalid report format")
)

var dimensionLabels = map[Dimension]string{
	DimensionHospital:  "hospital",
	DimensionStudent:   "residente",
	DimensionSpecialty: "especialidad",
}

// Label is the display name of d in report titles.
func (d Dimension) Label() string { return dimensionLabels[d] }

// ParseDimension validates a dimension name from a request path.
func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(s); d {
	case DimensionHospital, DimensionStudent, DimensionSpecialty:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDimension, s)
}

// Filters are optional equality constraints on the selected placements.
type Filters struct {
	HospitalID  *uuid.UUID
	SpecialtyID *uuid.UUID
}

// Group is one report section: the dimension entity and its sorted placements.
type Group struct {
	ID      uuid.UUID             `json:"id"`
	Label   string                `json:"label"`
	Members []model.PlacementView `json:"members"`
}

// Grouper orders labels and names with the collation rules of its locale.
type Grouper struct {
	tag language.Tag
}

// NewGrouper collates with locale, falling back to Spanish for unknown tags.
func NewGrouper(locale string) *Grouper {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return &Grouper{tag: tag}
}

// Group selects the views overlapping [from, to] that pass filters, groups
// them by dim and sorts members and groups. Groups left without members are
// not returned.
func (g *Grouper) Group(dim Dimension, from, to time.Time, filters Filters, views []model.PlacementView) ([]Group, error) {
	key, err := keyFunc(dim)
	if err != nil {
		return nil, err
	}
	if !(model.Interval{InitialDate: from, FinalDate: to}).Valid() {
		return nil, model.ErrInvalidInterval
	}

	var groups []*Group
	index := make(map[uuid.UUID]*Group)
	for _, v := range views {
		if !selected(v, from, to, filters) {
			continue
		}
		id, label := key(v)
		grp, ok := index[id]
		if !ok {
			grp = &Group{ID: id, Label: label}
			index[id] = grp
			groups = append(groups, grp)
		}
		grp.Members = append(grp.Members, v)
	}

	// A collator keeps internal buffers, so each call gets its own.
	col := collate.New(g.tag, collate.IgnoreCase)
	for _, grp := range groups {
		sortMembers(col, dim, grp.Members)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return col.CompareString(groups[i].Label, groups[j].Label) < 0
	})

	out := make([]Group, 0, len(groups))
	for _, grp := range groups {
		if len(grp.Members) > 0 {
			out = append(out, *grp)
		}
	}
	return out, nil
}

func selected(v model.PlacementView, from, to time.Time, f Filters) bool {
	if !interval.Overlaps(v.InitialDate, v.FinalDate, from, to) {
		return false
	}
	if f.HospitalID != nil && v.Hospital.ID != *f.HospitalID {
		return false
	}
	if f.SpecialtyID != nil && v.SpecialtyID() != *f.SpecialtyID {
		return false
	}
	return true
}

func keyFunc(dim Dimension) (func(model.PlacementView) (uuid.UUID, string), error) {
	switch dim {
	case DimensionHospital:
		return func(v model.PlacementView) (uuid.UUID, string) { return v.Hospital.ID, v.Hospital.Name }, nil
	case DimensionStudent:
		return func(v model.PlacementView) (uuid.UUID, string) { return v.Student.ID, v.Student.SortName() }, nil
	case DimensionSpecialty:
		return func(v model.PlacementView) (uuid.UUID, string) { return v.SpecialtyID(), v.Specialty.Name }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidDimension, dim)
}

func sortMembers(col *collate.Collator, dim Dimension, members []model.PlacementView) {
	byDates := func(a, b model.PlacementView) bool {
		if !a.InitialDate.Equal(b.InitialDate) {
			return a.InitialDate.Before(b.InitialDate)
		}
		return a.FinalDate.Before(b.FinalDate)
	}
	if dim != DimensionStudent {
		sort.SliceStable(members, func(i, j int) bool { return byDates(members[i], members[j]) })
		return
	}
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i].Student, members[j].Student
		if c := col.CompareString(a.LastName, b.LastName); c != 0 {
			return c < 0
		}
		if c := col.CompareString(a.FirstName, b.FirstName); c != 0 {
			return c < 0
		}
		return byDates(members[i], members[j])
	})
}
