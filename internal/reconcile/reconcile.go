// Package reconcile derives the relation between placements and attachments
// on read. Nothing here is persisted.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mobilityapi/internal/interval"
	"mobilityapi/internal/model"
	"mobilityapi/internal/repository"
)

// Reconciler matches placements and attachments by hospital, specialty and period.
type Reconciler struct {
	attachments repository.AttachmentRepository
	mobilities  []repository.MobilityRepository
}

// New builds a reconciler over the attachment store and every mobility kind
// that attachments may cover.
func New(attachments repository.AttachmentRepository, mobilities ...repository.MobilityRepository) *Reconciler {
	return &Reconciler{attachments: attachments, mobilities: mobilities}
}

// AttachmentsCovering returns the attachments of hospital and specialty whose
// period overlaps [from, to].
func (r *Reconciler) AttachmentsCovering(ctx context.Context, hospital, specialty uuid.UUID, from, to time.Time) ([]model.Attachment, error) {
	if !(model.Interval{InitialDate: from, FinalDate: to}).Valid() {
		return nil, model.ErrInvalidInterval
	}
	list, err := r.attachments.List(ctx, repository.AttachmentQuery{
		InitialDate: from,
		FinalDate:   to,
		HospitalID:  &hospital,
		SpecialtyID: &specialty,
	})
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return FilterCovering(list, hospital, specialty, from, to), nil
}

// PlacementsCoveredBy returns the placements of every kind that att covers.
func (r *Reconciler) PlacementsCoveredBy(ctx context.Context, att model.Attachment) ([]model.PlacementView, error) {
	var out []model.PlacementView
	for _, repo := range r.mobilities {
		views, err := repo.ListViews(ctx, repository.PlacementQuery{
			InitialDate: att.InitialDate,
			FinalDate:   att.FinalDate,
			HospitalID:  &att.HospitalID,
			SpecialtyID: &att.SpecialtyID,
		})
		if err != nil {
			return nil, fmt.Errorf("list %s placements: %w", repo.Kind(), err)
		}
		out = append(out, FilterCovered(views, att)...)
	}
	return out, nil
}

// Annotate fills the derived attachment lists of every view and returns views.
func (r *Reconciler) Annotate(ctx context.Context, views []model.PlacementView) ([]model.PlacementView, error) {
	if len(views) == 0 {
		return views, nil
	}
	from, to := views[0].InitialDate, views[0].FinalDate
	for _, v := range views[1:] {
		if v.InitialDate.Before(from) {
			from = v.InitialDate
		}
		if v.FinalDate.After(to) {
			to = v.FinalDate
		}
	}
	atts, err := r.attachments.List(ctx, repository.AttachmentQuery{InitialDate: from, FinalDate: to})
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	Annotate(views, atts)
	return views, nil
}

// FilterCovering keeps attachments matching hospital and specialty exactly
// and overlapping [from, to].
func FilterCovering(atts []model.Attachment, hospital, specialty uuid.UUID, from, to time.Time) []model.Attachment {
	out := make([]model.Attachment, 0, len(atts))
	for _, a := range atts {
		if a.HospitalID != hospital || a.SpecialtyID != specialty {
			continue
		}
		if interval.Overlaps(a.InitialDate, a.FinalDate, from, to) {
			out = append(out, a)
		}
	}
	return out
}

// FilterCovered keeps placements at att's hospital whose student belongs to
// att's specialty and whose period overlaps att's.
func FilterCovered(views []model.PlacementView, att model.Attachment) []model.PlacementView {
	out := make([]model.PlacementView, 0, len(views))
	for _, v := range views {
		if v.Hospital.ID != att.HospitalID || v.SpecialtyID() != att.SpecialtyID {
			continue
		}
		if interval.OverlapsInterval(v.Interval(), att.Interval()) {
			out = append(out, v)
		}
	}
	return out
}

// Annotate sets SolicitudeAttachments and AcceptanceAttachments on each view.
// An attachment counts when hospital and specialty match and either endpoint
// of the placement falls inside the attachment period; it lands in a list
// only if the matching slot of the attachment holds a document.
func Annotate(views []model.PlacementView, atts []model.Attachment) {
	for i := range views {
		v := &views[i]
		v.SolicitudeAttachments = []uuid.UUID{}
		v.AcceptanceAttachments = []uuid.UUID{}
		for _, a := range atts {
			if a.HospitalID != v.Hospital.ID || a.SpecialtyID != v.SpecialtyID() {
				continue
			}
			if !interval.Contains(a.InitialDate, a.FinalDate, v.InitialDate) &&
				!interval.Contains(a.InitialDate, a.FinalDate, v.FinalDate) {
				continue
			}
			if _, ok := a.Documents.Slot(model.SlotSolicitude); ok {
				v.SolicitudeAttachments = append(v.SolicitudeAttachments, a.ID)
			}
			if _, ok := a.Documents.Slot(model.SlotAcceptance); ok {
				v.AcceptanceAttachments = append(v.AcceptanceAttachments, a.ID)
			}
		}
	}
}
