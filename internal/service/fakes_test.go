package service

import (
	"archive/zip"
	"bytes"
	"context"
	"database/sql"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"mobilityapi/internal/interval"
	"mobilityapi/internal/logging"
	"mobilityapi/internal/model"
	"mobilityapi/internal/reconcile"
	"mobilityapi/internal/report"
	"mobilityapi/internal/repository"
	"mobilityapi/internal/slot"
	"mobilityapi/internal/storage"
)

// The fakes below follow the PostgreSQL repositories: missing rows surface
// as sql.ErrNoRows and writes that change nothing affect zero rows.

type memRefs struct {
	hospitals   map[uuid.UUID]model.Hospital
	specialties map[uuid.UUID]model.Specialty
	students    map[uuid.UUID]model.Student
	services    map[uuid.UUID]model.RotationService
	order       []uuid.UUID
}

func newMemRefs() *memRefs {
	return &memRefs{
		hospitals:   map[uuid.UUID]model.Hospital{},
		specialties: map[uuid.UUID]model.Specialty{},
		students:    map[uuid.UUID]model.Student{},
		services:    map[uuid.UUID]model.RotationService{},
	}
}

func (r *memRefs) Exists(_ context.Context, ref model.Reference, id uuid.UUID) (bool, error) {
	var ok bool
	switch ref {
	case model.RefHospital:
		_, ok = r.hospitals[id]
	case model.RefSpecialty:
		_, ok = r.specialties[id]
	case model.RefStudent:
		_, ok = r.students[id]
	case model.RefRotationService:
		_, ok = r.services[id]
	}
	return ok, nil
}

func (r *memRefs) FindHospital(_ context.Context, id uuid.UUID) (*model.Hospital, error) {
	h, ok := r.hospitals[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &h, nil
}

func (r *memRefs) ListHospitals(context.Context) ([]model.Hospital, error) {
	out := make([]model.Hospital, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.hospitals[id])
	}
	return out, nil
}

func (r *memRefs) addHospital(name string) model.Hospital {
	h := model.Hospital{ID: uuid.New(), Name: name, PrincipalName: "Dra. Elena Vega", PrincipalPosition: "Directora de enseñanza"}
	r.hospitals[h.ID] = h
	r.order = append(r.order, h.ID)
	return h
}

func (r *memRefs) addSpecialty(name string) model.Specialty {
	s := model.Specialty{ID: uuid.New(), Name: name}
	r.specialties[s.ID] = s
	return s
}

func (r *memRefs) addStudent(first, last string, specialty model.Specialty) model.Student {
	s := model.Student{ID: uuid.New(), FirstName: first, LastName: last, SpecialtyID: specialty.ID}
	r.students[s.ID] = s
	return s
}

func (r *memRefs) addService(name string, specialty model.Specialty) model.RotationService {
	s := model.RotationService{ID: uuid.New(), Name: name, SpecialtyID: specialty.ID}
	r.services[s.ID] = s
	return s
}

func updateSlot(set model.DocumentSet, key model.SlotKey, filename *string) int64 {
	cur, had := set.Slot(key)
	if (filename == nil && !had) || (filename != nil && had && cur == *filename) {
		return 0
	}
	set.SetSlot(key, filename)
	return 1
}

type memMobilities struct {
	kind model.Category
	refs *memRefs
	rows map[uuid.UUID]*model.Mobility
	// stuck makes Delete report success without removing the row.
	stuck bool
}

func newMemMobilities(kind model.Category, refs *memRefs) *memMobilities {
	return &memMobilities{kind: kind, refs: refs, rows: map[uuid.UUID]*model.Mobility{}}
}

func (r *memMobilities) Kind() model.Category { return r.kind }

func (r *memMobilities) Documents(_ context.Context, id uuid.UUID) (model.DocumentSet, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	docs := m.Documents
	return &docs, nil
}

func (r *memMobilities) UpdateDocument(_ context.Context, id uuid.UUID, key model.SlotKey, filename *string) (int64, error) {
	m, ok := r.rows[id]
	if !ok {
		return 0, nil
	}
	return updateSlot(&m.Documents, key, filename), nil
}

func (r *memMobilities) Create(_ context.Context, m *model.Mobility) (*model.Mobility, error) {
	cp := *m
	r.rows[m.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memMobilities) FindByID(_ context.Context, id uuid.UUID) (*model.Mobility, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *m
	return &cp, nil
}

func (r *memMobilities) Update(_ context.Context, m *model.Mobility) (int64, error) {
	cur, ok := r.rows[m.ID]
	if !ok {
		return 0, nil
	}
	if cur.StudentID == m.StudentID && cur.HospitalID == m.HospitalID && cur.RotationServiceID == m.RotationServiceID &&
		cur.InitialDate.Equal(m.InitialDate) && cur.FinalDate.Equal(m.FinalDate) {
		return 0, nil
	}
	cur.StudentID, cur.HospitalID, cur.RotationServiceID = m.StudentID, m.HospitalID, m.RotationServiceID
	cur.InitialDate, cur.FinalDate = m.InitialDate, m.FinalDate
	return 1, nil
}

func (r *memMobilities) SetCanceled(_ context.Context, id uuid.UUID, canceled bool) (int64, error) {
	m, ok := r.rows[id]
	if !ok || m.Canceled == canceled {
		return 0, nil
	}
	m.Canceled = canceled
	return 1, nil
}

func (r *memMobilities) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	if !r.stuck {
		delete(r.rows, id)
	}
	return 1, nil
}

func (r *memMobilities) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *memMobilities) view(m *model.Mobility) model.PlacementView {
	st := r.refs.students[m.StudentID]
	return model.PlacementView{
		ID:              m.ID,
		Kind:            r.kind,
		InitialDate:     m.InitialDate,
		FinalDate:       m.FinalDate,
		Canceled:        m.Canceled,
		Student:         st,
		Hospital:        r.refs.hospitals[m.HospitalID],
		RotationService: r.refs.services[m.RotationServiceID],
		Specialty:       r.refs.specialties[st.SpecialtyID],
		Documents:       m.Documents,
	}
}

func (r *memMobilities) ListViews(_ context.Context, q repository.PlacementQuery) ([]model.PlacementView, error) {
	out := make([]model.PlacementView, 0)
	for _, m := range r.rows {
		v := r.view(m)
		if !interval.Overlaps(v.InitialDate, v.FinalDate, q.InitialDate, q.FinalDate) {
			continue
		}
		if q.HospitalID != nil && v.Hospital.ID != *q.HospitalID {
			continue
		}
		if q.SpecialtyID != nil && v.SpecialtyID() != *q.SpecialtyID {
			continue
		}
		if q.ExcludeCanceled && v.Canceled {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.InitialDate.Equal(b.InitialDate) {
			return a.InitialDate.Before(b.InitialDate)
		}
		if !a.FinalDate.Equal(b.FinalDate) {
			return a.FinalDate.Before(b.FinalDate)
		}
		return a.ID.String() < b.ID.String()
	})
	return out, nil
}

func (r *memMobilities) FindView(_ context.Context, id uuid.UUID) (*model.PlacementView, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	v := r.view(m)
	return &v, nil
}

type memAttachments struct {
	rows map[uuid.UUID]*model.Attachment
}

func (r *memAttachments) Documents(_ context.Context, id uuid.UUID) (model.DocumentSet, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	docs := a.Documents
	return &docs, nil
}

func (r *memAttachments) UpdateDocument(_ context.Context, id uuid.UUID, key model.SlotKey, filename *string) (int64, error) {
	a, ok := r.rows[id]
	if !ok {
		return 0, nil
	}
	return updateSlot(&a.Documents, key, filename), nil
}

func (r *memAttachments) Create(_ context.Context, a *model.Attachment) (*model.Attachment, error) {
	cp := *a
	r.rows[a.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memAttachments) FindByID(_ context.Context, id uuid.UUID) (*model.Attachment, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (r *memAttachments) Update(_ context.Context, a *model.Attachment) (int64, error) {
	cur, ok := r.rows[a.ID]
	if !ok {
		return 0, nil
	}
	if cur.HospitalID == a.HospitalID && cur.SpecialtyID == a.SpecialtyID &&
		cur.InitialDate.Equal(a.InitialDate) && cur.FinalDate.Equal(a.FinalDate) {
		return 0, nil
	}
	cur.HospitalID, cur.SpecialtyID, cur.InitialDate, cur.FinalDate = a.HospitalID, a.SpecialtyID, a.InitialDate, a.FinalDate
	return 1, nil
}

func (r *memAttachments) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

func (r *memAttachments) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.rows[id]
	return ok, nil
}

func (r *memAttachments) List(_ context.Context, q repository.AttachmentQuery) ([]model.Attachment, error) {
	out := make([]model.Attachment, 0)
	for _, a := range r.rows {
		if !interval.Overlaps(a.InitialDate, a.FinalDate, q.InitialDate, q.FinalDate) {
			continue
		}
		if q.HospitalID != nil && a.HospitalID != *q.HospitalID {
			continue
		}
		if q.SpecialtyID != nil && a.SpecialtyID != *q.SpecialtyID {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InitialDate.Before(out[j].InitialDate) })
	return out, nil
}

type memTemplates struct {
	rows map[uuid.UUID]*model.Template
}

func (r *memTemplates) find(kind model.Category, key model.SlotKey) *model.Template {
	for _, t := range r.rows {
		if t.DocumentKind == kind && t.SlotKey == key {
			return t
		}
	}
	return nil
}

func (r *memTemplates) Find(_ context.Context, kind model.Category, key model.SlotKey) (*model.Template, error) {
	t := r.find(kind, key)
	if t == nil {
		return nil, sql.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (r *memTemplates) Ensure(ctx context.Context, kind model.Category, key model.SlotKey) (*model.Template, error) {
	if r.find(kind, key) == nil {
		t := &model.Template{ID: uuid.New(), DocumentKind: kind, SlotKey: key, UpdatedAt: time.Now()}
		r.rows[t.ID] = t
	}
	return r.Find(ctx, kind, key)
}

func (r *memTemplates) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

func (r *memTemplates) Documents(_ context.Context, id uuid.UUID) (model.DocumentSet, error) {
	t, ok := r.rows[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	docs := t.Documents
	return &docs, nil
}

func (r *memTemplates) UpdateDocument(_ context.Context, id uuid.UUID, key model.SlotKey, filename *string) (int64, error) {
	t, ok := r.rows[id]
	if !ok {
		return 0, nil
	}
	return updateSlot(&t.Documents, key, filename), nil
}

// world wires every service over the fakes and local storage.
type world struct {
	refs        *memRefs
	obligatory  *memMobilities
	optional    *memMobilities
	attachments *memAttachments
	templates   *memTemplates
	roots       map[model.Category]string

	Obligatory MobilityService
	Optional   MobilityService
	Attachment AttachmentService
	Template   TemplateService
	Report     ReportService
	Batch      BatchService
	Registry   *prometheus.Registry
}

func newWorld(t *testing.T) *world {
	t.Helper()
	log := logging.Discard()
	w := &world{
		refs:        newMemRefs(),
		attachments: &memAttachments{rows: map[uuid.UUID]*model.Attachment{}},
		templates:   &memTemplates{rows: map[uuid.UUID]*model.Template{}},
		roots:       map[model.Category]string{},
		Registry:    prometheus.NewRegistry(),
	}
	w.obligatory = newMemMobilities(model.CategoryObligatory, w.refs)
	w.optional = newMemMobilities(model.CategoryOptional, w.refs)

	manager := func(c model.Category, repo repository.SlotRepository) *slot.Manager {
		dir := t.TempDir()
		files, err := storage.NewLocal(dir)
		require.NoError(t, err)
		w.roots[c] = dir
		return slot.NewManager(c, repo, files, log)
	}

	rec := reconcile.New(w.attachments, w.obligatory, w.optional)
	w.Obligatory = NewMobilityService(w.obligatory, w.refs, manager(model.CategoryObligatory, w.obligatory), rec, log)
	w.Optional = NewMobilityService(w.optional, w.refs, manager(model.CategoryOptional, w.optional), rec, log)
	w.Attachment = NewAttachmentService(w.attachments, w.refs, manager(model.CategoryAttachment, w.attachments), rec, log)
	w.Template = NewTemplateService(w.templates, manager(model.CategoryTemplate, w.templates), log)
	w.Report = NewReportService(report.NewGrouper("es"), rec, w.obligatory, w.optional)

	batch, err := NewBatchService(w.Template, w.refs, BatchOptions{Locale: "es"}, w.Registry, log, w.obligatory, w.optional)
	require.NoError(t, err)
	w.Batch = batch
	return w
}

func day(s string) time.Time {
	t, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func docx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"word/document.xml":   `<?xml version="1.0"?><w:document><w:body>` + body + `</w:body></w:document>`,
	} {
		f, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(f, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func docxUpload(t *testing.T, body string) slot.Upload {
	b := docx(t, body)
	return slot.Upload{Filename: "carta.docx", ContentType: model.MediaTypeDOCX, Size: int64(len(b)), Reader: bytes.NewReader(b)}
}

func pdfUpload(body string) slot.Upload {
	return slot.Upload{Filename: "doc.pdf", ContentType: model.MediaTypePDF, Size: int64(len(body)), Reader: bytes.NewReader([]byte(body))}
}

// archiveEntries returns entry name to merged document.xml.
func archiveEntries(t *testing.T, archive []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		inner, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = documentXML(t, inner)
	}
	return out
}

func documentXML(t *testing.T, doc []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(doc), int64(len(doc)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			b, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(b)
		}
	}
	t.Fatal("document.xml missing")
	return ""
}
