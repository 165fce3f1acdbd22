package model

import "fmt"

// Category identifies an entity kind that owns document slots. It doubles as
// the storage category and as the document kind of a template.
type Category string

const (
	CategoryObligatory Category = "obligatoryMobility"
	CategoryOptional   Category = "optionalMobility"
	CategoryAttachment Category = "attachment"
	CategoryTemplate   Category = "template"
)

// SlotKey names a document slot. The same value is used as a request
// parameter and as the JSON field name on the owning record.
type SlotKey string

const (
	SlotSolicitude         SlotKey = "solicitudeDocument"
	SlotPresentationOffice SlotKey = "presentationOfficeDocument"
	SlotAcceptance         SlotKey = "acceptanceDocument"
	SlotEvaluation         SlotKey = "evaluationDocument"
	SlotTemplate           SlotKey = "templateDocument"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeZIP  = "application/zip"
	MediaTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var categorySlots = map[Category][]SlotKey{
	CategoryObligatory: {SlotPresentationOffice, SlotEvaluation},
	CategoryOptional:   {SlotSolicitude, SlotPresentationOffice, SlotAcceptance, SlotEvaluation},
	CategoryAttachment: {SlotSolicitude, SlotAcceptance},
	CategoryTemplate:   {SlotTemplate},
}

// Slots returns the fixed slot enumeration of the category.
func (c Category) Slots() []SlotKey {
	return categorySlots[c]
}

// Has reports whether key belongs to the category's enumeration.
func (c Category) Has(key SlotKey) bool {
	for _, k := range categorySlots[c] {
		if k == key {
			return true
		}
	}
	return false
}

// MediaType is the only upload type accepted by the category's slots.
func (c Category) MediaType() string {
	if c == CategoryTemplate {
		return MediaTypeDOCX
	}
	return MediaTypePDF
}

// ParseCategory validates a mobility or attachment category name.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categorySlots[c]; !ok {
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidSlot, s)
	}
	return c, nil
}

// ParseSlotKey validates s against the enumeration of c.
func ParseSlotKey(c Category, s string) (SlotKey, error) {
	key := SlotKey(s)
	if !c.Has(key) {
		return "", fmt.Errorf("%w: %q is not a %s slot", ErrInvalidSlot, s, c)
	}
	return key, nil
}

// DocumentSet is implemented by the slot structs of every category.
type DocumentSet interface {
	// Slot returns the stored filename of key, if any.
	Slot(key SlotKey) (string, bool)
	// SetSlot stores or clears the filename of key.
	SetSlot(key SlotKey, filename *string)
}

// Occupied lists the stored filenames of every slot of c in set.
func Occupied(c Category, set DocumentSet) map[SlotKey]string {
	out := make(map[SlotKey]string)
	for _, key := range c.Slots() {
		if name, ok := set.Slot(key); ok {
			out[key] = name
		}
	}
	return out
}

func slotValue(p *string) (string, bool) {
	if p == nil || *p == "" {
		return "", false
	}
	return *p, true
}
