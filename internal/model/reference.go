package model

import "github.com/google/uuid"

// Hospital is a partner hospital receiving residents.
type Hospital struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	PrincipalName     string    `json:"principalName"`
	PrincipalPosition string    `json:"principalPosition"`
}

// Specialty is a medical specialty.
type Specialty struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Student is a resident enrolled in a specialty.
type Student struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	SpecialtyID uuid.UUID `json:"specialtyId"`
}

// FullName is the display name used in document file names.
func (s Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// SortName is "Last, First", the label of student report groups.
func (s Student) SortName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.LastName + ", " + s.FirstName
}

// RotationService is a hospital service a resident rotates through.
type RotationService struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	SpecialtyID uuid.UUID `json:"specialtyId"`
}

// Reference names a reference entity table used for existence checks.
type Reference string

const (
	RefHospital        Reference = "hospital"
	RefSpecialty       Reference = "specialty"
	RefStudent         Reference = "student"
	RefRotationService Reference = "rotationService"
)
