package model

import "github.com/google/uuid"

// Profile extends a User account with the social-network fields.
// Invariant: a non-doctor profile never carries a doctor_type value.
type Profile struct {
	Base
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	Username      string    `json:"username" db:"username"`
	IsDoctor      bool      `json:"is_doctor" db:"is_doctor"`
	DoctorType    string    `json:"doctor_type" db:"doctor_type"`
	AboutMe       string    `json:"about_me" db:"about_me"`
	Qualification string    `json:"qualification" db:"qualification"`
	Education     string    `json:"education" db:"education"`
	Workplace     string    `json:"workplace" db:"workplace"`
}

// DoctorEditRequest is the edit form presented to doctor profiles.
type DoctorEditRequest struct {
	AboutMe       string `json:"about_me" binding:"max=2048"`
	Qualification string `json:"qualification" binding:"max=256"`
	Education     string `json:"education" binding:"max=256"`
	Workplace     string `json:"workplace" binding:"max=256"`
}

// PatientEditRequest is the edit form presented to patient profiles.
type PatientEditRequest struct {
	AboutMe string `json:"about_me" binding:"max=2048"`
}

// ProfileEdit is the role-tagged union of the two edit forms. The service
// applies the doctor-only fields only when the caller's profile is a doctor.
type ProfileEdit struct {
	AboutMe       string
	Qualification string
	Education     string
	Workplace     string
}

// ProfileView is what the profile page renders: the profile itself plus the
// feedback visible on it under the asymmetric policy.
type ProfileView struct {
	Profile   *Profile    `json:"profile"`
	Feedbacks []*Feedback `json:"feedbacks"`
}
