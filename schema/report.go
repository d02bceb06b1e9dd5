package schema

import (
	"strings"
	"time"
)

// ReportType is the closed set of things a user can report. The item types
// are legacy: they only get the free-form intake path, never the guided one.
type ReportType string

const (
	ReportTypeMissingPerson ReportType = "Missing Person"
	ReportTypeFoundPerson   ReportType = "Found Person"
	ReportTypeRescueRequest ReportType = "Request Rescue"
	ReportTypeOfferHelp     ReportType = "Offer Help"
	ReportTypeLostItem      ReportType = "Lost Item"
	ReportTypeFoundItem     ReportType = "Found Item"
)

// ParseReportType matches a type label ignoring case.
func ParseReportType(label string) (ReportType, bool) {
	for _, t := range []ReportType{
		ReportTypeMissingPerson,
		ReportTypeFoundPerson,
		ReportTypeRescueRequest,
		ReportTypeOfferHelp,
		ReportTypeLostItem,
		ReportTypeFoundItem,
	} {
		if strings.EqualFold(string(t), strings.TrimSpace(label)) {
			return t, true
		}
	}
	return "", false
}

// IsPersonReport reports whether the type describes a person, which decides
// whether the status lifecycle applies.
func (t ReportType) IsPersonReport() bool {
	switch t {
	case ReportTypeMissingPerson, ReportTypeFoundPerson, ReportTypeRescueRequest:
		return true
	}
	return false
}

// ReportStatus is the mutable lifecycle field, changed only by the owner.
type ReportStatus string

const (
	StatusStillMissing ReportStatus = "Still Missing"
	StatusFound        ReportStatus = "Found"
	StatusHospitalized ReportStatus = "Hospitalized"
	StatusDeceased     ReportStatus = "Deceased"
	StatusOther        ReportStatus = "Other"
)

// AllStatuses in keyboard display order.
var AllStatuses = []ReportStatus{
	StatusStillMissing,
	StatusFound,
	StatusHospitalized,
	StatusDeceased,
	StatusOther,
}

// ParseStatus matches a status label ignoring case.
func ParseStatus(label string) (ReportStatus, bool) {
	for _, s := range AllStatuses {
		if strings.EqualFold(string(s), strings.TrimSpace(label)) {
			return s, true
		}
	}
	return "", false
}

// DefaultStatus returns the initial status for a report of the given type.
func DefaultStatus(t ReportType) ReportStatus {
	if t.IsPersonReport() {
		return StatusStillMissing
	}
	return StatusOther
}

// Report is the only durable record in the system.
type Report struct {
	ID               uint         `json:"-" gorm:"primary_key"`
	ReportID         string       `json:"report_id" gorm:"unique_index;not null"`
	ReportType       ReportType   `json:"report_type" gorm:"not null"`
	Details          string       `json:"details" gorm:"type:text;not null"`
	Urgency          Urgency      `json:"urgency" gorm:"not null"`
	PhotoID          string       `json:"photo_id,omitempty"`
	PhotoURL         string       `json:"photo_url,omitempty"`
	PhotoPath        string       `json:"photo_path,omitempty"`
	Location         string       `json:"location"`
	ExactCoordinates string       `json:"exact_coordinates,omitempty"`
	UserID           int64        `json:"user_id" gorm:"index"`
	Username         string       `json:"username"`
	FirstName        string       `json:"first_name"`
	LastName         string       `json:"last_name"`
	Status           ReportStatus `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}

// SubmitterName is the display name used in broadcasts and forwarded
// messages. It never exposes more than the platform already does.
func (r *Report) SubmitterName() string {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	if name == "" {
		name = r.Username
	}
	if name == "" {
		name = "Anonymous"
	}
	return name
}
