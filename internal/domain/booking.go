package domain

import (
	"fmt"
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPendingConfirmation BookingStatus = "pending_confirmation"
	BookingConfirmed           BookingStatus = "confirmed"
)

// BookingSource tags where a booking entered the system. Website intake is the
// only path today.
const BookingSource = "website"

type MeetingMode string

const (
	MeetingVideo    MeetingMode = "video"
	MeetingPhone    MeetingMode = "phone"
	MeetingInPerson MeetingMode = "in-person"
)

func ParseMeetingMode(s string) (MeetingMode, bool) {
	switch MeetingMode(s) {
	case MeetingVideo, MeetingPhone, MeetingInPerson:
		return MeetingMode(s), true
	default:
		return "", false
	}
}

// Booking is one consultation request. Status only moves forward: a booking is
// created pending_confirmation and an admin confirms it. There is no
// cancellation or rejection path.
type Booking struct {
	ID string `json:"id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	JobTitle  string `json:"job_title,omitempty"`

	ConsultationType string      `json:"consultation_type"`
	Purpose          string      `json:"purpose,omitempty"`
	PreferredDate    string      `json:"preferred_date"`
	PreferredTime    string      `json:"preferred_time,omitempty"`
	AlternativeDate  string      `json:"alternative_date,omitempty"`
	AlternativeTime  string      `json:"alternative_time,omitempty"`
	Timezone         string      `json:"timezone,omitempty"`
	MeetingMode      MeetingMode `json:"meeting_mode,omitempty"`
	Agenda           string      `json:"agenda,omitempty"`
	Participants     int         `json:"participants"`
	SpecialRequests  string      `json:"special_requests,omitempty"`

	Newsletter bool `json:"newsletter"`

	Status      BookingStatus `json:"status"`
	Source      string        `json:"source"`
	ConfirmedBy string        `json:"confirmed_by,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (b *Booking) FullName() string {
	return strings.TrimSpace(b.FirstName + " " + b.LastName)
}

// BookingIntakeReq is the submitted consultation form.
type BookingIntakeReq struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Company          string `json:"company"`
	JobTitle         string `json:"jobTitle"`
	ConsultationType string `json:"consultationType"`
	Purpose          string `json:"purpose"`
	PreferredDate    string `json:"preferredDate"`
	PreferredTime    string `json:"preferredTime"`
	AlternativeDate  string `json:"alternativeDate"`
	AlternativeTime  string `json:"alternativeTime"`
	Timezone         string `json:"timezone"`
	MeetingMode      string `json:"meetingMode"`
	Agenda           string `json:"agenda"`
	Participants     int    `json:"participants"`
	SpecialRequests  string `json:"specialRequests"`
	Newsletter       bool   `json:"newsletter"`
}

// Validate reports the first missing required field.
func (r *BookingIntakeReq) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", r.FirstName},
		{"lastName", r.LastName},
		{"email", r.Email},
		{"consultationType", r.ConsultationType},
		{"preferredDate", r.PreferredDate},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("missing required field: %s", f.name)
		}
	}
	if r.MeetingMode != "" {
		if _, ok := ParseMeetingMode(r.MeetingMode); !ok {
			return fmt.Errorf("invalid meeting mode: %s", r.MeetingMode)
		}
	}
	if r.Participants < 0 {
		return fmt.Errorf("participants must be at least 1")
	}
	return nil
}
