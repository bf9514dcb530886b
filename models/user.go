package models

import (
	"math"
	"time"
)

// User account statuses
const (
	UserPending   = "pending"
	UserActive    = "active"
	UserSuspended = "suspended"
	UserRejected  = "rejected"
)

// UserStatuses lists the account statuses offered in filters
var UserStatuses = []string{UserPending, UserActive, UserSuspended, UserRejected}

// UserRoles lists the roles offered in filters
var UserRoles = []string{"applicant", "reviewer", "admin"}

// BusinessProfile is the business information attached to an account
type BusinessProfile struct {
	BusinessName        string `json:"business_name"`
	BusinessType        string `json:"business_type"`
	BusinessDescription string `json:"business_description,omitempty"`
}

// ApplicationSummary is a compact view of an account's application
type ApplicationSummary struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// User represents a registered account, possibly awaiting approval
type User struct {
	ID                string               `json:"id"`
	Email             string               `json:"email"`
	FullName          string               `json:"full_name"`
	Phone             string               `json:"phone,omitempty"`
	Role              string               `json:"role"`
	Status            string               `json:"status"`
	VerificationNotes string               `json:"verification_notes,omitempty"`
	Profile           *BusinessProfile     `json:"profile,omitempty"`
	Applications      []ApplicationSummary `json:"applications,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	LastLogin         *time.Time           `json:"last_login,omitempty"`

	// DaysWaiting is derived from CreatedAt when the record is loaded
	DaysWaiting int `json:"days_waiting"`
}

// BusinessName returns the profile business name, "" when there is no profile
func (u *User) BusinessName() string {
	if u.Profile == nil {
		return ""
	}
	return u.Profile.BusinessName
}

// HasApplicationInReview reports whether any related application is in review
func (u *User) HasApplicationInReview() bool {
	for _, a := range u.Applications {
		if NormalizeStatus(a.Status) == StatusInReview {
			return true
		}
	}
	return false
}

// DaysBetween returns elapsed days rounded up, as the pending queue counts them
func DaysBetween(from, now time.Time) int {
	d := now.Sub(from)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}
