package models

import "time"

// RequestStatus tracks how far an artisan has processed a request.
type RequestStatus string

const (
	StatusNew       RequestStatus = "new"
	StatusViewed    RequestStatus = "viewed"
	StatusResponded RequestStatus = "responded"
)

// Valid reports whether s is a known status. Any known status may follow any
// other.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusNew, StatusViewed, StatusResponded:
		return true
	}
	return false
}

// Urgency values offered on the contact form.
const (
	UrgencyUrgent   = "Urgent"
	UrgencyThisWeek = "Cette semaine"
	UrgencyFlexible = "Flexible"
)

// ClientRequest is a contact inquiry addressed to one artisan.
type ClientRequest struct {
	ID          string        `json:"id"`
	ArtisanID   string        `json:"artisanId"`
	ClientName  string        `json:"clientName"`
	ClientPhone string        `json:"clientPhone"`
	Service     string        `json:"service"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	Urgency     string        `json:"urgency"`
	Budget      string        `json:"budget"`
	Date        time.Time     `json:"date"`
	Status      RequestStatus `json:"status"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
}

// NewRequestInput holds the fields a client submits.
type NewRequestInput struct {
	ArtisanID   string `json:"artisanId"`
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	Service     string `json:"service"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
	Budget      string `json:"budget,omitempty"`
}

// CountByStatus returns how many requests carry status s.
func CountByStatus(requests []ClientRequest, s RequestStatus) int {
	n := 0
	for _, r := range requests {
		if r.Status == s {
			n++
		}
	}
	return n
}
