package timesheet

import "time"

type WorkingHour struct {
	ID            string    `json:"id"`
	ProfileID     string    `json:"profileId"`
	ClientID      string    `json:"clientId"`
	ProjectID     string    `json:"projectId"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	TotalHours    float64   `json:"totalHours"`
	ActualHours   *float64  `json:"actualHours,omitempty"`
	PayableAmount *float64  `json:"payableAmount,omitempty"`
	Status        string    `json:"status"`
	RosterID      string    `json:"rosterId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Filter narrows a working-hour query. Zero values match everything.
type Filter struct {
	ProfileID string
	Status    string
	RosterID  string
	From      time.Time
	To        time.Time
}
