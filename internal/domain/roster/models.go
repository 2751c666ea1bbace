package roster

import "time"

type Entry struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profileId"`
	ClientID   string    `json:"clientId"`
	ProjectID  string    `json:"projectId"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	TotalHours float64   `json:"totalHours"`
	Status     string    `json:"status"`
	IsLocked   bool      `json:"isLocked"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
