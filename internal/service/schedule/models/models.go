// Package models holds the schedule service request and response shapes.
package models

import (
	"time"

	"github.com/beautylounge/salon-booking-service/internal/domain"
)

// UpsertScheduleRequest creates or replaces one month's schedule. Days and
// hours keep the legacy comma-separated formats the back office sends.
type UpsertScheduleRequest struct {
	Month          int    `json:"month"`
	Year           int    `json:"year"`
	AvailableDays  string `json:"availableDays"`  // e.g. "lundi,mardi,wednesday"
	AvailableHours string `json:"availableHours"` // e.g. "09:00-12:00,14:00-18:00"
}

// ScheduleResponse is one month's schedule with both the raw strings and the
// parsed view.
type ScheduleResponse struct {
	ID             int64    `json:"id"`
	Month          int      `json:"month"`
	Year           int      `json:"year"`
	AvailableDays  string   `json:"availableDays"`
	AvailableHours string   `json:"availableHours"`
	OpenWeekdays   []string `json:"openWeekdays"`
	OpenHours      []string `json:"openHours"`
	UpdatedAt      string   `json:"updatedAt"`
}

// FromDomainSchedule converts a domain schedule.
func FromDomainSchedule(s *domain.MonthlySchedule) *ScheduleResponse {
	weekdays := make([]string, 0, len(s.Days))
	for _, d := range s.Days {
		weekdays = append(weekdays, d.String())
	}

	hours := make([]string, 0, len(s.Hours))
	for _, h := range s.Hours {
		hours = append(hours, h.Start.String()+"-"+h.End.String())
	}

	return &ScheduleResponse{
		ID:             s.ID,
		Month:          s.Month,
		Year:           s.Year,
		AvailableDays:  s.AvailableDays,
		AvailableHours: s.AvailableHours,
		OpenWeekdays:   weekdays,
		OpenHours:      hours,
		UpdatedAt:      s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
