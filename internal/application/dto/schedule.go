package dto

import (
	"dailyreminder/internal/domain/entity"
)

// ScheduleResponse is the DTO for showing a recipient's schedule.
type ScheduleResponse struct {
	RecipientID entity.RecipientID `json:"recipient_id"`
	TimeOfDay   entity.TimeOfDay   `json:"time_of_day,omitempty"`
	IsSet       bool               `json:"is_set"`
}

// SetScheduleRequest is the DTO for setting a recipient's time. Time is raw user input.
type SetScheduleRequest struct {
	RecipientID entity.RecipientID `json:"recipient_id"`
	Time        string             `json:"time"`
}

// UpdateScheduleRequest is the DTO for a conditional update. OldTime and NewTime are raw user input.
type UpdateScheduleRequest struct {
	RecipientID entity.RecipientID `json:"recipient_id"`
	OldTime     string             `json:"old_time"`
	NewTime     string             `json:"new_time"`
}

// UpdateScheduleResponse reports the outcome of a conditional update.
type UpdateScheduleResponse struct {
	OldTime  entity.TimeOfDay `json:"old_time"`
	NewTime  entity.TimeOfDay `json:"new_time"`
	Replaced bool             `json:"replaced"`
}
