package dto

import "github.com/kutrumbo/unlockapp/internal/models"

// DayView is a day's activities together with its derived status.
type DayView struct {
	Date       string             `json:"date"`
	Activities models.ActivitySet `json:"activities"`
	Unlocked   bool               `json:"unlocked"`
}

// NewDayView derives the view for a single day.
func NewDayView(date string, set models.ActivitySet) DayView {
	return DayView{Date: date, Activities: set, Unlocked: set.Unlocked()}
}

// NewDayViews converts history records into views preserving order.
func NewDayViews(records []models.DayRecord) []DayView {
	views := make([]DayView, 0, len(records))
	for _, record := range records {
		views = append(views, NewDayView(record.Date, record.Activities))
	}
	return views
}

// ToggleActivityRequest flips one activity for a day.
type ToggleActivityRequest struct {
	Activity string `json:"activity" validate:"required,oneof=reading exercising music"`
}

// CounterView exposes the shared counter value.
type CounterView struct {
	Value int64 `json:"value"`
}
