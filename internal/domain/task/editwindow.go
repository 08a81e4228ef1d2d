package task

import (
	"fmt"
	"time"
)

// EditWindowDays is how far back from today a task date may be set.
const EditWindowDays = 5

// Window is an inclusive range of calendar days.
type Window struct {
	Min Date `json:"min"`
	Max Date `json:"max"`
}

// EditableRange returns the days a task may be created on or moved to:
// [today - EditWindowDays, today], where today is the calendar day of now.
// It is recomputed on every call.
func EditableRange(now time.Time) Window {
	today := DateOf(now)
	return Window{Min: today.AddDays(-EditWindowDays), Max: today}
}

// Contains reports whether d lies inside the window, bounds included.
func (w Window) Contains(d Date) bool {
	return !d.Before(w.Min) && !d.After(w.Max)
}

// Validate returns ErrOutsideEditWindow if d is not inside the window.
func (w Window) Validate(d Date) error {
	if d.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !w.Contains(d) {
		return fmt.Errorf("%w: %s not in [%s, %s]", ErrOutsideEditWindow, d, w.Min, w.Max)
	}
	return nil
}
