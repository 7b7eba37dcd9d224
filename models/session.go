package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GlobalSession is the single admin-configured window during which team users
// may search and claim clients. Dates are "2006-01-02", times "15:04".
type GlobalSession struct {
	gorm.Model

	SessionStartDate string `gorm:"not null" json:"sessionStartDate"`
	SessionStartTime string `gorm:"not null" json:"sessionStartTime"`
	SessionEndDate   string `gorm:"not null" json:"sessionEndDate"`
	SessionEndTime   string `gorm:"not null" json:"sessionEndTime"`
}

const (
	sessionDateLayout = "2006-01-02"
	sessionTimeLayout = "15:04"
)

// Window resolves the configured start and end instants in the given location.
func (s *GlobalSession) Window(loc *time.Location) (time.Time, time.Time, error) {
	layout := sessionDateLayout + " " + sessionTimeLayout
	start, err := time.ParseInLocation(layout, s.SessionStartDate+" "+s.SessionStartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid session start: %w", err)
	}
	end, err := time.ParseInLocation(layout, s.SessionEndDate+" "+s.SessionEndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid session end: %w", err)
	}
	return start, end, nil
}

// Active reports whether now falls inside the configured window. A session
// that fails to parse is treated as inactive.
func (s *GlobalSession) Active(now time.Time) bool {
	start, end, err := s.Window(now.Location())
	if err != nil {
		return false
	}
	return !now.Before(start) && !now.After(end)
}

// ValidateWindow rejects windows that do not parse or end before they start.
func (s *GlobalSession) ValidateWindow() error {
	start, end, err := s.Window(time.UTC)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("session window ends before it starts")
	}
	return nil
}
