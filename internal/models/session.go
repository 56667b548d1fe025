// ABOUTME: Session model and session type enum for activity tracking.
// ABOUTME: Sessions carry a redundant monthKey kept in sync with dateISO.
package models

import "time"

// SessionType classifies a recorded activity.
type SessionType string

const (
	SessionGym        SessionType = "gym"
	SessionBasketball SessionType = "basketball"
	SessionOther      SessionType = "other"
)

// AllSessionTypes returns all valid session types.
var AllSessionTypes = []SessionType{SessionGym, SessionBasketball, SessionOther}

// IsValidSessionType checks if a string is a valid session type.
func IsValidSessionType(s string) bool {
	for _, t := range AllSessionTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Session represents one workout or activity occurrence on a calendar date.
type Session struct {
	ID          uint64      `json:"id"`
	DateISO     string      `json:"dateISO"`
	MonthKey    string      `json:"monthKey"`
	Type        SessionType `json:"type"`
	DurationMin int         `json:"durationMin"`
	Notes       string      `json:"notes,omitempty"`
	Intensity   string      `json:"intensity,omitempty"` // basketball only
	OtherName   string      `json:"otherName,omitempty"` // type "other" only
}

// RecordID returns the primary key.
func (s *Session) RecordID() uint64 { return s.ID }

// SetRecordID assigns the primary key.
func (s *Session) SetRecordID(id uint64) { s.ID = id }

// NewSession creates a session for the given date with monthKey derived.
func NewSession(dateISO string, t SessionType) *Session {
	return &Session{
		DateISO:  dateISO,
		MonthKey: MonthKeyFromISO(dateISO),
		Type:     t,
	}
}

// WithDuration sets the duration in minutes.
func (s *Session) WithDuration(minutes int) *Session {
	s.DurationMin = minutes
	return s
}

// WithNotes sets notes on the session.
func (s *Session) WithNotes(notes string) *Session {
	s.Notes = notes
	return s
}

// WithIntensity sets the basketball intensity label.
func (s *Session) WithIntensity(intensity string) *Session {
	s.Intensity = intensity
	return s
}

// WithOtherName sets the free-form activity name for type "other".
func (s *Session) WithOtherName(name string) *Session {
	s.OtherName = name
	return s
}

// Normalize coerces the session into a consistent persistable shape:
// monthKey is recomputed from dateISO, the duration is clamped to zero,
// and fields that only apply to other types are cleared.
func (s *Session) Normalize() {
	s.MonthKey = MonthKeyFromISO(s.DateISO)
	if s.DurationMin < 0 {
		s.DurationMin = 0
	}
	if s.Type != SessionBasketball {
		s.Intensity = ""
	}
	if s.Type != SessionOther {
		s.OtherName = ""
	}
}

// MonthKeyFromISO derives the YYYY-MM month key from a YYYY-MM-DD date.
func MonthKeyFromISO(dateISO string) string {
	if len(dateISO) < 7 {
		return dateISO
	}
	return dateISO[:7]
}

// ValidDateISO reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDateISO(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidMonthKey reports whether s is a well-formed YYYY-MM month key.
func ValidMonthKey(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}
