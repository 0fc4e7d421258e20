package report

import (
	"encoding/json"
	"time"
)

// SavedReport is a named set of filters and displayed fields a user keeps for reuse.
type SavedReport struct {
	ID          string
	Name        string
	UserID      string
	Filters     json.RawMessage
	Fields      json.RawMessage
	Description string
	Public      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	OwnerName string
}

// VisibleTo reports whether userID may read the report.
func (r SavedReport) VisibleTo(userID string, isAdmin bool) bool {
	return r.Public || isAdmin || r.UserID == userID
}

// EditableBy reports whether userID may change or delete the report.
func (r SavedReport) EditableBy(userID string, isAdmin bool) bool {
	return isAdmin || r.UserID == userID
}
