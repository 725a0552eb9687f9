package domain

import "time"

// UserPreference is a persisted key/value pair.
type UserPreference struct {
	ID           int64
	Key          string
	Value        string
	LastModified time.Time
}

// PrefLastOpened holds the path of the most recently opened document.
const PrefLastOpened = "tui.last_opened"
