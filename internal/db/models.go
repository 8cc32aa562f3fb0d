package db

import "time"

// Record is one key-value row in the settings table
type Record struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// KeyPhoneStyle holds the last selected phone style
const KeyPhoneStyle = "phoneStyle"
