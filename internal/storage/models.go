package storage

import "time"

// DefaultSlotKey is the key the browser version stored its document under.
const DefaultSlotKey = "jobSearchGameData"

type SlotRecord struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
