package models

// LogEntry is one record in the activity history. Entries are stored
// newest-first and the collection is capped, oldest dropped from the tail.
type LogEntry struct {
	Date   string `json:"date"`
	Action string `json:"action"`
	Detail string `json:"detail"`
}
