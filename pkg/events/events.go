package events

import "time"

// RecordEvent is published on the eventbus whenever a registration record
// changes through the portal. The core module's audit subscriber consumes
// it.
type RecordEvent struct {
	Domain   string
	Action   string
	RecordID string
	Username string
	At       time.Time
}

func NewRecordEvent(domain, action, recordID, username string) *RecordEvent {
	return &RecordEvent{
		Domain:   domain,
		Action:   action,
		RecordID: recordID,
		Username: username,
		At:       time.Now(),
	}
}
