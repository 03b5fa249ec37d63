package models

import (
	"encoding/json"
	"time"
)

const (
	EventLogin           = "session.login"
	EventRegister        = "session.register"
	EventLogout          = "session.logout"
	EventSignalGenerated = "signal.generated"
)

// ActivityEvent is published to the activity topic.
type ActivityEvent struct {
	Type   string          `json:"type"`
	Client string          `json:"client"`
	UserID string          `json:"userId,omitempty"`
	At     time.Time       `json:"at"`
	Data   json.RawMessage `json:"data,omitempty"`
}
