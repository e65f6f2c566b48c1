package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Publisher provides the ability to publish messages to subjects.
type Publisher interface {
	Publish(subject string, data []byte) error
}

const (
	EventVisit  = "visit"
	EventDeath  = "death"
	EventEnding = "ending"
	EventSave   = "save"
)

// Event is the gameplay record published to the message bus as each
// session progresses. Observers (logging, future spectator surfaces)
// subscribe to "session.<id>".
type Event struct {
	Session   string `json:"session"`
	Type      string `json:"type"`
	Character string `json:"character,omitempty"`
	Node      int    `json:"node"`
	Detail    string `json:"detail,omitempty"`
	At        int64  `json:"at"`
}

// publishEvent sends a session event, tolerating a nil publisher so the
// engine runs fine without a message bus (tests, stdio play).
func publishEvent(pub Publisher, sessionID, eventType, charName string, node int, detail string) {
	if pub == nil {
		return
	}

	data, err := json.Marshal(&Event{
		Session:   sessionID,
		Type:      eventType,
		Character: charName,
		Node:      node,
		Detail:    detail,
		At:        time.Now().UnixMilli(),
	})
	if err != nil {
		slog.Warn("marshalling session event", "type", eventType, "error", err)
		return
	}

	err = pub.Publish(fmt.Sprintf("session.%s", sessionID), data)
	if err != nil {
		slog.Warn("publishing session event", "type", eventType, "error", err)
	}
}
