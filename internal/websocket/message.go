package websocket

import (
	"encoding/json"
	"time"
)

// Message is the envelope for every frame sent to dashboard clients.
type Message struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// ToJSON serializes the message, stamping the time if unset.
func (m Message) ToJSON() []byte {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(m)
	if err != nil {
		return []byte(`{"type":"error","data":{"message":"failed to serialize message"}}`)
	}
	return data
}

// NewDatasetReloadedMessage announces a fresh dataset snapshot so
// connected dashboards can refetch.
func NewDatasetReloadedMessage(version int64, records int) Message {
	return Message{
		Type: "dataset_reloaded",
		Data: map[string]interface{}{
			"version": version,
			"records": records,
		},
		Timestamp: time.Now().UTC(),
	}
}
