package amqp

import (
	"encoding/json"
	"time"
)

// Ledger event actions.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// LedgerEventMessage is a lightweight notification that a transaction was
// created or deleted. Consumers that need the full row fetch it by id.
type LedgerEventMessage struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Owner     string    `json:"owner"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(id int64, action, owner string) *LedgerEventMessage {
	return &LedgerEventMessage{
		ID:        id,
		Action:    action,
		Owner:     owner,
		Timestamp: time.Now(),
	}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
