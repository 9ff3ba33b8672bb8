package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// ChangeMessage announces that a record was created or deleted.
// It carries only the identity; consumers read the record from the database.
type ChangeMessage struct {
	MessageID string    `json:"message_id"`
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(entity, action string, id int64) *ChangeMessage {
	return &ChangeMessage{
		MessageID: uuid.NewString(),
		Entity:    entity,
		Action:    action,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON decodes and checks a message body.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Entity == "" || msg.ID <= 0 {
		return nil, fmt.Errorf("incomplete change message: entity=%q id=%d", msg.Entity, msg.ID)
	}
	if msg.Action != ActionCreated && msg.Action != ActionDeleted {
		return nil, fmt.Errorf("unknown action %q", msg.Action)
	}
	return &msg, nil
}
