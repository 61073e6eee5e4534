package amqp

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Entity and action names carried by activity messages.
const (
	EntityTask   = "task"
	EntityClient = "client"
	EntitySale   = "sale"

	ActionCreated   = "created"
	ActionCompleted = "completed"
	ActionDeleted   = "deleted"
)

// ActivityMessage announces one successful write to the record store.
// Consumers fetch the row themselves if they need more than the id.
type ActivityMessage struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewActivityMessage(entity, action string, id int64) *ActivityMessage {
	return &ActivityMessage{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// RoutingKey is "<entity>.<action>".
func (m *ActivityMessage) RoutingKey() string {
	return m.Entity + "." + m.Action
}

func (m *ActivityMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ActivityMessageFromJSON(data []byte) (*ActivityMessage, error) {
	var msg ActivityMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
