package event

import (
	"time"

	"github.com/google/uuid"
)

type BaseEvent struct {
	EventID     string    `json:"eventId"`
	AggregateID string    `json:"aggregateId"`
	CreatedAt   time.Time `json:"createdAt"`
	EventType   EventType `json:"eventType"`
}

func NewBaseEvent(aggregateID string, eventType EventType) BaseEvent {
	return BaseEvent{
		EventID:     uuid.NewString(),
		AggregateID: aggregateID,
		CreatedAt:   time.Now().UTC(),
		EventType:   eventType,
	}
}

func (e *BaseEvent) GetID() string {
	return e.EventID
}

func (e *BaseEvent) Type() EventType {
	return e.EventType
}

type EventType string

const (
	OrderItemAddedEventName EventType = "OrderItemAdded"
)

type Event interface {
	Type() EventType
	GetID() string
}
