package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventCityCreated = "city.created"
	EventUserCreated = "user.created"
)

type CityEvent struct {
	ID         uuid.UUID `json:"event_id"`
	Type       string    `json:"type"`
	City       City      `json:"city"`
	OccurredAt time.Time `json:"occurred_at"`
}

type UserEvent struct {
	ID         uuid.UUID `json:"event_id"`
	Type       string    `json:"type"`
	User       User      `json:"user"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewCityCreated(c City) CityEvent {
	return CityEvent{ID: uuid.New(), Type: EventCityCreated, City: c, OccurredAt: time.Now().UTC()}
}

func NewUserCreated(u User) UserEvent {
	return UserEvent{ID: uuid.New(), Type: EventUserCreated, User: u, OccurredAt: time.Now().UTC()}
}
