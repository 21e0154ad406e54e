package user

import (
	"context"
	"time"
)

type EventType string

const (
	EventRegistered             EventType = "registered"
	EventVerified               EventType = "verified"
	EventLoggedIn               EventType = "logged_in"
	EventLoggedOut              EventType = "logged_out"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventPasswordReset          EventType = "password_reset"
	EventPasswordChanged        EventType = "password_changed"
	EventProfileUpdated         EventType = "profile_updated"
)

type Event struct {
	Type   EventType `json:"type"`
	UserID ID        `json:"userId"`
	At     time.Time `json:"at"`
}

func NewEvent(t EventType, userID ID, at time.Time) Event {
	return Event{Type: t, UserID: userID, At: at}
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
