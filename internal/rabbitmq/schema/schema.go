package schema

import (
	"encoding/json"
	"time"
	"ums/internal/core/domain/user"
)

const (
	ACCOUNT_EVENTS_EXCHANGE_KIND = "topic"
	ACCOUNT_EVENTS_BINDING_KEY   = "account.#"
)

type AccountEvent struct {
	Type   string    `json:"type"`
	UserID string    `json:"userId"`
	At     time.Time `json:"at"`
}

func NewAccountEvent(event user.Event) AccountEvent {
	return AccountEvent{Type: string(event.Type), UserID: string(event.UserID), At: event.At.UTC()}
}

func (e *AccountEvent) RoutingKey() string {
	return "account." + e.Type
}

func (e *AccountEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func (e *AccountEvent) Unmarshal(data []byte) error {
	return json.Unmarshal(data, e)
}
