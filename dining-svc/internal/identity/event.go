package identity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

var ErrInvalidPayload = errors.New("invalid webhook payload")

type EmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type UserData struct {
	ID                    string         `json:"id"`
	EmailAddresses        []EmailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	Username              *string        `json:"username"`
	FirstName             *string        `json:"first_name"`
	LastName              *string        `json:"last_name"`
	ImageURL              string         `json:"image_url"`
}

// PrimaryEmail falls back to the first address when no primary is flagged.
func (d UserData) PrimaryEmail() string {
	for _, e := range d.EmailAddresses {
		if e.ID == d.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(d.EmailAddresses) > 0 {
		return d.EmailAddresses[0].EmailAddress
	}
	return ""
}

type Event struct {
	Type string   `json:"type"`
	Data UserData `json:"data"`
}

// ParseEvent decodes a verified payload. Event types this service does not
// handle are returned as is so the caller can acknowledge them.
func ParseEvent(payload []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if e.Type == "" {
		return Event{}, fmt.Errorf("%w: missing type", ErrInvalidPayload)
	}
	if e.Handled() && e.Data.ID == "" {
		return Event{}, fmt.Errorf("%w: missing user id", ErrInvalidPayload)
	}
	return e, nil
}

func (e Event) Handled() bool {
	switch e.Type {
	case UserCreated, UserUpdated, UserDeleted:
		return true
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Profile flattens the optional name fields.
func (d UserData) Profile() (username, firstName, lastName string) {
	return deref(d.Username), deref(d.FirstName), deref(d.LastName)
}
