package models

import (
	"encoding/json"
	"time"
)

const PersonURNPrefix = "urn:li:person:"

// Profile is the authenticated account's identity, used to attribute posts.
type Profile struct {
	PersonURN   string          `json:"person_urn"`
	PersonID    string          `json:"person_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	ProfileData json.RawMessage `json:"profile_data,omitempty"`
	RetrievedAt time.Time       `json:"retrieved_at"`
}

func PersonURN(id string) string {
	return PersonURNPrefix + id
}
