package models

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// TokenRecord is the persisted result of an authorization-code exchange.
// A refresh replaces the whole record; it is never edited in place.
type TokenRecord struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
	Scope       Scopes    `json:"scope"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsUsable reports whether the token is still valid at now. A token whose
// expiry equals now is already expired.
func (t *TokenRecord) IsUsable(now time.Time) bool {
	return t != nil && t.AccessToken != "" && now.Before(t.ExpiresAt)
}

// DaysLeft is the number of whole days until expiry, negative once expired.
func (t *TokenRecord) DaysLeft(now time.Time) int {
	return int(math.Floor(t.ExpiresAt.Sub(now).Hours() / 24))
}

// Scopes is a set of granted permissions. It is stored as a single
// space separated string; comma separated strings and JSON arrays are
// accepted on read.
type Scopes []string

func ParseScopes(s string) Scopes {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})
	seen := make(map[string]struct{}, len(fields))
	out := make(Scopes, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func (s Scopes) String() string {
	return strings.Join(s, " ")
}

func (s Scopes) Has(scope string) bool {
	for _, v := range s {
		if v == scope {
			return true
		}
	}
	return false
}

func (s Scopes) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Scopes) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = ParseScopes(strings.Join(list, " "))
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseScopes(raw)
	return nil
}
