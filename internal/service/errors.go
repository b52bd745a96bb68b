package service

import (
	"fmt"
	"net/http"
)

// AuthError means credentials are missing, expired or rejected. The user has
// to run the OAuth setup again.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// ExchangeError carries the provider's raw body when an authorization code
// could not be redeemed.
type ExchangeError struct {
	StatusCode int
	Body       string
}

func (e *ExchangeError) Error() string {
	if !isSuccess(e.StatusCode) {
		return fmt.Sprintf("token exchange failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("no access token in response: %s", e.Body)
}

type PublishError struct {
	Platform   string
	StatusCode int
	Body       string
}

func (e *PublishError) Error() string {
	switch {
	case e.Reauthenticate():
		return fmt.Sprintf("%s publish failed (%d), reauthenticate required: %s", e.Platform, e.StatusCode, e.Body)
	case e.InsufficientPermission():
		return fmt.Sprintf("%s publish failed (%d), insufficient permission: %s", e.Platform, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s API error %d: %s", e.Platform, e.StatusCode, e.Body)
}

func (e *PublishError) Reauthenticate() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func (e *PublishError) InsufficientPermission() bool {
	return e.StatusCode == http.StatusForbidden
}

// classifyPublishError turns a rejected write into the error callers see.
// A 401 is an AuthError so callers can tell the user to log in again.
func classifyPublishError(platform string, status int, body []byte) error {
	pubErr := &PublishError{Platform: platform, StatusCode: status, Body: string(body)}
	if pubErr.Reauthenticate() {
		return &AuthError{Reason: "reauthenticate required", Err: pubErr}
	}
	return pubErr
}
