package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const stateIssuer = "community-automation"

// StateTTL is how long a signed OAuth state stays valid.
const StateTTL = 10 * time.Minute

// StateClaims is the payload of the OAuth state parameter.
type StateClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// GenerateState returns a signed, short-lived OAuth state value.
func GenerateState(secretKey string, ttl time.Duration) (string, error) {
	nonce, err := GenerateRandomKey(16)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := StateClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    stateIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secretKey))
	if err != nil {
		logrus.WithError(err).Debug("signing oauth state")
		return "", err
	}
	return signed, nil
}

func ValidateState(secretKey, state string) (*StateClaims, error) {
	token, err := jwt.ParseWithClaims(state, &StateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid state signing method")
		}
		return []byte(secretKey), nil
	}, jwt.WithIssuer(stateIssuer))
	if err != nil {
		logrus.WithError(err).Debug("validating oauth state")
		return nil, err
	}

	if claims, ok := token.Claims.(*StateClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid state")
}
