package services

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/terraincognita07/symptomap/internal/models"
)

var (
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
)

func NormalizeUsername(raw string) (string, error) {
	username := strings.TrimSpace(raw)
	length := len([]rune(username))
	if length < MinUsernameLength || length > MaxUsernameLength {
		return "", ErrInvalidUsername
	}
	return username, nil
}

func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

// ValidateCoordinates accepts an all-or-nothing optional pair: both nil is
// fine (user without location), one nil is fine too (each coordinate is
// independently nullable), but any present value must be in range.
func ValidateCoordinates(latitude *float64, longitude *float64) error {
	if latitude != nil && (*latitude < models.MinLatitude || *latitude > models.MaxLatitude) {
		return ErrInvalidCoordinates
	}
	if longitude != nil && (*longitude < models.MinLongitude || *longitude > models.MaxLongitude) {
		return ErrInvalidCoordinates
	}
	return nil
}
