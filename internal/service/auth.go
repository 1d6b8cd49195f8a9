package service

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/madDev-12/fitnutrition/internal/model"
)

const MinPasswordLength = 8

var commonPasswords = map[string]bool{
	"password": true, "password1": true, "password123": true, "12345678": true,
	"123456789": true, "qwerty123": true, "iloveyou": true, "admin123": true,
	"welcome1": true, "letmein1": true,
}

// PrepareRegistration checks a sign-up before it is sent and fills the
// username from the email's local part when it is empty.
func PrepareRegistration(in model.RegisterInput) (model.RegisterInput, error) {
	in.Email = strings.TrimSpace(in.Email)
	local, domain, ok := strings.Cut(in.Email, "@")
	if !ok || local == "" || !strings.Contains(domain, ".") {
		return in, fmt.Errorf("a valid email is required")
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		in.Username = local
	}
	if in.Password != in.Password2 {
		return in, fmt.Errorf("passwords do not match")
	}
	if err := checkPassword(in.Password, in.Email, in.Username, in.FirstName, in.LastName); err != nil {
		return in, err
	}
	if in.DateOfBirth != "" {
		if _, err := ParseDate(in.DateOfBirth); err != nil {
			return in, fmt.Errorf("date of birth: %w", err)
		}
	}
	for name, v := range map[string]*float64{"height": in.Height, "weight": in.Weight} {
		if v != nil && *v <= 0 {
			return in, fmt.Errorf("%s must be positive", name)
		}
	}
	return in, nil
}

func checkPassword(password string, personal ...string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	var letter, digit, other bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		default:
			other = true
		}
	}
	if !letter && !other {
		return fmt.Errorf("password cannot be entirely numeric")
	}
	if !letter || !digit {
		return fmt.Errorf("password must contain letters and numbers")
	}
	lower := strings.ToLower(password)
	if commonPasswords[lower] {
		return fmt.Errorf("password is too common")
	}
	for _, p := range personal {
		p = strings.ToLower(strings.TrimSpace(p))
		if local, _, ok := strings.Cut(p, "@"); ok {
			p = local
		}
		if len(p) >= 3 && strings.Contains(lower, p) {
			return fmt.Errorf("password is too similar to your personal details")
		}
	}
	return nil
}

// TokenExpiry reads the exp claim of a JWT without verifying it.
func TokenExpiry(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return time.Time{}, false
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}, false
	}
	return time.Unix(claims.Exp, 0), true
}
