package auth

import "time"

type Config struct {
	OTPTTL            time.Duration
	FixedOTP          string // empty accepts any 6-digit code
	AdminUsername     string
	AdminPasswordHash string // bcrypt
}

type OTPChallengeDTO struct {
	VerificationID string    `json:"verification_id"`
	PhoneNumber    string    `json:"phone_number"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type UserDTO struct {
	UID         string `json:"uid"`
	PhoneNumber string `json:"phone_number"`
	DisplayName string `json:"display_name"`
}

type SessionDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}

type AdminSessionDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
