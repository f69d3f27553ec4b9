package identity

import (
	"errors"
	"time"
)

var (
	ErrInvalidPhone      = errors.New("please enter a valid phone number (+92XXXXXXXXXX)")
	ErrInvalidSession    = errors.New("invalid verification session, request a new OTP")
	ErrSessionExpired    = errors.New("OTP has expired, request a new one")
	ErrInvalidOTP        = errors.New("please enter a valid 6-digit OTP")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrUserNotFound      = errors.New("user not found")
)

type User struct {
	UID         string    `json:"uid"`
	PhoneNumber string    `json:"phoneNumber"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OTPSession is a pending phone challenge.
type OTPSession struct {
	VerificationID string    `json:"verificationId"`
	PhoneNumber    string    `json:"phoneNumber"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

func (s OTPSession) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }
