package identity

import "context"

type Repository interface {
	SaveSession(ctx context.Context, s *OTPSession) error
	GetSession(ctx context.Context, verificationID string) (*OTPSession, error)
	DeleteSession(ctx context.Context, verificationID string) error

	// Users are keyed by phone so the uid stays stable across logins.
	GetUserByPhone(ctx context.Context, phone string) (*User, error)
	SaveUser(ctx context.Context, u *User) error
}
