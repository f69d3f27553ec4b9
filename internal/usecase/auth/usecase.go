// Package auth is the demo identity provider: phone OTP for users and a
// single configured admin account.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"strings"
	"time"

	"loan-application-backend/internal/domain/identity"
	"loan-application-backend/pkg/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultOTPTTL      = 5 * time.Minute
	defaultDisplayName = "Demo User"
	adminSubject       = "admin"
)

type Usecase struct {
	repo   identity.Repository
	tokens *token.Issuer
	cfg    Config
	now    func() time.Time
}

func NewUsecase(r identity.Repository, tokens *token.Issuer, cfg Config) *Usecase {
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = DefaultOTPTTL
	}
	return &Usecase{
		repo:   r,
		tokens: tokens,
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// SendOTP opens a verification session. No message is actually sent.
func (u *Usecase) SendOTP(ctx context.Context, rawPhone string) (*OTPChallengeDTO, error) {
	phone := identity.FormatPhoneNumber(rawPhone)
	if !identity.ValidPhone(phone) {
		return nil, identity.ErrInvalidPhone
	}
	s := &identity.OTPSession{
		VerificationID: uuid.NewString(),
		PhoneNumber:    phone,
		ExpiresAt:      u.now().Add(u.cfg.OTPTTL),
	}
	if err := u.repo.SaveSession(ctx, s); err != nil {
		return nil, err
	}
	log.Printf("otp session %s opened for %s", s.VerificationID, maskPhone(phone))
	return &OTPChallengeDTO{VerificationID: s.VerificationID, PhoneNumber: phone, ExpiresAt: s.ExpiresAt}, nil
}

// ConfirmOTP closes the session and signs the user in. The same phone
// always maps to the same uid.
func (u *Usecase) ConfirmOTP(ctx context.Context, verificationID, otp string) (*SessionDTO, error) {
	s, err := u.repo.GetSession(ctx, verificationID)
	if err != nil {
		return nil, err
	}
	if s.Expired(u.now()) {
		_ = u.repo.DeleteSession(ctx, verificationID)
		return nil, identity.ErrSessionExpired
	}
	otp = strings.TrimSpace(otp)
	if !identity.ValidOTP(otp) {
		return nil, identity.ErrInvalidOTP
	}
	if u.cfg.FixedOTP != "" && subtle.ConstantTimeCompare([]byte(otp), []byte(u.cfg.FixedOTP)) != 1 {
		return nil, identity.ErrInvalidOTP
	}

	user, err := u.repo.GetUserByPhone(ctx, s.PhoneNumber)
	switch {
	case errors.Is(err, identity.ErrUserNotFound):
		user = &identity.User{
			UID:         UIDForPhone(s.PhoneNumber),
			PhoneNumber: s.PhoneNumber,
			DisplayName: defaultDisplayName,
			CreatedAt:   u.now(),
		}
		if err := u.repo.SaveUser(ctx, user); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}
	if err := u.repo.DeleteSession(ctx, verificationID); err != nil {
		log.Printf("otp session %s: delete: %v", verificationID, err)
	}

	tok, exp, err := u.tokens.Issue(user.UID, token.RoleUser)
	if err != nil {
		return nil, err
	}
	return &SessionDTO{
		Token:     tok,
		ExpiresAt: exp,
		User:      UserDTO{UID: user.UID, PhoneNumber: user.PhoneNumber, DisplayName: user.DisplayName},
	}, nil
}

func (u *Usecase) AdminLogin(_ context.Context, username, password string) (*AdminSessionDTO, error) {
	if u.cfg.AdminUsername == "" || u.cfg.AdminPasswordHash == "" {
		return nil, identity.ErrInvalidCredential
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(u.cfg.AdminUsername)) == 1
	// bcrypt runs even when the username is wrong
	passErr := bcrypt.CompareHashAndPassword([]byte(u.cfg.AdminPasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return nil, identity.ErrInvalidCredential
	}
	tok, exp, err := u.tokens.Issue(adminSubject, token.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &AdminSessionDTO{Token: tok, ExpiresAt: exp}, nil
}

// UIDForPhone derives the user id from the normalized phone number, so
// concurrent first logins for one phone agree on it.
func UIDForPhone(phone string) string {
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte("tel:"+phone))
	return strings.ReplaceAll(u.String(), "-", "")
}

func maskPhone(p string) string {
	if len(p) <= 4 {
		return p
	}
	return strings.Repeat("*", len(p)-4) + p[len(p)-4:]
}
