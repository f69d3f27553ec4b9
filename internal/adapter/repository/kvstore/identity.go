package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"loan-application-backend/internal/domain/identity"
	"loan-application-backend/internal/domain/kv"
)

const (
	otpSessionPrefix = "otpSession_"
	userPrefix       = "user_"
)

type IdentityRepository struct{ store kv.Store }

func NewIdentityRepository(store kv.Store) *IdentityRepository {
	return &IdentityRepository{store: store}
}

func (r *IdentityRepository) SaveSession(ctx context.Context, s *identity.OTPSession) error {
	return r.put(ctx, otpSessionPrefix+s.VerificationID, s)
}

func (r *IdentityRepository) GetSession(ctx context.Context, verificationID string) (*identity.OTPSession, error) {
	var out identity.OTPSession
	if err := r.get(ctx, otpSessionPrefix+verificationID, &out); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, identity.ErrInvalidSession
		}
		return nil, err
	}
	return &out, nil
}

func (r *IdentityRepository) DeleteSession(ctx context.Context, verificationID string) error {
	return r.store.Remove(ctx, otpSessionPrefix+verificationID)
}

func (r *IdentityRepository) GetUserByPhone(ctx context.Context, phone string) (*identity.User, error) {
	var out identity.User
	if err := r.get(ctx, userPrefix+phone, &out); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *IdentityRepository) SaveUser(ctx context.Context, u *identity.User) error {
	return r.put(ctx, userPrefix+u.PhoneNumber, u)
}

func (r *IdentityRepository) put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, b)
}

func (r *IdentityRepository) get(ctx context.Context, key string, v any) error {
	b, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
