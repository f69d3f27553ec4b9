package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"loan-application-backend/internal/domain/application"
	"loan-application-backend/internal/domain/kv"
)

const (
	userApplicationPrefix = "userApplication_"
	allApplicationsKey    = "allApplications"

	DefaultMaxRecordBytes = 100 * 1024
)

func UserApplicationKey(userID string) string { return userApplicationPrefix + userID }

// ApplicationRepository keeps the two logical collections as JSON values:
// one current record per user and a single list of every record.
type ApplicationRepository struct {
	store    kv.Store
	maxBytes int
}

func NewApplicationRepository(store kv.Store, maxRecordBytes int) *ApplicationRepository {
	if maxRecordBytes <= 0 {
		maxRecordBytes = DefaultMaxRecordBytes
	}
	return &ApplicationRepository{store: store, maxBytes: maxRecordBytes}
}

func (r *ApplicationRepository) GetCurrent(ctx context.Context, userID string) (*application.LoanApplication, error) {
	b, err := r.store.Get(ctx, UserApplicationKey(userID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, application.ErrNotFound
		}
		return nil, storageErr("get current", err)
	}
	var out application.LoanApplication
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, storageErr("decode current", err)
	}
	return &out, nil
}

func (r *ApplicationRepository) PutCurrent(ctx context.Context, userID string, a *application.LoanApplication) error {
	payload, err := r.encode(a)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, UserApplicationKey(userID), payload); err != nil {
		return storageErr("put current", err)
	}
	return nil
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]application.LoanApplication, error) {
	b, err := r.store.Get(ctx, allApplicationsKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []application.LoanApplication{}, nil
		}
		return nil, storageErr("list all", err)
	}
	var out []application.LoanApplication
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, storageErr("decode all", err)
	}
	return out, nil
}

// UpsertAll replaces the entry with the same id, or appends it.
func (r *ApplicationRepository) UpsertAll(ctx context.Context, a *application.LoanApplication) error {
	if _, err := r.encode(a); err != nil {
		return err
	}
	list, err := r.ListAll(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range list {
		if list[i].ID == a.ID {
			list[i] = *a
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, *a)
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return storageErr("encode all", err)
	}
	if err := r.store.Set(ctx, allApplicationsKey, payload); err != nil {
		return storageErr("put all", err)
	}
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, applicationID string) (*application.LoanApplication, error) {
	list, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == applicationID {
			return &list[i], nil
		}
	}
	return nil, application.ErrNotFound
}

func (r *ApplicationRepository) encode(a *application.LoanApplication) ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, storageErr("encode", err)
	}
	if len(payload) > r.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", application.ErrRecordTooLarge, len(payload), r.maxBytes)
	}
	return payload, nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", application.ErrStorageUnavailable, op, err)
}
