package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	domain "loan-application-backend/internal/domain/application"
	"loan-application-backend/internal/domain/uow"
	"loan-application-backend/pkg/id"
)

type Usecase struct {
	repo     domain.Repository
	uow      uow.UnitOfWork
	notifier domain.Notifier
	now      func() time.Time
	newID    id.Func
}

// NewUsecase: reads go through repo, every write runs inside tx.
func NewUsecase(r domain.Repository, tx uow.UnitOfWork, n domain.Notifier) *Usecase {
	return &Usecase{
		repo:     r,
		uow:      tx,
		notifier: n,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    id.NewID32,
	}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) WithIDFunc(f id.Func) *Usecase {
	u.newID = f
	return u
}

func (u *Usecase) Submit(ctx context.Context, userID string, in SubmitInput) (*ApplicationDTO, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: missing user id", domain.ErrValidationFailed)
	}
	var created *domain.LoanApplication

	err := u.uow.WithinUserTx(ctx, userID, func(r uow.Repos) error {
		cur, err := r.Applications.GetCurrent(ctx, userID)
		switch {
		case err == nil:
			if cur.Status == domain.StatusUnderReview {
				return fmt.Errorf("%w: %s", domain.ErrApplicationConflict, cur.ID)
			}
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		a, err := domain.NewApplication(u.newID(), userID, in.draft(), u.now())
		if err != nil {
			return err
		}
		if err := r.Applications.PutCurrent(ctx, userID, a); err != nil {
			return err
		}
		if err := r.Applications.UpsertAll(ctx, a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("application %s: submitted by %s, status %s", created.ID, userID, created.Status)
	u.notify(ctx, created)
	return ToDTO(created), nil
}

// CanApply is false only while the current record awaits review.
func (u *Usecase) CanApply(ctx context.Context, userID string) (bool, error) {
	cur, err := u.repo.GetCurrent(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return cur.Status != domain.StatusUnderReview, nil
}

func (u *Usecase) Current(ctx context.Context, userID string) (*ApplicationDTO, error) {
	cur, err := u.repo.GetCurrent(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToDTO(cur), nil
}

func (u *Usecase) ConfirmAmount(ctx context.Context, userID string, amount float64) (*ApplicationDTO, error) {
	var updated *domain.LoanApplication

	err := u.uow.WithinUserTx(ctx, userID, func(r uow.Repos) error {
		cur, err := r.Applications.GetCurrent(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotApproved
		}
		if err != nil {
			return err
		}
		if err := cur.ConfirmAmount(amount); err != nil {
			return err
		}
		if err := r.Applications.PutCurrent(ctx, userID, cur); err != nil {
			return err
		}
		if err := r.Applications.UpsertAll(ctx, cur); err != nil {
			return err
		}
		updated = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("application %s: amount %.0f confirmed, status %s", updated.ID, amount, updated.Status)
	u.notify(ctx, updated)
	return ToDTO(updated), nil
}

func (u *Usecase) notify(ctx context.Context, a *domain.LoanApplication) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.StatusChanged(ctx, domain.EventFor(a, u.now())); err != nil {
		log.Printf("notify application %s: %v", a.ID, err)
	}
}
