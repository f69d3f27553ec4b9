package review

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	domain "loan-application-backend/internal/domain/application"
	"loan-application-backend/internal/domain/uow"
	ucApplication "loan-application-backend/internal/usecase/application"
)

// Usecase serves the admin dashboard.
type Usecase struct {
	repo     domain.Repository
	uow      uow.UnitOfWork
	notifier domain.Notifier
	now      func() time.Time
}

func NewUsecase(r domain.Repository, tx uow.UnitOfWork, n domain.Notifier) *Usecase {
	return &Usecase{
		repo:     r,
		uow:      tx,
		notifier: n,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// List returns every application, newest first. An empty status lists all.
func (u *Usecase) List(ctx context.Context, status domain.Status) ([]*ucApplication.ApplicationDTO, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidationFailed, status)
	}
	all, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].SubmittedAt.After(all[j].SubmittedAt)
	})

	out := make([]*ucApplication.ApplicationDTO, 0, len(all))
	for i := range all {
		if status != "" && all[i].Status != status {
			continue
		}
		out = append(out, ucApplication.ToDTO(&all[i]))
	}
	return out, nil
}

func (u *Usecase) Stats(ctx context.Context) (domain.Stats, error) {
	var s domain.Stats
	all, err := u.repo.ListAll(ctx)
	if err != nil {
		return s, err
	}
	for _, a := range all {
		s.Add(a.Status)
	}
	return s, nil
}

func (u *Usecase) Get(ctx context.Context, applicationID string) (*ucApplication.ApplicationDTO, error) {
	a, err := u.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return ucApplication.ToDTO(a), nil
}

func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*ucApplication.ApplicationDTO, error) {
	// The owner is only known after a lookup; the record is read again under
	// the owner's lock before it is modified.
	target, err := u.repo.GetByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	var decided *domain.LoanApplication
	var from domain.Status
	err = u.uow.WithinUserTx(ctx, target.UserID, func(r uow.Repos) error {
		a, err := r.Applications.GetByID(ctx, in.ApplicationID)
		if err != nil {
			return err
		}
		from = a.Status
		if err := a.Decide(in.Decision, u.now()); err != nil {
			return err
		}
		if err := r.Applications.PutCurrent(ctx, a.UserID, a); err != nil {
			return err
		}
		if err := r.Applications.UpsertAll(ctx, a); err != nil {
			return err
		}
		decided = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("application %s: %s -> %s", decided.ID, from, decided.Status)
	if u.notifier != nil {
		if err := u.notifier.StatusChanged(ctx, domain.EventFor(decided, u.now())); err != nil {
			log.Printf("notify application %s: %v", decided.ID, err)
		}
	}
	return ucApplication.ToDTO(decided), nil
}
