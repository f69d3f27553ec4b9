package http

import (
	"errors"
	"fmt"
	stdhttp "net/http"
	"testing"

	domain "loan-application-backend/internal/domain/application"
	"loan-application-backend/internal/domain/identity"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: fullName is required", domain.ErrValidationFailed), stdhttp.StatusUnprocessableEntity},
		{domain.ErrAmountOutOfRange, stdhttp.StatusUnprocessableEntity},
		{fmt.Errorf("%w: app-1", domain.ErrApplicationConflict), stdhttp.StatusConflict},
		{domain.ErrInvalidTransition, stdhttp.StatusConflict},
		{domain.ErrNotApproved, stdhttp.StatusConflict},
		{domain.ErrNotFound, stdhttp.StatusNotFound},
		{domain.ErrRecordTooLarge, stdhttp.StatusRequestEntityTooLarge},
		{fmt.Errorf("%w: get: %w", domain.ErrStorageUnavailable, errors.New("dial tcp")), stdhttp.StatusServiceUnavailable},
		{identity.ErrInvalidPhone, stdhttp.StatusUnprocessableEntity},
		{identity.ErrSessionExpired, stdhttp.StatusUnauthorized},
		{identity.ErrInvalidCredential, stdhttp.StatusUnauthorized},
		{errors.New("boom"), stdhttp.StatusInternalServerError},
	}
	for _, tc := range cases {
		if code, _ := classify(tc.err); code != tc.code {
			t.Fatalf("classify(%v) = %d, want %d", tc.err, code, tc.code)
		}
	}

	// backend detail must not leak
	_, msg := classify(fmt.Errorf("%w: get: %w", domain.ErrStorageUnavailable, errors.New("dial tcp 10.0.0.1")))
	if msg != domain.ErrStorageUnavailable.Error() {
		t.Fatalf("msg = %q", msg)
	}
}
