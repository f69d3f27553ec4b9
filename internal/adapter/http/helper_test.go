package http

import (
	"bytes"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"loan-application-backend/internal/adapter/middleware"
	"loan-application-backend/internal/adapter/repository/kvstore"
	"loan-application-backend/internal/domain/uow"
	"loan-application-backend/internal/testutil/kvmock"
	"loan-application-backend/internal/testutil/uowmock"
	ucApplication "loan-application-backend/internal/usecase/application"
	"loan-application-backend/internal/usecase/review"

	"github.com/labstack/echo/v4"
)

const (
	testUser = "uuuuuuuuuuuuuuuuuuuuuuuuuuuuuuuu"
	testApp  = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// Local helper for field-error assertions
func hasFieldDetail(details []FieldError, field, contains string) bool {
	for _, d := range details {
		if d.Field == field && strings.Contains(d.Message, contains) {
			return true
		}
	}
	return false
}

type stack struct {
	repo   *kvstore.ApplicationRepository
	store  *kvmock.Store
	apps   *ucApplication.Usecase
	review *review.Usecase
}

// newStack wires both usecases over one in-memory store, ids fixed to testApp.
func newStack() *stack {
	store := kvmock.New()
	repo := kvstore.NewApplicationRepository(store, kvstore.DefaultMaxRecordBytes)
	tx := uowmock.Passthrough(uow.Repos{Applications: repo})
	now := func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return &stack{
		repo:   repo,
		store:  store,
		apps:   ucApplication.NewUsecase(repo, tx, nil).WithClock(now).WithIDFunc(func() string { return testApp }),
		review: review.NewUsecase(repo, tx, nil).WithClock(now),
	}
}

func newCtx(e *echo.Echo, method, path string, body any, subject string) (echo.Context, *httptest.ResponseRecorder) {
	var req *stdhttp.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, strings.NewReader(b))
	default:
		req = httptest.NewRequest(method, path, mustJSON(b))
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if subject != "" {
		middleware.WithSubject(c, subject)
	}
	return c, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return er
}
