package http

import (
	"encoding/json"
	stdhttp "net/http"
	"testing"
	"time"

	"loan-application-backend/internal/adapter/repository/kvstore"
	"loan-application-backend/internal/testutil/kvmock"
	"loan-application-backend/internal/usecase/auth"
	"loan-application-backend/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	uc := auth.NewUsecase(kvstore.NewIdentityRepository(kvmock.New()), token.NewIssuer("k", time.Hour), auth.Config{
		FixedOTP:          "123456",
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	})
	return NewAuthHandler(uc)
}

func TestOTPFlow(t *testing.T) {
	e := newEchoWithValidator()
	h := newAuthHandler(t)

	c, rec := newCtx(e, stdhttp.MethodPost, "/auth/otp", map[string]any{"phone_number": "0300-1234567"}, "")
	if err := h.SendOTP(c); err != nil {
		t.Fatalf("SendOTP error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
	}
	var ch auth.OTPChallengeDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &ch)
	if ch.PhoneNumber != "+923001234567" {
		t.Fatalf("phone = %s", ch.PhoneNumber)
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/auth/otp/verify", map[string]any{"verification_id": ch.VerificationID, "otp": "000000"}, "")
	_ = h.VerifyOTP(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("wrong otp: status = %d, want 422", rec.Code)
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/auth/otp/verify", map[string]any{"verification_id": ch.VerificationID, "otp": "123456"}, "")
	_ = h.VerifyOTP(c)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("verify: status = %d; body=%s", rec.Code, rec.Body.String())
	}
	var sess auth.SessionDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &sess)
	if sess.Token == "" || sess.User.UID == "" {
		t.Fatalf("session = %+v", sess)
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/auth/otp/verify", map[string]any{"verification_id": ch.VerificationID, "otp": "123456"}, "")
	_ = h.VerifyOTP(c)
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("reused session: status = %d, want 401", rec.Code)
	}
}

func TestSendOTP_InvalidPhone(t *testing.T) {
	e := newEchoWithValidator()
	h := newAuthHandler(t)

	c, rec := newCtx(e, stdhttp.MethodPost, "/auth/otp", map[string]any{"phone_number": "123"}, "")
	_ = h.SendOTP(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestVerifyOTP_Validation(t *testing.T) {
	e := newEchoWithValidator()
	h := newAuthHandler(t)

	c, rec := newCtx(e, stdhttp.MethodPost, "/auth/otp/verify", map[string]any{"verification_id": "x", "otp": "12"}, "")
	_ = h.VerifyOTP(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	er := decodeError(t, rec)
	if !hasFieldDetail(er.Details, "VerificationID", "uuid") || !hasFieldDetail(er.Details, "OTP", "exactly 6") {
		t.Fatalf("details = %+v", er.Details)
	}
}

func TestAdminLoginHandler(t *testing.T) {
	e := newEchoWithValidator()
	h := newAuthHandler(t)

	c, rec := newCtx(e, stdhttp.MethodPost, "/admin/login", map[string]any{"username": "admin", "password": "nope"}, "")
	_ = h.AdminLogin(c)
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("bad password: status = %d, want 401", rec.Code)
	}

	c, rec = newCtx(e, stdhttp.MethodPost, "/admin/login", map[string]any{"username": "admin", "password": "pw"}, "")
	_ = h.AdminLogin(c)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
	}
	var out auth.AdminSessionDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Token == "" {
		t.Fatalf("missing token")
	}
}
