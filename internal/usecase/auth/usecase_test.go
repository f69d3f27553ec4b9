package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"loan-application-backend/internal/adapter/repository/kvstore"
	"loan-application-backend/internal/domain/identity"
	"loan-application-backend/internal/domain/kv"
	"loan-application-backend/internal/testutil/kvmock"
	"loan-application-backend/pkg/token"

	"golang.org/x/crypto/bcrypt"
)

func newUsecase(t *testing.T, cfg Config) (*Usecase, *token.Issuer, *time.Time) {
	t.Helper()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	issuer := token.NewIssuer("test-secret", time.Hour)
	uc := NewUsecase(kvstore.NewIdentityRepository(kvmock.New()), issuer, cfg).
		WithClock(func() time.Time { return now })
	return uc, issuer, &now
}

func TestSendOTP_NormalizesPhone(t *testing.T) {
	uc, _, _ := newUsecase(t, Config{})
	for _, in := range []string{"03001234567", "+92 300 1234567", "923001234567", "3001234567"} {
		ch, err := uc.SendOTP(context.Background(), in)
		if err != nil {
			t.Fatalf("SendOTP(%q): %v", in, err)
		}
		if ch.PhoneNumber != "+923001234567" {
			t.Fatalf("SendOTP(%q) phone = %s", in, ch.PhoneNumber)
		}
		if ch.VerificationID == "" {
			t.Fatalf("missing verification id")
		}
	}
}

func TestSendOTP_InvalidPhone(t *testing.T) {
	uc, _, _ := newUsecase(t, Config{})
	if _, err := uc.SendOTP(context.Background(), "12345"); !errors.Is(err, identity.ErrInvalidPhone) {
		t.Fatalf("want ErrInvalidPhone, got %v", err)
	}
}

func TestConfirmOTP_StableUser(t *testing.T) {
	uc, issuer, _ := newUsecase(t, Config{})
	ctx := context.Background()

	ch, _ := uc.SendOTP(ctx, "03001234567")
	first, err := uc.ConfirmOTP(ctx, ch.VerificationID, "123456")
	if err != nil {
		t.Fatalf("ConfirmOTP: %v", err)
	}
	if first.User.DisplayName != "Demo User" || first.User.PhoneNumber != "+923001234567" {
		t.Fatalf("user = %+v", first.User)
	}
	claims, err := issuer.Parse(first.Token)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if claims.Subject != first.User.UID || claims.Role != token.RoleUser {
		t.Fatalf("claims = %+v", claims)
	}

	// session is single use
	if _, err := uc.ConfirmOTP(ctx, ch.VerificationID, "123456"); !errors.Is(err, identity.ErrInvalidSession) {
		t.Fatalf("reuse: want ErrInvalidSession, got %v", err)
	}

	ch2, _ := uc.SendOTP(ctx, "+923001234567")
	second, err := uc.ConfirmOTP(ctx, ch2.VerificationID, "654321")
	if err != nil {
		t.Fatalf("ConfirmOTP: %v", err)
	}
	if second.User.UID != first.User.UID {
		t.Fatalf("uid changed: %s != %s", second.User.UID, first.User.UID)
	}
}

// slowUserReads widens the window between the user lookup and the save.
type slowUserReads struct {
	kv.Store
	delay time.Duration
}

func (s slowUserReads) Get(ctx context.Context, key string) ([]byte, error) {
	if strings.HasPrefix(key, "user_") {
		time.Sleep(s.delay)
	}
	return s.Store.Get(ctx, key)
}

func TestConfirmOTP_ConcurrentFirstLoginSameUID(t *testing.T) {
	repo := kvstore.NewIdentityRepository(slowUserReads{Store: kvmock.New(), delay: 50 * time.Millisecond})
	uc := NewUsecase(repo, token.NewIssuer("test-secret", time.Hour), Config{})
	ctx := context.Background()

	var ids []string
	for i := 0; i < 2; i++ {
		ch, err := uc.SendOTP(ctx, "03001234567")
		if err != nil {
			t.Fatalf("SendOTP: %v", err)
		}
		ids = append(ids, ch.VerificationID)
	}

	uids := make([]string, len(ids))
	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, vid := range ids {
		wg.Add(1)
		go func(i int, vid string) {
			defer wg.Done()
			out, err := uc.ConfirmOTP(ctx, vid, "123456")
			errs[i] = err
			if err == nil {
				uids[i] = out.User.UID
			}
		}(i, vid)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("confirm %d: %v", i, err)
		}
	}
	if uids[0] != uids[1] {
		t.Fatalf("concurrent logins got different uids: %v", uids)
	}
	stored, err := repo.GetUserByPhone(ctx, "+923001234567")
	if err != nil {
		t.Fatalf("GetUserByPhone: %v", err)
	}
	if stored.UID != uids[0] {
		t.Fatalf("stored uid %s, tokens carry %s", stored.UID, uids[0])
	}
}

func TestUIDForPhone(t *testing.T) {
	a := UIDForPhone("+923001234567")
	if a != UIDForPhone("+923001234567") {
		t.Fatal("uid not deterministic")
	}
	if a == UIDForPhone("+923001234568") {
		t.Fatal("different phones share a uid")
	}
	if len(a) != 32 || strings.Trim(a, "0123456789abcdef") != "" {
		t.Fatalf("uid %q is not 32 hex chars", a)
	}
}

func TestConfirmOTP_Errors(t *testing.T) {
	uc, _, now := newUsecase(t, Config{FixedOTP: "000000", OTPTTL: time.Minute})
	ctx := context.Background()

	if _, err := uc.ConfirmOTP(ctx, "nope", "000000"); !errors.Is(err, identity.ErrInvalidSession) {
		t.Fatalf("want ErrInvalidSession, got %v", err)
	}

	ch, _ := uc.SendOTP(ctx, "03001234567")
	if _, err := uc.ConfirmOTP(ctx, ch.VerificationID, "12ab56"); !errors.Is(err, identity.ErrInvalidOTP) {
		t.Fatalf("format: want ErrInvalidOTP, got %v", err)
	}
	if _, err := uc.ConfirmOTP(ctx, ch.VerificationID, "111111"); !errors.Is(err, identity.ErrInvalidOTP) {
		t.Fatalf("fixed code: want ErrInvalidOTP, got %v", err)
	}

	*now = now.Add(2 * time.Minute)
	if _, err := uc.ConfirmOTP(ctx, ch.VerificationID, "000000"); !errors.Is(err, identity.ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired, got %v", err)
	}
}

func TestAdminLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	uc, issuer, _ := newUsecase(t, Config{AdminUsername: "admin", AdminPasswordHash: string(hash)})
	ctx := context.Background()

	out, err := uc.AdminLogin(ctx, "admin", "s3cret")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	claims, err := issuer.Parse(out.Token)
	if err != nil || claims.Role != token.RoleAdmin {
		t.Fatalf("claims=%+v err=%v", claims, err)
	}

	for _, c := range [][2]string{{"admin", "wrong"}, {"root", "s3cret"}, {"", ""}} {
		if _, err := uc.AdminLogin(ctx, c[0], c[1]); !errors.Is(err, identity.ErrInvalidCredential) {
			t.Fatalf("%v: want ErrInvalidCredential, got %v", c, err)
		}
	}
}

func TestAdminLogin_Unconfigured(t *testing.T) {
	uc, _, _ := newUsecase(t, Config{})
	if _, err := uc.AdminLogin(context.Background(), "", ""); !errors.Is(err, identity.ErrInvalidCredential) {
		t.Fatalf("want ErrInvalidCredential, got %v", err)
	}
}
