package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotel-booking/domain"
)

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (d *memoryDenylist) Revoke(_ context.Context, id string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.revoked == nil {
		d.revoked = map[string]time.Time{}
	}
	d.revoked[id] = until
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[id]
	return ok, nil
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	p, err := f.auth.Register(f.ctx, RegisterInput{Username: "alice", Email: "Alice@Example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", p.Email)
	}
	stored, _ := f.store.Users().FindByID(f.ctx, p.ID)
	if stored.Password == "s3cret" || stored.Password == "" {
		t.Fatalf("password stored in clear")
	}

	res, err := f.auth.Login(f.ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token == "" || res.Profile.ID != p.ID || res.IsAdmin {
		t.Fatalf("unexpected login result: %+v", res)
	}

	sess, err := f.auth.Authenticate(f.ctx, res.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sess.UserID != p.ID || sess.IsAdmin || sess.TokenID == "" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	if _, err := f.auth.Register(f.ctx, RegisterInput{Username: "bob", Email: "bob@example.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := f.auth.Register(f.ctx, RegisterInput{Username: "bob", Email: "other@example.com", Password: "pw"})
	if !domain.IsDuplicateKey(err) {
		t.Fatalf("expected duplicate username, got %v", err)
	}
	_, err = f.auth.Register(f.ctx, RegisterInput{Username: "bobby", Email: "BOB@example.com", Password: "pw"})
	if !domain.IsDuplicateKey(err) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
	_, err = f.auth.Register(f.ctx, RegisterInput{Username: "   ", Email: "carol@example.com", Password: "pw"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t)
	if _, err := f.auth.Register(f.ctx, RegisterInput{Username: "dan", Email: "dan@example.com", Password: "right"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.auth.Login(f.ctx, "nobody@example.com", "right"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := f.auth.Login(f.ctx, "dan@example.com", "wrong"); !domain.IsInvalidCredential(err) {
		t.Fatalf("expected invalid credential, got %v", err)
	}
}

func TestSessionExpires(t *testing.T) {
	f := newFixture(t)
	if _, err := f.auth.Register(f.ctx, RegisterInput{Username: "eve", Email: "eve@example.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	res, err := f.auth.Login(f.ctx, "eve@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	f.auth.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := f.auth.Authenticate(f.ctx, res.Token); !domain.IsUnauthenticated(err) {
		t.Fatalf("expected expired session to be rejected, got %v", err)
	}
}

func TestAuthenticateRejectsForeignSignature(t *testing.T) {
	f := newFixture(t)
	other := NewAuthService(f.store, []byte("another-secret"), time.Hour, nil)
	token, _, err := other.issue(Identity{UserID: 1, IsAdmin: true})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := f.auth.Authenticate(f.ctx, token); !domain.IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, err := f.auth.Authenticate(f.ctx, ""); !domain.IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated for empty token, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	deny := &memoryDenylist{}
	f.auth = NewAuthService(f.store, []byte("test-secret"), time.Hour, deny)
	if _, err := f.auth.Register(f.ctx, RegisterInput{Username: "fay", Email: "fay@example.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	res, err := f.auth.Login(f.ctx, "fay@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := f.auth.Logout(f.ctx, res.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := f.auth.Logout(f.ctx, res.Token); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if err := f.auth.Logout(f.ctx, ""); err != nil {
		t.Fatalf("logout without session: %v", err)
	}
	if _, err := f.auth.Authenticate(f.ctx, res.Token); !domain.IsUnauthenticated(err) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestCurrentUser(t *testing.T) {
	f := newFixture(t)
	p, err := f.auth.Register(f.ctx, RegisterInput{Username: "gus", Email: "gus@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := f.auth.CurrentUser(f.ctx, Identity{UserID: p.ID})
	if err != nil || got.Username != "gus" {
		t.Fatalf("current user: %+v %v", got, err)
	}
	if _, err := f.auth.CurrentUser(f.ctx, Identity{}); !domain.IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, err := f.auth.CurrentUser(f.ctx, Identity{UserID: p.ID + 50}); !domain.IsUnauthenticated(err) {
		t.Fatalf("expected unauthenticated for deleted user, got %v", err)
	}
}
