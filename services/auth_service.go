package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hotel-booking/domain"
	"hotel-booking/models"
	"hotel-booking/repository"
)

const DefaultSessionTTL = 24 * time.Hour

type sessionClaims struct {
	UserID  uint `json:"id"`
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Session is a verified session token.
type Session struct {
	Identity
	TokenID   string
	ExpiresAt time.Time
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Profile   models.Profile
	IsAdmin   bool
}

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthService struct {
	store    repository.Store
	secret   []byte
	ttl      time.Duration
	denylist TokenDenylist
	now      func() time.Time
}

// NewAuthService signs sessions with secret. denylist may be nil, in which
// case logout only clears the cookie and tokens stay valid until expiry.
func NewAuthService(store repository.Store, secret []byte, ttl time.Duration, denylist TokenDenylist) *AuthService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &AuthService{store: store, secret: secret, ttl: ttl, denylist: denylist, now: time.Now}
}

func (s *AuthService) TTL() time.Duration { return s.ttl }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.Profile, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" {
		return nil, domain.ValidationError{Field: "username", Msg: "must not be blank"}
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := models.User{Username: username, Email: email, Password: hash}
	if err := s.store.Users().Create(ctx, &u); err != nil {
		return nil, err
	}
	p := u.Profile()
	return &p, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.store.Users().FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, domain.InvalidCredentialError{}
	}

	token, exp, err := s.issue(Identity{UserID: u.ID, IsAdmin: u.IsAdmin})
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, Profile: u.Profile(), IsAdmin: u.IsAdmin}, nil
}

func (s *AuthService) issue(id Identity) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := sessionClaims{
		UserID:  id.UserID,
		IsAdmin: id.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, domain.InternalError{Msg: "could not sign session", Err: err}
	}
	return signed, exp, nil
}

func (s *AuthService) parse(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// Authenticate verifies a presented token and checks it has not been revoked.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, domain.UnauthenticatedError{}
	}
	claims, err := s.parse(token)
	if err != nil {
		return nil, domain.UnauthenticatedError{Msg: "invalid or expired session", Err: err}
	}
	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, domain.InternalError{Msg: "could not verify session", Err: err}
		}
		if revoked {
			return nil, domain.UnauthenticatedError{Msg: "session has been logged out"}
		}
	}
	return &Session{
		Identity:  Identity{UserID: claims.UserID, IsAdmin: claims.IsAdmin},
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout revokes token when a denylist is configured. Missing or invalid
// tokens are ignored so logging out twice is harmless.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" || s.denylist == nil {
		return nil
	}
	claims, err := s.parse(token)
	if err != nil || claims.ID == "" {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return domain.InternalError{Msg: "could not revoke session", Err: err}
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, id Identity) (*models.Profile, error) {
	if err := requireSession(id); err != nil {
		return nil, err
	}
	u, err := s.store.Users().FindByID(ctx, id.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.UnauthenticatedError{Msg: "session user no longer exists", Err: err}
		}
		return nil, err
	}
	p := u.Profile()
	return &p, nil
}
