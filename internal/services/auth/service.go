package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shadowhunt/shadowhunt-go/internal/dependencies/clock"
	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// SessionClaims is the signed content of a session token. Nothing else is
// persisted server-side: possession of a validly signed, unexpired token is
// the session.
type SessionClaims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session is the result of a successful login
type Session struct {
	Token     string
	User      *model.User
	ExpiresAt time.Time
}

// Config holds configuration for the auth service
type Config struct {
	// Secret signs session and round tokens (HS256)
	Secret string
	// SessionDuration bounds the signed claim's validity
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 7 * 24 * time.Hour,
	}
}

// Service handles credential verification and session token minting
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	secret          []byte
	sessionDuration time.Duration
}

// New creates a new auth service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		secret:          []byte(cfg.Secret),
		sessionDuration: cfg.SessionDuration,
	}
}

// Login verifies a username/password pair and mints a signed session token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.sessionDuration)

	claims := &SessionClaims{
		UserID:   string(user.ID),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken checks a session token's signature and expiry and returns
// its claims. It fails closed: any malformed, mis-signed, or expired token
// maps to ErrInvalidSession with no finer-grained detail.
func (s *Service) ValidateToken(token string) (*SessionClaims, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidSession
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// GetUser resolves the full user record behind a validated token
func (s *Service) GetUser(ctx context.Context, claims *SessionClaims) (*model.User, error) {
	return s.storage.GetUser(ctx, model.UserID(claims.UserID))
}

// HashPassword produces a bcrypt hash for user provisioning
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
