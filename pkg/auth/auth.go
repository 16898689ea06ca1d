// Package auth provides credential checking, the client-held session
// token and access-level gating for the library system.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vishu-0105/Library-Testing-System/pkg/activity"
	"github.com/Vishu-0105/Library-Testing-System/pkg/config"
	"github.com/Vishu-0105/Library-Testing-System/pkg/directory"
	"github.com/Vishu-0105/Library-Testing-System/pkg/errors"
	"github.com/Vishu-0105/Library-Testing-System/pkg/metrics"
)

const tokenIssuer = "library-system"

// SessionState is the per-request identity context reconstructed from the
// client-held token. The server keeps no session table.
type SessionState struct {
	Username    string                `json:"username"`
	Role        string                `json:"role"`
	Name        string                `json:"name"`
	AccessLevel directory.AccessLevel `json:"access_level"`
	LoginTime   time.Time             `json:"login_time"`
	Extended    bool                  `json:"extended,omitempty"`
}

// Elevated reports whether the session may access administrative views
func (s *SessionState) Elevated() bool {
	return s.AccessLevel.Elevated()
}

// TokenClaims carries the SessionState inside the signed token
type TokenClaims struct {
	Username    string `json:"username"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	AccessLevel string `json:"access_level"`
	LoginTime   int64  `json:"login_time"`
	Extended    bool   `json:"extended,omitempty"`
	jwt.RegisteredClaims
}

// Service authenticates credentials against the user directory and
// encodes session state into signed tokens.
type Service struct {
	config    *config.Config
	directory *directory.Repository
	recorder  activity.Recorder
	counters  *metrics.Counters
}

// NewService creates a new authentication service
func NewService(cfg *config.Config, dir *directory.Repository, recorder activity.Recorder, counters *metrics.Counters) *Service {
	return &Service{
		config:    cfg,
		directory: dir,
		recorder:  recorder,
		counters:  counters,
	}
}

// Authenticate checks the credentials against the directory. On success
// it updates the account's last-login timestamp, bumps the login counter
// and records exactly one successful_login event. On failure it records
// failed_login and imposes the configured fixed delay before returning.
func (s *Service) Authenticate(username, password, origin string, extended bool) (*SessionState, error) {
	s.recorder.Record(activity.ActionLoginAttempt, username, nil, origin)

	account, err := s.directory.GetByUsername(username)
	if err != nil {
		return nil, err
	}

	if account == nil || bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		s.recorder.Record(activity.ActionFailedLogin, username, nil, origin)
		time.Sleep(s.config.FailedLoginDelay)
		return nil, errors.NewInvalidCredentialsError()
	}

	now := time.Now()
	if err := s.directory.TouchLastLogin(username, now); err != nil {
		return nil, err
	}

	s.counters.RecordLogin()
	s.recorder.Record(activity.ActionSuccessfulLogin, username, nil, origin)

	return &SessionState{
		Username:    account.Username,
		Role:        account.Role,
		Name:        account.Name,
		AccessLevel: account.AccessLevel,
		LoginTime:   now,
		Extended:    extended,
	}, nil
}

// IssueToken signs the session state into the client-held capsule. The
// extended-lifetime flag widens the expiry window.
func (s *Service) IssueToken(state *SessionState) (string, error) {
	ttl := s.config.SessionTTL
	if state.Extended {
		ttl = s.config.ExtendedSessionTTL
	}

	now := time.Now()
	claims := &TokenClaims{
		Username:    state.Username,
		Role:        state.Role,
		Name:        state.Name,
		AccessLevel: string(state.AccessLevel),
		LoginTime:   state.LoginTime.Unix(),
		Extended:    state.Extended,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   state.Username,
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", errors.NewInternalErrorWithCause("failed to sign session token", err)
	}
	return signed, nil
}

// DecodeToken verifies the capsule and reconstructs the session state.
// It fails closed: any parse, signature or expiry problem yields an
// unauthenticated error.
func (s *Service) DecodeToken(tokenString string) (*SessionState, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewInvalidTokenError()
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, errors.NewInvalidTokenError()
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.NewInvalidTokenError()
	}

	level := directory.AccessLevel(claims.AccessLevel)
	if !level.IsValid() {
		return nil, errors.NewInvalidTokenError()
	}

	return &SessionState{
		Username:    claims.Username,
		Role:        claims.Role,
		Name:        claims.Name,
		AccessLevel: level,
		LoginTime:   time.Unix(claims.LoginTime, 0),
		Extended:    claims.Extended,
	}, nil
}

// RequireElevated gates administrative views on the access level
func RequireElevated(state *SessionState) error {
	if state == nil {
		return errors.NewUnauthenticatedError("authentication required")
	}
	if !state.Elevated() {
		return errors.NewForbiddenError("administrative access required")
	}
	return nil
}
