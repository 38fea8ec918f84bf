package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/apdc/auth-api/internal/core/domain"
	"github.com/apdc/auth-api/internal/core/ports"
	"github.com/apdc/auth-api/internal/core/token"
)

// adminUsername is forced to the Admin role at registration,
// case-insensitively. Every other new account starts as Regular.
const adminUsername = "admin"

// SessionService implements registration, login and session
// verification on top of an injected UserDirectory and the process
// signing configuration.
type SessionService struct {
	directory ports.UserDirectory
	signer    *token.Signer
	codec     *token.Codec
	limiter   ports.LoginLimiter // optional
	policy    AccessPolicy
	log       zerolog.Logger
}

func NewSessionService(directory ports.UserDirectory, signer *token.Signer, codec *token.Codec, limiter ports.LoginLimiter, log zerolog.Logger) *SessionService {
	return &SessionService{
		directory: directory,
		signer:    signer,
		codec:     codec,
		limiter:   limiter,
		log:       log,
	}
}

func (s *SessionService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RoleRegular
	if strings.EqualFold(username, adminUsername) {
		role = domain.RoleAdmin
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	return s.directory.Store(ctx, user)
}

func (s *SessionService) IssueSession(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		exceeded, err := s.limiter.Exceeded(ctx, username)
		if err != nil {
			// A broken limiter must not lock everyone out.
			s.log.Warn().Err(err).Msg("login limiter unavailable")
		} else if exceeded {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.directory.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same answer as a wrong password so the response never
			// reveals which half of the credentials failed.
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	signed, err := s.signer.Sign(s.codec.Encode(user, time.Now()))
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// Authenticate walks the per-request session states: no token, invalid,
// expired, valid. Only the last yields a Principal; the first three all
// read as "unauthenticated" to the caller, with the distinction kept
// for logging.
func (s *SessionService) Authenticate(ctx context.Context, cookieValue string) (*domain.Principal, error) {
	if strings.TrimSpace(cookieValue) == "" {
		return nil, nil
	}

	claims, err := s.signer.Verify(cookieValue)
	if err != nil {
		return nil, err
	}

	principal, err := s.codec.Decode(claims)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("username", principal.Username).
		Str("role", principal.Role.String()).
		Msg("session authenticated")
	return principal, nil
}

func (s *SessionService) Authorize(p *domain.Principal, required domain.Role) bool {
	return s.policy.Authorize(p, required)
}

func (s *SessionService) recordFailure(ctx context.Context, username string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("login limiter record failed")
	}
}
