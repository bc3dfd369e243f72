package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/hyno-health-api/internal/cache"
	"github.com/harentsoaR/hyno-health-api/internal/models"
	"github.com/harentsoaR/hyno-health-api/internal/store"
	"github.com/harentsoaR/hyno-health-api/internal/utils"
)

const resetKeyPrefix = "reset:"

type AccountNotifier interface {
	Welcome(ctx context.Context, u *models.User)
	PasswordReset(ctx context.Context, email, link string, ttl time.Duration)
}

type AuthConfig struct {
	BcryptCost int
	ResetTTL   time.Duration
	// ResetURL is the page that receives ?token=.
	ResetURL string
}

type AuthService struct {
	users    store.UserRepository
	tokens   *utils.TokenManager
	cache    cache.Store
	notifier AccountNotifier
	cfg      AuthConfig
	log      zerolog.Logger
}

func NewAuthService(users store.UserRepository, tokens *utils.TokenManager, resets cache.Store, notifier AccountNotifier, cfg AuthConfig, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, cache: resets, notifier: notifier, cfg: cfg, log: log}
}

type SignupInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{
		FullName:       strings.TrimSpace(in.FullName),
		Email:          normalizeEmail(in.Email),
		Password:       hashedPassword,
		Role:           models.RolePatient,
		Phone:          strings.TrimSpace(in.Phone),
		SavedHospitals: []string{},
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", u.ID.Hex()).Msg("auth.signup")
	if s.notifier != nil {
		s.notifier.Welcome(ctx, u)
	}
	return u, nil
}

// Login checks credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		return "", nil, ErrInvalidCredentials
	}
	if utils.NeedsRehash(u.Password, s.cfg.BcryptCost) {
		s.rehash(ctx, u.ID.Hex(), password)
	}
	token, err := s.tokens.Generate(u.ID.Hex(), u.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, u, nil
}

// ForgotPassword mails a single-use reset link when the account exists.
// Unknown addresses succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		s.log.Debug().Msg("auth.forgot_password.unknown_email")
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if err := s.cache.Set(ctx, resetKeyPrefix+token, []byte(u.ID.Hex()), s.cfg.ResetTTL); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	if s.notifier != nil {
		s.notifier.PasswordReset(ctx, u.Email, resetLink(s.cfg.ResetURL, token), s.cfg.ResetTTL)
	}
	s.log.Info().Str("user_id", u.ID.Hex()).Msg("auth.forgot_password.issued")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	key := resetKeyPrefix + token
	raw, err := s.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrMiss) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return fmt.Errorf("load reset token: %w", err)
	}
	// The token stays valid until the new password is known to hash.
	hashedPassword, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	userID := string(raw)
	if err := s.users.SetPassword(ctx, userID, hashedPassword); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("auth.password_reset")
	return nil
}

// rehash upgrades a stored hash to the configured cost. Failure only costs
// another attempt at the next login.
func (s *AuthService) rehash(ctx context.Context, userID, password string) {
	hashed, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err == nil {
		err = s.users.SetPassword(ctx, userID, hashed)
	}
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("auth.rehash_failed")
		return
	}
	s.log.Debug().Str("user_id", userID).Msg("auth.password_rehashed")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func resetLink(base, token string) string {
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return token
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}
