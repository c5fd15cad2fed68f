package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aliskhannn/mushaf/internal/domain/entities"
	"github.com/aliskhannn/mushaf/internal/infra/postgres/repository"
)

const minPasswordLength = 6

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrUserAlreadyRegistered = errors.New("user already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrInvalidUsername       = errors.New("username must be 3-30 characters of letters, digits, _ or -")
	ErrPasswordTooShort      = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrInvalidResetToken     = errors.New("invalid or expired reset token")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

// ValidUsername reports whether s is an acceptable username.
func ValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

type AuthConfig struct {
	SessionTTL       time.Duration
	ResetTTL         time.Duration
	ResetRedirectURL string
}

// AuthService manages accounts, sessions and password resets.
type AuthService struct {
	store    AccountStore
	tx       Transactor
	mailer   Mailer
	cfg      AuthConfig
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(
	store AccountStore,
	tx Transactor,
	mailer Mailer,
	cfg AuthConfig,
	logger *zap.Logger,
) *AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * 24 * time.Hour
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = time.Hour
	}
	return &AuthService{
		store:    store,
		tx:       tx,
		mailer:   mailer,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates an account with default settings and signs it in.
func (s *AuthService) Register(
	ctx context.Context, email, password, username string,
) (*entities.User, *entities.Session, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)

	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, nil, ErrInvalidEmail
	}
	if !ValidUsername(username) {
		return nil, nil, ErrInvalidUsername
	}
	if len(password) < minPasswordLength {
		return nil, nil, ErrPasswordTooShort
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := entities.NewUser(email, username, hash)
	session := entities.NewSession(user.ID, s.cfg.SessionTTL)

	err = s.tx.WithinTx(ctx, func(ctx context.Context, store AccountStore) error {
		if err := store.Users.Create(ctx, user); err != nil {
			return err
		}
		if err := store.Settings.Create(ctx, user.ID); err != nil {
			return err
		}
		return store.Sessions.Create(ctx, session)
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailAlreadyTaken) {
			return nil, nil, ErrUserAlreadyRegistered
		}
		return nil, nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info("user registered", zap.Stringer("user_id", user.ID))
	return user, session, nil
}

// Login verifies credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, *entities.Session, error) {
	user, err := s.store.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if user.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session := entities.NewSession(user.ID, s.cfg.SessionTTL)
	if err := s.store.Sessions.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	return user, session, nil
}

// Logout ends the session identified by token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.store.Sessions.Delete(ctx, token)
}

// Authenticate resolves the user behind a session token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	session, err := s.store.Sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if session.Expired(s.now()) {
		return nil, ErrUnauthorized
	}

	user, err := s.store.Users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	return user, nil
}

// RequestPasswordReset mails a reset link. Unknown emails are accepted
// silently so the endpoint does not reveal which addresses are registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email, redirectURL string) error {
	email = normalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return ErrInvalidEmail
	}

	user, err := s.store.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("request password reset: %w", err)
	}

	reset := entities.NewPasswordReset(user.ID, s.cfg.ResetTTL)
	if err := s.store.Resets.Create(ctx, reset); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}

	if redirectURL == "" {
		redirectURL = s.cfg.ResetRedirectURL
	}
	link, err := resetLink(redirectURL, reset.Token)
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, email, link); err != nil {
		return fmt.Errorf("send password reset: %w", err)
	}
	return nil
}

func resetLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse reset redirect url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ResetPassword redeems a reset token and signs the user out everywhere.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context, store AccountStore) error {
		reset, err := store.Resets.GetForUpdate(ctx, token)
		if err != nil {
			if errors.Is(err, repository.ErrResetNotFound) {
				return ErrInvalidResetToken
			}
			return fmt.Errorf("reset password: %w", err)
		}

		now := s.now()
		if !reset.Usable(now) {
			return ErrInvalidResetToken
		}

		if err := store.Resets.MarkUsed(ctx, token, now); err != nil {
			if errors.Is(err, repository.ErrResetNotFound) {
				return ErrInvalidResetToken
			}
			return fmt.Errorf("reset password: %w", err)
		}
		if err := store.Users.UpdatePasswordHash(ctx, reset.UserID, hash); err != nil {
			return fmt.Errorf("reset password: %w", err)
		}
		return store.Sessions.DeleteByUser(ctx, reset.UserID)
	})
}

// UpdateUsername changes the display name of the user.
func (s *AuthService) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error {
	username = strings.TrimSpace(username)
	if !ValidUsername(username) {
		return ErrInvalidUsername
	}
	return s.store.Users.UpdateUsername(ctx, userID, username)
}

// UpdatePassword sets a new password for a signed-in user.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return s.store.Users.UpdatePasswordHash(ctx, userID, hash)
}

// EnsureTelegramUser returns the account of a chat user, creating it on first
// contact.
func (s *AuthService) EnsureTelegramUser(ctx context.Context, telegramID int64, username string) (*entities.User, error) {
	// Telegram allows names the web form rejects; those fall back to tg<ID>.
	if !ValidUsername(username) {
		username = fmt.Sprintf("tg%d", telegramID)
	}

	user, err := s.store.Users.EnsureTelegramUser(ctx, entities.NewTelegramUser(telegramID, username))
	if err != nil {
		return nil, err
	}

	if err := s.store.Settings.Create(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
