package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skirsanov/gadgetshop/internal/hash"
	"github.com/skirsanov/gadgetshop/internal/logging"
	"github.com/skirsanov/gadgetshop/internal/models"
	"github.com/skirsanov/gadgetshop/internal/repo"
	"github.com/skirsanov/gadgetshop/internal/tokens"
)

var (
	ErrUserExists     = errors.New("user already exists")
	ErrUserNotFound   = errors.New("user does not exist")
	ErrWrongPassword  = errors.New("incorrect password")
	ErrEmailTaken     = errors.New("email already in use")
	ErrForbiddenToken = errors.New("invalid refresh token")
	ErrBadToken       = errors.New("malformed refresh token")
	ErrTokenShape     = errors.New("token generation failed")
)

type AuthService struct {
	Repo   *repo.GormRepo
	Issuer *tokens.Issuer
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// NormalizeEmail lowercases and trims the address before any store lookup, so
// uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issueTokens signs both tokens, checks their shape right after issuance and
// appends the refresh token to the user's stored list.
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (string, string, error) {
	accessToken, err := s.Issuer.SignAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.Issuer.SignRefreshToken(user)
	if err != nil {
		return "", "", err
	}

	if !tokens.IsWellFormed(accessToken) || !tokens.IsWellFormed(refreshToken) {
		return "", "", ErrTokenShape
	}

	expiresAt := time.Now().Add(tokens.RefreshTTL).Unix()
	if err := s.Repo.AddRefreshToken(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")
	email = NormalizeEmail(email)

	if _, err := s.Repo.FindUserByEmail(ctx, email); err == nil {
		l.Warn("signup_rejected", "reason", "user already exists")
		return nil, ErrUserExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	l.Info("user_created", "user_id", user.ID)
	return &AuthResult{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_rejected", "reason", "incorrect password", "user_id", user.ID)
		return nil, ErrWrongPassword
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	return &AuthResult{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

// GoogleUserExists backs the google-signup probe. The caller's claim that the
// email was externally verified is trusted as-is.
func (s *AuthService) GoogleUserExists(ctx context.Context, email string) (bool, error) {
	_, err := s.Repo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GoogleLogin issues tokens without a password check, trusting the caller.
func (s *AuthService) GoogleLogin(ctx context.Context, email string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.google_login")

	user, err := s.Repo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	l.Info("google_login_successful", "user_id", user.ID)
	return &AuthResult{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated. Fails when the token does not verify, the
// subject is unknown, or the exact token is no longer in the stored list.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.Issuer.RefreshSecret)
	if err != nil {
		return "", ErrForbiddenToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", ErrForbiddenToken
	}

	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrForbiddenToken
		}
		return "", err
	}

	stored, err := s.Repo.HasRefreshToken(ctx, user.ID, refreshToken)
	if err != nil {
		return "", err
	}
	if !stored {
		return "", ErrForbiddenToken
	}

	accessToken, err := s.Issuer.SignAccessToken(user)
	if err != nil {
		return "", err
	}
	if !tokens.IsWellFormed(accessToken) {
		return "", ErrTokenShape
	}
	return accessToken, nil
}

// Logout removes the exact token from the user's stored list. Removing an
// already-absent token is a no-op.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout")

	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.Issuer.RefreshSecret)
	if err != nil {
		return ErrBadToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ErrBadToken
	}

	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBadToken
		}
		return err
	}

	if err := s.Repo.RemoveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return err
	}

	l.Info("logout_successful", "user_id", user.ID)
	return nil
}

// ChangePassword rehashes and persists. Existing refresh tokens stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.Repo.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !hash.CheckPassword(user.PasswordHash, oldPassword) {
		return ErrWrongPassword
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = pwHash
	return s.Repo.SaveUser(ctx, user)
}

// UpdateEmail mutates the email in place. Tokens issued against the old email
// keep their embedded claim until the next login.
func (s *AuthService) UpdateEmail(ctx context.Context, oldEmail, newEmail string) error {
	oldEmail, newEmail = NormalizeEmail(oldEmail), NormalizeEmail(newEmail)

	user, err := s.Repo.FindUserByEmail(ctx, oldEmail)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if _, err := s.Repo.FindUserByEmail(ctx, newEmail); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	user.Email = newEmail
	return s.Repo.SaveUser(ctx, user)
}

// BootstrapAdmin creates the configured admin account on first start. Silent
// no-op when credentials are unset or the account already exists.
func (s *AuthService) BootstrapAdmin(ctx context.Context, email, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.bootstrap_admin")

	if email == "" || password == "" {
		l.Warn("admin credentials not set")
		return nil
	}
	email = NormalizeEmail(email)

	if _, err := s.Repo.FindUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: pwHash,
		Role:         "admin",
	}
	if err := s.Repo.CreateUser(ctx, admin); err != nil {
		return err
	}

	l.Info("admin_created", "user_id", admin.ID)
	return nil
}
