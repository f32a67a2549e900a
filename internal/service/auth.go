package service

import (
	"bitwise74/game-api/internal/model"
	"bitwise74/game-api/pkg/security"
	"bitwise74/game-api/pkg/validators"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService resolves identities from bearer tokens or credentials and
// manages the token stored on each session
type AuthService struct {
	db    *gorm.DB
	argon *security.ArgonHash

	// verified against when the email is unknown so both failure paths
	// cost the same
	dummyHash string
}

func NewAuthService(db *gorm.DB, argon *security.ArgonHash) (*AuthService, error) {
	dummy, err := argon.GenerateFromPassword("dummy password for timing")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy hash: %w", err)
	}

	return &AuthService{db: db, argon: argon, dummyHash: dummy}, nil
}

// AuthenticateByToken returns the owner of the session holding token
func (s *AuthService) AuthenticateByToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrTokenAuthFailed
	}

	var session model.Session
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("token = ?", token).
		First(&session).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenAuthFailed
		}

		return nil, fmt.Errorf("failed to look up session by token: %w", err)
	}

	if session.User == nil {
		return nil, ErrTokenAuthFailed
	}

	session.User.Session = &session
	return session.User, nil
}

// AuthenticateByCredentials checks email and password. Malformed input, an
// unknown email and a wrong password all fail with ErrInvalidCredentials.
func (s *AuthService) AuthenticateByCredentials(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)

	if validators.EmailValidator(email) != nil || validators.PasswordValidator(password) != nil {
		return nil, ErrInvalidCredentials
	}

	var user model.User
	err := s.db.WithContext(ctx).
		Preload("Session").
		Where("email = ?", email).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_, _ = s.argon.VerifyPasswd(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	ok, err := s.argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password of user %d: %w", user.ID, err)
	}

	if !ok {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// IssueToken stores a fresh token on the user's session, replacing any
// previous one. The plaintext is only ever returned here.
func (s *AuthService) IssueToken(ctx context.Context, user *model.User) (*model.Session, string, error) {
	token, err := security.NewSessionToken()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	var session model.Session
	err = s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrSessionNotFound
		}

		return nil, "", fmt.Errorf("failed to find session of user %d: %w", user.ID, err)
	}

	// Single row update, concurrent logins leave the last written token active
	err = s.db.WithContext(ctx).
		Model(&session).
		Update("token", token).
		Error
	if err != nil {
		return nil, "", fmt.Errorf("failed to store token for session %d: %w", session.ID, err)
	}

	session.Token = &token
	session.User = user
	user.Session = &session

	zap.L().Debug("Token issued", zap.Uint("sessionID", session.ID), zap.Uint("userID", user.ID))
	return &session, token, nil
}

// RevokeToken clears the session token. Revoking a null token is a no-op.
func (s *AuthService) RevokeToken(ctx context.Context, session *model.Session) error {
	err := s.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", session.ID).
		Update("token", nil).
		Error
	if err != nil {
		return fmt.Errorf("failed to revoke token of session %d: %w", session.ID, err)
	}

	session.Token = nil
	return nil
}

// FindSession loads a session and its owner
func (s *AuthService) FindSession(ctx context.Context, id uint) (*model.Session, error) {
	var session model.Session

	err := s.db.WithContext(ctx).Preload("User").First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}

		return nil, fmt.Errorf("failed to find session %d: %w", id, err)
	}

	return &session, nil
}

// AuthorizeSession fails with ErrForbidden unless identity owns session
func AuthorizeSession(identity *model.User, session *model.Session) error {
	if identity == nil || session.UserID != identity.ID {
		return ErrForbidden
	}

	return nil
}
