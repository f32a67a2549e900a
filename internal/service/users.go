package service

import (
	"bitwise74/game-api/internal/model"
	"bitwise74/game-api/pkg/security"
	"bitwise74/game-api/pkg/validators"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const msgEmailTaken = "Email has already been taken"

// UserService owns user records and the session created alongside each one
type UserService struct {
	db    *gorm.DB
	argon *security.ArgonHash
}

func NewUserService(db *gorm.DB, argon *security.ArgonHash) *UserService {
	return &UserService{db: db, argon: argon}
}

func (s *UserService) with(tx *gorm.DB) *UserService {
	return &UserService{db: tx, argon: s.argon}
}

// NormalizeEmail returns the form emails are stored and looked up in
func NormalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// CreateUser validates the credentials and inserts a new user. It does not
// create a session, see Signup.
func (s *UserService) CreateUser(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)

	var msgs []string
	if err := validators.EmailValidator(email); err != nil {
		msgs = append(msgs, err.Error())
	}
	if err := validators.PasswordValidator(password); err != nil {
		msgs = append(msgs, err.Error())
	}
	if len(msgs) > 0 {
		return nil, invalid(msgs...)
	}

	var taken bool
	err := s.db.WithContext(ctx).
		Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", email).
		Find(&taken).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to check if email is registered: %w", err)
	}

	if taken {
		return nil, invalid(msgEmailTaken)
	}

	hash, err := s.argon.GenerateFromPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Email:        email,
		PasswordHash: hash,
	}

	// the unique index still catches a concurrent signup with the same email
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid(msgEmailTaken)
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// CreateSessionFor creates the one session a user owns. The token starts
// out null until the first login.
func (s *UserService) CreateSessionFor(ctx context.Context, user *model.User) (*model.Session, error) {
	session := model.Session{UserID: user.ID}

	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("Session has already been created for this user")
		}

		return nil, fmt.Errorf("failed to create session for user %d: %w", user.ID, err)
	}

	user.Session = &session
	return &session, nil
}

// Signup creates a user and its session in a single transaction
func (s *UserService) Signup(ctx context.Context, email, password string) (*model.User, error) {
	var user *model.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txs := s.with(tx)

		u, err := txs.CreateUser(ctx, email, password)
		if err != nil {
			return err
		}

		if _, err := txs.CreateSessionFor(ctx, u); err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Debug("User signed up", zap.Uint("userID", user.ID))
	return user, nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User

	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to find user %d: %w", id, err)
	}

	return &user, nil
}

// DeleteUser removes the user together with its session. Users which still
// own games or memberships can't be deleted.
func (s *UserService) DeleteUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned int64
		err := tx.Model(model.Game{}).Where("creator_id = ?", user.ID).Count(&owned).Error
		if err != nil {
			return fmt.Errorf("failed to count games of user %d: %w", user.ID, err)
		}

		var memberships int64
		err = tx.Model(model.Player{}).Where("user_id = ?", user.ID).Count(&memberships).Error
		if err != nil {
			return fmt.Errorf("failed to count memberships of user %d: %w", user.ID, err)
		}

		if owned > 0 || memberships > 0 {
			return invalid("User still takes part in games")
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Session{}).Error; err != nil {
			return fmt.Errorf("failed to delete session of user %d: %w", user.ID, err)
		}

		res := tx.Delete(&model.User{}, user.ID)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
				return invalid("User still takes part in games")
			}

			return fmt.Errorf("failed to delete user %d: %w", user.ID, res.Error)
		}

		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}
