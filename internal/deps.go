package internal

import (
	"bitwise74/game-api/internal/service"
	"bitwise74/game-api/pkg/security"
	"fmt"

	"gorm.io/gorm"
)

type Deps struct {
	DB    *gorm.DB
	Argon *security.ArgonHash
	Users *service.UserService
	Auth  *service.AuthService
	Games *service.GameService
}

// NewDeps wires every service on top of db
func NewDeps(db *gorm.DB, argon *security.ArgonHash) (*Deps, error) {
	auth, err := service.NewAuthService(db, argon)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service, %w", err)
	}

	return &Deps{
		DB:    db,
		Argon: argon,
		Users: service.NewUserService(db, argon),
		Auth:  auth,
		Games: service.NewGameService(db),
	}, nil
}
