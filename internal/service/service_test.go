package service

import (
	"bitwise74/game-api/db"
	"bitwise74/game-api/internal/model"
	"bitwise74/game-api/pkg/security"
	"context"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const testPassword = "factory_foo!"

// serviceSuite gives every test a fresh in-memory database
type serviceSuite struct {
	suite.Suite
	db    *gorm.DB
	argon *security.ArgonHash
	users *UserService
	auth  *AuthService
	games *GameService
	ctx   context.Context
}

func (s *serviceSuite) SetupTest() {
	d, err := db.NewMemory(gonanoid.Must())
	s.Require().NoError(err)

	s.db = d
	s.argon = &security.ArgonHash{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
	s.users = NewUserService(d, s.argon)
	s.auth, err = NewAuthService(d, s.argon)
	s.Require().NoError(err)
	s.games = NewGameService(d)
	s.ctx = context.Background()
}

func (s *serviceSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *serviceSuite) signup(email string) *model.User {
	u, err := s.users.Signup(s.ctx, email, testPassword)
	s.Require().NoError(err)
	return u
}

func (s *serviceSuite) count(m any) int64 {
	var n int64
	s.Require().NoError(s.db.Model(m).Count(&n).Error)
	return n
}

func (s *serviceSuite) sessionOf(u *model.User) model.Session {
	var sess model.Session
	s.Require().NoError(s.db.Where("user_id = ?", u.ID).First(&sess).Error)
	return sess
}
