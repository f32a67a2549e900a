package service

import (
	"bitwise74/game-api/internal/model"
	"bitwise74/game-api/pkg/validators"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultGameName is used when a game is created without a name
const DefaultGameName = "New game"

type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

// CreateGame inserts a game owned by creator together with the creator's
// player row. Either both rows are written or neither is.
func (s *GameService) CreateGame(ctx context.Context, creator *model.User, name string) (*model.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultGameName
	}

	if err := validators.GameNameValidator(name); err != nil {
		return nil, invalid(err.Error())
	}

	game := model.Game{
		CreatorID: creator.ID,
		Name:      name,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&game).Error; err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}

		player := model.Player{
			UserID: creator.ID,
			GameID: game.ID,
		}

		if err := tx.Create(&player).Error; err != nil {
			return fmt.Errorf("failed to create player: %w", err)
		}

		game.Players = []model.Player{player}
		return nil
	})
	if err != nil {
		zap.L().Error("Game creation rolled back", zap.Error(err), zap.Uint("userID", creator.ID))
		return nil, persistenceError(err)
	}

	game.Creator = creator
	return &game, nil
}

// ListGames returns the games user created followed by the games user
// plays in, without duplicates
func (s *GameService) ListGames(ctx context.Context, user *model.User) ([]model.Game, error) {
	var created []model.Game
	err := s.db.WithContext(ctx).
		Preload("Players").
		Where("creator_id = ?", user.ID).
		Order("id asc").
		Find(&created).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch games created by user %d: %w", user.ID, err)
	}

	var member []model.Game
	err = s.db.WithContext(ctx).
		Preload("Players").
		Joins("JOIN players ON players.game_id = games.id").
		Where("players.user_id = ?", user.ID).
		Order("games.id asc").
		Find(&member).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch games of user %d: %w", user.ID, err)
	}

	return uniqueGames(created, member), nil
}

// uniqueGames concatenates the sets keeping the first occurrence of each id
func uniqueGames(sets ...[]model.Game) []model.Game {
	seen := make(map[uint]struct{})
	out := []model.Game{}

	for _, set := range sets {
		for _, g := range set {
			if _, ok := seen[g.ID]; ok {
				continue
			}

			seen[g.ID] = struct{}{}
			out = append(out, g)
		}
	}

	return out
}

// persistenceError turns a failed write into messages fit for the client
func persistenceError(err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return verr
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return invalid("Creator must exist")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return invalid("Player has already joined this game")
	case errors.Is(err, gorm.ErrInvalidData):
		return invalid("Game is invalid")
	default:
		return invalid("Game could not be saved")
	}
}
