package model

import "time"

// Player is the membership of a user in a game
type Player struct {
	ID        uint `gorm:"primaryKey;autoIncrement"`
	UserID    uint `gorm:"uniqueIndex:idx_player_membership;not null"`
	GameID    uint `gorm:"uniqueIndex:idx_player_membership;index;not null"`
	CreatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
	Game *Game `gorm:"foreignKey:GameID"`
}
