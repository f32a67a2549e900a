package model

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Session      *Session `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Players      []Player `gorm:"foreignKey:UserID"`
	CreatedGames []Game   `gorm:"foreignKey:CreatorID"`
}
