package model

import "time"

type Game struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	CreatorID uint   `gorm:"index;not null"`
	Name      string `gorm:"size:50;not null"`
	Started   bool   `gorm:"default:false;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Creator *User    `gorm:"foreignKey:CreatorID"`
	Players []Player `gorm:"foreignKey:GameID"`
}
