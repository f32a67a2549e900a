package model

import "time"

// Session binds a user to at most one active bearer token. A nil Token means
// the user is logged out.
type Session struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	UserID    uint    `gorm:"uniqueIndex;not null"`
	Token     *string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
}

// Active reports whether the session currently holds a token
func (s *Session) Active() bool {
	return s.Token != nil && *s.Token != ""
}
